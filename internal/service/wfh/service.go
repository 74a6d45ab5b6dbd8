package wfh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type WFHServiceImpl struct {
	wfh.RequestRepository
	logs  wfh.LogRepository
	tx    database.Transactor
	clock calendar.Clock
	audit *audit.Recorder
}

func NewWFHService(
	requests wfh.RequestRepository,
	logs wfh.LogRepository,
	tx database.Transactor,
	clock calendar.Clock,
	recorder *audit.Recorder,
) wfh.WFHService {
	return &WFHServiceImpl{
		RequestRepository: requests,
		logs:              logs,
		tx:                tx,
		clock:             clock,
		audit:             recorder,
	}
}

// Request implements wfh.WFHService.
func (s *WFHServiceImpl) Request(ctx context.Context, userID string, req wfh.CreateRequest) (wfh.Request, error) {
	if err := req.Validate(); err != nil {
		return wfh.Request{}, err
	}

	r := wfh.Request{
		ID:          utils.NewID(),
		UserID:      userID,
		WorkDate:    req.WorkDate(),
		Reason:      req.Reason,
		Status:      wfh.StatusPending,
		RequestDate: s.clock.Now(),
	}
	if err := s.RequestRepository.Create(ctx, r); err != nil {
		return wfh.Request{}, err
	}
	return r, nil
}

// List implements wfh.WFHService.
func (s *WFHServiceImpl) List(ctx context.Context, filter wfh.Filter) ([]wfh.Request, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	list, err := s.RequestRepository.List(ctx, filter.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to list WFH requests: %w", err)
	}
	return list, nil
}

// Respond implements wfh.WFHService.
func (s *WFHServiceImpl) Respond(ctx context.Context, managerID, id string, req wfh.RespondRequest) (wfh.Request, error) {
	if err := req.Validate(); err != nil {
		return wfh.Request{}, err
	}

	var resolved wfh.Request
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.RequestRepository.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != wfh.StatusPending {
			return wfh.ErrRequestResolved
		}

		now := s.clock.Now()
		current.Status = wfh.StatusDenied
		if *req.Approved {
			current.Status = wfh.StatusApproved
		}
		current.ApprovedBy = &managerID
		current.ManagerResponse = req.Response
		current.ResponseDate = &now
		if err := s.RequestRepository.Resolve(ctx, current); err != nil {
			return err
		}
		resolved = current
		return nil
	})
	if err != nil {
		return wfh.Request{}, err
	}

	s.audit.Record(ctx, managerID, "wfh."+string(resolved.Status), map[string]any{"wfh_request_id": id})
	return resolved, nil
}

// Log implements wfh.WFHService.
func (s *WFHServiceImpl) Log(ctx context.Context, userID string, req wfh.LogRequest) (wfh.LogResult, error) {
	if err := req.Validate(); err != nil {
		return wfh.LogResult{}, err
	}
	now := s.clock.Now()
	today := calendar.DateOnly(now)

	var result wfh.LogResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		approved, err := s.RequestRepository.ApprovedFor(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to check WFH approval: %w", err)
		}
		if approved == nil {
			return wfh.ErrNoApprovedWFH
		}

		open, err := s.logs.OpenForUpdate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get active WFH session: %w", err)
		}

		switch wfh.Action(req.Action) {
		case wfh.ActionStart:
			if open != nil {
				return wfh.ErrSessionAlreadyOpen
			}
			l := wfh.Log{
				ID:        utils.NewID(),
				UserID:    userID,
				RequestID: approved.ID,
				WorkDate:  today,
				StartTime: now,
				Notes:     req.Notes,
			}
			if err := s.logs.Create(ctx, l); err != nil {
				return err
			}
			result = wfh.LogResult{Action: wfh.ActionStart, StartTime: &now}

		case wfh.ActionEnd:
			if open == nil {
				return wfh.ErrNoActiveSession
			}
			hours := now.Sub(open.StartTime).Hours()
			open.EndTime = &now
			open.TotalHours = &hours
			open.Notes = wfh.AppendNote(open.Notes, req.Notes)
			if err := s.logs.Close(ctx, *open); err != nil {
				return fmt.Errorf("failed to close WFH session: %w", err)
			}
			result = wfh.LogResult{Action: wfh.ActionEnd, StartTime: &open.StartTime, EndTime: &now, TotalHours: &hours}
		}
		return nil
	})
	if err != nil {
		return wfh.LogResult{}, err
	}

	slog.Info("WFH session logged", "user_id", userID, "action", req.Action)
	return result, nil
}

// Summary implements wfh.WFHService.
func (s *WFHServiceImpl) Summary(ctx context.Context, userID string, month, year int) (wfh.Summary, error) {
	now := s.clock.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(year) {
		errs.Add("year", "invalid year")
	}
	if err := errs.Err(); err != nil {
		return wfh.Summary{}, err
	}

	from, to := calendar.MonthRange(year, time.Month(month), time.UTC)
	counts, err := s.RequestRepository.CountByStatus(ctx, userID, from, to)
	if err != nil {
		return wfh.Summary{}, fmt.Errorf("failed to count WFH requests: %w", err)
	}
	hours, err := s.logs.TotalHours(ctx, userID, from, to)
	if err != nil {
		return wfh.Summary{}, fmt.Errorf("failed to sum WFH hours: %w", err)
	}

	return wfh.Summary{Month: month, Year: year, StatusCounts: counts, TotalWFHHours: hours}, nil
}

// Cancel implements wfh.WFHService.
func (s *WFHServiceImpl) Cancel(ctx context.Context, userID, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.RequestRepository.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return wfh.ErrRequestNotFound
		}
		if current.Status != wfh.StatusPending {
			return wfh.ErrCannotCancel
		}
		return s.RequestRepository.Delete(ctx, id)
	})
}
