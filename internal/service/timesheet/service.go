package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

type ActiveUsers interface {
	ListActive(ctx context.Context) ([]user.User, error)
}

type TimesheetServiceImpl struct {
	timesheet.TimesheetRepository
	attendance timesheet.AttendanceReader
	users      ActiveUsers
	tx         database.Transactor
	clock      calendar.Clock
	audit      *audit.Recorder
}

func NewTimesheetService(
	sheets timesheet.TimesheetRepository,
	attendance timesheet.AttendanceReader,
	users ActiveUsers,
	tx database.Transactor,
	clock calendar.Clock,
	recorder *audit.Recorder,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		TimesheetRepository: sheets,
		attendance:          attendance,
		users:               users,
		tx:                  tx,
		clock:               clock,
		audit:               recorder,
	}
}

// Create implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Create(ctx context.Context, userID string, req timesheet.CreateRequest) (timesheet.Details, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Details{}, err
	}
	return s.create(ctx, userID, req.WeekStart())
}

func (s *TimesheetServiceImpl) create(ctx context.Context, userID string, weekStart time.Time) (timesheet.Details, error) {
	weekEnd := calendar.WeekEnd(weekStart)

	var details timesheet.Details
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.TimesheetRepository.Exists(ctx, userID, weekStart)
		if err != nil {
			return fmt.Errorf("failed to check existing timesheet: %w", err)
		}
		if exists {
			return timesheet.ErrDuplicateTimesheet
		}

		records, err := s.attendance.DailyRecords(ctx, userID, weekStart, weekEnd)
		if err != nil {
			return fmt.Errorf("failed to read weekly attendance: %w", err)
		}

		ts := timesheet.Timesheet{
			ID:            utils.NewID(),
			UserID:        userID,
			WeekStartDate: weekStart,
			WeekEndDate:   weekEnd,
			TotalHours:    timesheet.SumHours(records),
			Status:        timesheet.StatusDraft,
			CreatedAt:     s.clock.Now(),
		}
		if err := s.TimesheetRepository.Create(ctx, ts); err != nil {
			return err
		}
		details = timesheet.Details{Timesheet: ts, DailyRecords: records}
		return nil
	})
	if err != nil {
		return timesheet.Details{}, err
	}
	return details, nil
}

// transition loads the caller's own sheet under lock, checks the expected
// status and applies fn before writing it back.
func (s *TimesheetServiceImpl) transition(ctx context.Context, userID, id string, from timesheet.Status, wrongState error, fn func(*timesheet.Timesheet)) (timesheet.Timesheet, error) {
	var out timesheet.Timesheet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ts, err := s.TimesheetRepository.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if userID != "" && ts.UserID != userID {
			return timesheet.ErrTimesheetNotFound
		}
		if ts.Status != from {
			return wrongState
		}
		fn(&ts)
		if err := s.TimesheetRepository.UpdateStatus(ctx, ts); err != nil {
			return fmt.Errorf("failed to update timesheet: %w", err)
		}
		out = ts
		return nil
	})
	return out, err
}

// Submit implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, userID, id string) (timesheet.Timesheet, error) {
	return s.transition(ctx, userID, id, timesheet.StatusDraft, timesheet.ErrAlreadySubmitted, func(ts *timesheet.Timesheet) {
		now := s.clock.Now()
		ts.Status = timesheet.StatusPending
		ts.SubmittedAt = &now
	})
}

// Recall implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Recall(ctx context.Context, userID, id string) (timesheet.Timesheet, error) {
	return s.transition(ctx, userID, id, timesheet.StatusPending, timesheet.ErrNotPending, func(ts *timesheet.Timesheet) {
		ts.Status = timesheet.StatusDraft
		ts.SubmittedAt = nil
	})
}

// Review implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Review(ctx context.Context, managerID, id string, req timesheet.ReviewRequest) (timesheet.Timesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Timesheet{}, err
	}

	ts, err := s.transition(ctx, "", id, timesheet.StatusPending, timesheet.ErrNotAwaitingReview, func(ts *timesheet.Timesheet) {
		now := s.clock.Now()
		ts.Status = timesheet.StatusRejected
		if *req.Approved {
			ts.Status = timesheet.StatusApproved
		}
		ts.ApprovedBy = &managerID
		ts.ApprovedAt = &now
		ts.ManagerNotes = req.Notes
	})
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	s.audit.Record(ctx, managerID, "timesheet."+string(ts.Status), map[string]any{"timesheet_id": id})
	return ts, nil
}

// MyTimesheets implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) MyTimesheets(ctx context.Context, userID string, filter timesheet.Filter) ([]timesheet.Timesheet, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	list, err := s.TimesheetRepository.ListByUser(ctx, userID, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return list, nil
}

// Pending implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Pending(ctx context.Context, departmentID *string) ([]timesheet.Timesheet, error) {
	list, err := s.TimesheetRepository.ListPending(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending timesheets: %w", err)
	}
	return list, nil
}

// Details implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Details(ctx context.Context, viewer timesheet.Viewer, id string) (timesheet.Details, error) {
	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.Details{}, err
	}
	if !viewer.CanViewAll && ts.UserID != viewer.UserID {
		return timesheet.Details{}, timesheet.ErrTimesheetNotFound
	}

	records, err := s.attendance.DailyRecords(ctx, ts.UserID, ts.WeekStartDate, ts.WeekEndDate)
	if err != nil {
		return timesheet.Details{}, fmt.Errorf("failed to read weekly attendance: %w", err)
	}
	return timesheet.Details{Timesheet: ts, DailyRecords: records}, nil
}

// AutoCreateWeekly implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) AutoCreateWeekly(ctx context.Context) (timesheet.AutoCreateResult, error) {
	weekStart := calendar.WeekStart(s.clock.Now())

	users, err := s.users.ListActive(ctx)
	if err != nil {
		return timesheet.AutoCreateResult{}, fmt.Errorf("failed to list active users: %w", err)
	}

	result := timesheet.AutoCreateResult{WeekStart: weekStart}
	for _, u := range users {
		_, err := s.create(ctx, u.ID, weekStart)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, timesheet.ErrDuplicateTimesheet):
		default:
			slog.Error("Failed to create weekly timesheet", "user_id", u.ID, "error", err)
		}
	}

	slog.Info("Weekly timesheets created", "week_start", weekStart.Format(time.DateOnly), "created", result.Created)
	return result, nil
}
