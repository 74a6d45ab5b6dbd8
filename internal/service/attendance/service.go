package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// LocationGuard rejects coordinates outside every authorized location.
type LocationGuard interface {
	Authorize(ctx context.Context, latitude, longitude float64) error
}

// LateChecker evaluates a fresh clock-in against the user's shift.
type LateChecker interface {
	CheckOnClockIn(ctx context.Context, userID, attendanceID string, clockIn time.Time) (lateness.CheckResult, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	corrections attendance.CorrectionRepository
	locations   LocationGuard
	late        LateChecker
	tx          database.Transactor
	clock       calendar.Clock
	audit       *audit.Recorder
}

func NewAttendanceService(
	records attendance.AttendanceRepository,
	corrections attendance.CorrectionRepository,
	locations LocationGuard,
	late LateChecker,
	tx database.Transactor,
	clock calendar.Clock,
	recorder *audit.Recorder,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: records,
		corrections:          corrections,
		locations:            locations,
		late:                 late,
		tx:                   tx,
		clock:                clock,
		audit:                recorder,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, userID string, req attendance.ClockRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockInResponse{}, err
	}
	if err := a.locations.Authorize(ctx, *req.Latitude, *req.Longitude); err != nil {
		return attendance.ClockInResponse{}, err
	}

	now := a.clock.Now()
	today := calendar.DateOnly(now)

	var resp attendance.ClockInResponse
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to check today's attendance: %w", err)
		}
		if existing != nil {
			return attendance.ErrAlreadyClockedIn
		}

		record := attendance.Record{
			ID:               utils.NewID(),
			UserID:           userID,
			WorkDate:         today,
			ClockIn:          now,
			ClockInLatitude:  *req.Latitude,
			ClockInLongitude: *req.Longitude,
		}
		if err := a.AttendanceRepository.Create(ctx, record); err != nil {
			return err
		}

		late, err := a.late.CheckOnClockIn(ctx, userID, record.ID, now)
		if err != nil {
			return fmt.Errorf("failed to check late arrival: %w", err)
		}

		resp = attendance.ClockInResponse{ID: record.ID, ClockInTime: now, Late: late}
		return nil
	})
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	slog.Info("Clock-in recorded", "user_id", userID, "attendance_id", resp.ID, "late", resp.Late.IsLate)
	return resp, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, userID string, req attendance.ClockRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}
	if err := a.locations.Authorize(ctx, *req.Latitude, *req.Longitude); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	now := a.clock.Now()
	today := calendar.DateOnly(now)

	var resp attendance.ClockOutResponse
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		open, err := a.AttendanceRepository.GetOpenForUpdate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get open attendance: %w", err)
		}
		if open == nil {
			return attendance.ErrNoOpenRecord
		}

		hours := attendance.Hours(open.ClockIn, now)
		if err := a.AttendanceRepository.Close(ctx, open.ID, now, *req.Latitude, *req.Longitude, hours); err != nil {
			return fmt.Errorf("failed to close attendance: %w", err)
		}

		resp = attendance.ClockOutResponse{ID: open.ID, ClockOutTime: now, TotalHours: hours}
		return nil
	})
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}
	return resp, nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, to := filter.Range()
	records, err := a.AttendanceRepository.List(ctx, attendance.Query{UserID: filter.UserID, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// MyRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyRecords(ctx context.Context, userID string, filter attendance.RecordFilter) ([]attendance.Record, error) {
	filter.UserID = &userID
	return a.ListRecords(ctx, filter)
}

// RequestCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RequestCorrection(ctx context.Context, userID string, req attendance.CreateCorrectionRequest) (attendance.CorrectionRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.CorrectionRequest{}, err
	}

	var created attendance.CorrectionRequest
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByID(ctx, req.AttendanceID)
		if err != nil {
			return err
		}
		if record.UserID != userID {
			return attendance.ErrNotRecordOwner
		}

		pending, err := a.corrections.HasPending(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to check pending corrections: %w", err)
		}
		if pending {
			return attendance.ErrCorrectionPendingDup
		}

		created = attendance.CorrectionRequest{
			ID:            utils.NewID(),
			UserID:        userID,
			AttendanceID:  record.ID,
			RequestReason: req.RequestReason,
			Status:        attendance.CorrectionPending,
			RequestDate:   a.clock.Now(),
		}
		return a.corrections.Create(ctx, created)
	})
	if err != nil {
		return attendance.CorrectionRequest{}, err
	}
	return created, nil
}

// RespondToCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RespondToCorrection(ctx context.Context, managerID, id string, req attendance.RespondCorrectionRequest) (attendance.CorrectionRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.CorrectionRequest{}, err
	}

	var resolved attendance.CorrectionRequest
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := a.corrections.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != attendance.CorrectionPending {
			return attendance.ErrCorrectionResolved
		}

		now := a.clock.Now()
		current.Status = attendance.CorrectionStatus(req.Status)
		current.ManagerID = &managerID
		current.ManagerResponse = &req.ManagerResponse
		current.ResponseDate = &now
		if err := a.corrections.Resolve(ctx, current); err != nil {
			return err
		}
		resolved = current
		return nil
	})
	if err != nil {
		return attendance.CorrectionRequest{}, err
	}

	a.audit.Record(ctx, managerID, "correction."+req.Status, map[string]any{"correction_id": id})
	return resolved, nil
}

// PendingCorrections implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PendingCorrections(ctx context.Context) ([]attendance.CorrectionRequest, error) {
	list, err := a.corrections.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending corrections: %w", err)
	}
	return list, nil
}

// MyCorrections implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyCorrections(ctx context.Context, userID string) ([]attendance.CorrectionRequest, error) {
	list, err := a.corrections.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	return list, nil
}
