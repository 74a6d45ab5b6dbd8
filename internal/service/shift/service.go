package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	assignments shift.AssignmentRepository
	swaps       shift.SwapRepository
	tx          database.Transactor
	clock       calendar.Clock
	policy      config.ShiftPolicy
	audit       *audit.Recorder
}

func NewShiftService(
	shifts shift.ShiftRepository,
	assignments shift.AssignmentRepository,
	swaps shift.SwapRepository,
	tx database.Transactor,
	clock calendar.Clock,
	policy config.ShiftPolicy,
	recorder *audit.Recorder,
) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: shifts,
		assignments:     assignments,
		swaps:           swaps,
		tx:              tx,
		clock:           clock,
		policy:          policy,
		audit:           recorder,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.Shift, error) {
	if err := req.Validate(); err != nil {
		return shift.Shift{}, err
	}

	breakMinutes := s.policy.DefaultBreakMinutes
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		ID:           utils.NewID(),
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: breakMinutes,
		IsActive:     true,
	})
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.Shift, error) {
	shifts, err := s.ShiftRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// Assign implements shift.ShiftService.
func (s *ShiftServiceImpl) Assign(ctx context.Context, req shift.AssignShiftRequest) (shift.Assignment, error) {
	if err := req.Validate(); err != nil {
		return shift.Assignment{}, err
	}
	effective, end := req.Dates()

	var created shift.Assignment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sh, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
		if err != nil {
			return err
		}

		overlap, err := s.assignments.HasOverlap(ctx, req.UserID, req.ShiftID, effective, end)
		if err != nil {
			return fmt.Errorf("failed to check assignment overlap: %w", err)
		}
		if overlap {
			return shift.ErrOverlappingAssignment
		}

		created, err = s.assignments.Create(ctx, shift.Assignment{
			ID:            utils.NewID(),
			UserID:        req.UserID,
			ShiftID:       req.ShiftID,
			EffectiveDate: effective,
			EndDate:       end,
		})
		if err != nil {
			return err
		}
		created.Shift = &sh
		return nil
	})
	if err != nil {
		return shift.Assignment{}, err
	}

	slog.Info("Shift assigned", "user_id", created.UserID, "shift_id", created.ShiftID, "effective_date", effective.Format(calendar.DateLayout))
	return created, nil
}

// CurrentShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CurrentShift(ctx context.Context, userID string) (*shift.Assignment, error) {
	return s.ShiftOn(ctx, userID, calendar.Today(s.clock))
}

// ShiftOn implements shift.ShiftService.
func (s *ShiftServiceImpl) ShiftOn(ctx context.Context, userID string, day time.Time) (*shift.Assignment, error) {
	a, err := s.assignments.ActiveOn(ctx, userID, calendar.DateOnly(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get active shift: %w", err)
	}
	return a, nil
}

// MyAssignments implements shift.ShiftService.
func (s *ShiftServiceImpl) MyAssignments(ctx context.Context, userID string) ([]shift.Assignment, error) {
	list, err := s.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	return list, nil
}

// DepartmentSchedule implements shift.ShiftService.
func (s *ShiftServiceImpl) DepartmentSchedule(ctx context.Context, departmentID string, weekStart time.Time) (shift.ScheduleWeek, error) {
	start := calendar.DateOnly(weekStart)
	entries, err := s.assignments.DepartmentSchedule(ctx, departmentID, start, calendar.WeekEnd(start))
	if err != nil {
		return shift.ScheduleWeek{}, fmt.Errorf("failed to get department schedule: %w", err)
	}
	return shift.NewScheduleWeek(departmentID, start, entries), nil
}

// RequestSwap implements shift.ShiftService.
func (s *ShiftServiceImpl) RequestSwap(ctx context.Context, requesterID string, req shift.CreateSwapRequest) (shift.SwapRequest, error) {
	if err := req.Validate(); err != nil {
		return shift.SwapRequest{}, err
	}
	if req.TargetUserID == requesterID {
		return shift.SwapRequest{}, shift.ErrSwapWithSelf
	}

	created, err := s.swaps.Create(ctx, shift.SwapRequest{
		ID:           utils.NewID(),
		RequesterID:  requesterID,
		TargetUserID: req.TargetUserID,
		SwapDate:     req.Date(),
		Reason:       req.Reason,
		Status:       shift.SwapPending,
		RequestDate:  s.clock.Now(),
	})
	if err != nil {
		return shift.SwapRequest{}, fmt.Errorf("failed to create shift swap request: %w", err)
	}
	return created, nil
}

// RespondToSwap implements shift.ShiftService.
func (s *ShiftServiceImpl) RespondToSwap(ctx context.Context, responder shift.Responder, id string, req shift.RespondSwapRequest) (shift.SwapRequest, error) {
	var updated shift.SwapRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.swaps.GetByID(ctx, id)
		if err != nil {
			return err
		}

		next, err := current.NextStatus(responder, req.TargetAccepted, req.ManagerApproved)
		if err != nil {
			return err
		}

		current.Status = next
		if next == shift.SwapApproved || next == shift.SwapRejectedByManager {
			now := s.clock.Now()
			approver := responder.UserID
			current.ApprovedBy = &approver
			current.ResponseDate = &now
		}
		if err := s.swaps.UpdateStatus(ctx, current.ID, current.Status, current.ApprovedBy, current.ResponseDate); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return shift.SwapRequest{}, err
	}

	if updated.ApprovedBy != nil {
		s.audit.Record(ctx, responder.UserID, "shift_swap."+string(updated.Status), map[string]any{"swap_id": updated.ID})
	}
	return updated, nil
}

// ListSwaps implements shift.ShiftService.
func (s *ShiftServiceImpl) ListSwaps(ctx context.Context, filter shift.SwapFilter) ([]shift.SwapRequest, error) {
	list, err := s.swaps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift swap requests: %w", err)
	}
	return list, nil
}
