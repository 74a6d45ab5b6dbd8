package lateness

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// ShiftLookup finds the shift a user works on a given day.
type ShiftLookup interface {
	ShiftOn(ctx context.Context, userID string, day time.Time) (*shift.Assignment, error)
}

type LatenessServiceImpl struct {
	lateness.LateArrivalRepository
	warnings   lateness.WarningRepository
	shifts     ShiftLookup
	clock      calendar.Clock
	loc        *time.Location
	grace      int
	thresholds lateness.Thresholds
	audit      *audit.Recorder
}

func NewLatenessService(
	arrivals lateness.LateArrivalRepository,
	warnings lateness.WarningRepository,
	shifts ShiftLookup,
	clock calendar.Clock,
	loc *time.Location,
	policy config.LatenessPolicy,
	recorder *audit.Recorder,
) lateness.LatenessService {
	if loc == nil {
		loc = time.UTC
	}
	return &LatenessServiceImpl{
		LateArrivalRepository: arrivals,
		warnings:              warnings,
		shifts:                shifts,
		clock:                 clock,
		loc:                   loc,
		grace:                 policy.GracePeriodMinutes,
		thresholds: lateness.Thresholds{
			Verbal:  policy.WarningThresholds.Verbal,
			Written: policy.WarningThresholds.Written,
			Final:   policy.WarningThresholds.Final,
		},
		audit: recorder,
	}
}

// CheckOnClockIn implements lateness.LatenessService.
func (s *LatenessServiceImpl) CheckOnClockIn(ctx context.Context, userID, attendanceID string, clockIn time.Time) (lateness.CheckResult, error) {
	local := clockIn.In(s.loc)
	assignment, err := s.shifts.ShiftOn(ctx, userID, calendar.DateOnly(local))
	if err != nil {
		return lateness.CheckResult{}, err
	}
	if assignment == nil || assignment.Shift == nil {
		return lateness.CheckResult{IsLate: false, Message: "No shift assigned"}, nil
	}

	expected, err := calendar.AtClock(local, assignment.Shift.StartTime, s.loc)
	if err != nil {
		return lateness.CheckResult{}, fmt.Errorf("invalid shift start time %q: %w", assignment.Shift.StartTime, err)
	}

	result := lateness.CheckResult{
		ExpectedTime: expected.Format("15:04"),
		ActualTime:   local.Format("15:04"),
	}
	diff := int(math.Floor(local.Sub(expected).Minutes()))
	if diff <= s.grace {
		return result, nil
	}

	result.IsLate = true
	result.MinutesLate = diff - s.grace

	arrival := lateness.LateArrival{
		ID:           utils.NewID(),
		UserID:       userID,
		ArrivalTime:  clockIn,
		ExpectedTime: expected,
		MinutesLate:  result.MinutesLate,
	}
	if attendanceID != "" {
		arrival.AttendanceID = &attendanceID
	}
	if err := s.LateArrivalRepository.Create(ctx, arrival); err != nil {
		return lateness.CheckResult{}, fmt.Errorf("failed to record late arrival: %w", err)
	}
	slog.Info("Late arrival recorded", "user_id", userID, "minutes_late", result.MinutesLate)

	if _, err := s.EvaluateWarnings(ctx, userID, local); err != nil {
		return lateness.CheckResult{}, err
	}
	return result, nil
}

// EvaluateWarnings implements lateness.LatenessService.
func (s *LatenessServiceImpl) EvaluateWarnings(ctx context.Context, userID string, at time.Time) (*lateness.Warning, error) {
	local := at.In(s.loc)
	from, to := calendar.MonthRange(local.Year(), local.Month(), time.UTC)

	counts, err := s.LateArrivalRepository.CountInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count late arrivals: %w", err)
	}

	tier, ok := s.thresholds.Tier(counts.Count)
	if !ok {
		return nil, nil
	}

	exists, err := s.warnings.Exists(ctx, userID, tier, from)
	if err != nil {
		return nil, fmt.Errorf("failed to check warnings: %w", err)
	}
	if exists {
		return nil, nil
	}

	w := lateness.Warning{
		ID:           utils.NewID(),
		UserID:       userID,
		WarningType:  tier,
		LateCount:    counts.Count,
		WarningMonth: from,
		IssuedAt:     s.clock.Now(),
	}
	created, err := s.warnings.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("failed to issue warning: %w", err)
	}
	if !created {
		return nil, nil
	}

	slog.Warn("Late warning issued", "user_id", userID, "warning_type", tier, "late_count", counts.Count)
	return &w, nil
}

// Excuse implements lateness.LatenessService.
func (s *LatenessServiceImpl) Excuse(ctx context.Context, managerID, id string, req lateness.ExcuseRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.LateArrivalRepository.Excuse(ctx, id, managerID, req.Reason); err != nil {
		return err
	}
	s.audit.Record(ctx, managerID, "late_arrival.excuse", map[string]any{"late_arrival_id": id})
	return nil
}

// UserLateArrivals implements lateness.LatenessService.
func (s *LatenessServiceImpl) UserLateArrivals(ctx context.Context, userID string, q lateness.ListQuery) ([]lateness.LateArrival, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var from, to *time.Time
	if q.Year != nil {
		var start, end time.Time
		if q.Month != nil {
			start, end = calendar.MonthRange(*q.Year, time.Month(*q.Month), time.UTC)
		} else {
			start, end = calendar.YearRange(*q.Year, time.UTC)
		}
		from, to = &start, &end
	}

	list, err := s.LateArrivalRepository.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list late arrivals: %w", err)
	}
	return list, nil
}

// Summary implements lateness.LatenessService.
func (s *LatenessServiceImpl) Summary(ctx context.Context, userID string) (lateness.Summary, error) {
	now := s.clock.Now().In(s.loc)
	monthStart, monthEnd := calendar.MonthRange(now.Year(), now.Month(), time.UTC)
	yearStart, yearEnd := calendar.YearRange(now.Year(), time.UTC)

	month, err := s.LateArrivalRepository.CountInRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return lateness.Summary{}, fmt.Errorf("failed to count late arrivals: %w", err)
	}
	year, err := s.LateArrivalRepository.CountInRange(ctx, userID, yearStart, yearEnd)
	if err != nil {
		return lateness.Summary{}, fmt.Errorf("failed to count late arrivals: %w", err)
	}
	warnings, err := s.warnings.ListByUser(ctx, userID)
	if err != nil {
		return lateness.Summary{}, fmt.Errorf("failed to list warnings: %w", err)
	}
	if warnings == nil {
		warnings = []lateness.Warning{}
	}

	return lateness.Summary{
		ThisMonth:     month,
		ThisYear:      lateness.YearCount{Count: year.Count},
		Warnings:      warnings,
		NextWarningAt: s.thresholds.Next(month.Count),
	}, nil
}

// DepartmentStats implements lateness.LatenessService.
func (s *LatenessServiceImpl) DepartmentStats(ctx context.Context, q lateness.DepartmentQuery) ([]lateness.DepartmentStat, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	from, to := calendar.MonthRange(q.Year, time.Month(q.Month), time.UTC)
	stats, err := s.LateArrivalRepository.DepartmentStats(ctx, q.DepartmentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get department lateness: %w", err)
	}
	return stats, nil
}
