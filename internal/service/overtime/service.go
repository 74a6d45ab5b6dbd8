package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

type OvertimeServiceImpl struct {
	overtime.RequestRepository
	hours  overtime.HoursRepository
	work   config.WorkPolicy
	policy config.OvertimePolicy
	tiers  overtime.Tiers
	tx     database.Transactor
	clock  calendar.Clock
	audit  *audit.Recorder
}

func NewOvertimeService(
	requests overtime.RequestRepository,
	hours overtime.HoursRepository,
	work config.WorkPolicy,
	policy config.OvertimePolicy,
	tx database.Transactor,
	clock calendar.Clock,
	recorder *audit.Recorder,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		RequestRepository: requests,
		hours:             hours,
		work:              work,
		policy:            policy,
		tiers:             overtime.Tiers{Standard: work.StandardDailyHours, TierHours: policy.OvertimeTierHours},
		tx:                tx,
		clock:             clock,
		audit:             recorder,
	}
}

// Classify implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) Classify(totalHours float64) overtime.Classification {
	return o.tiers.Classify(totalHours)
}

// Summary implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) Summary(ctx context.Context, userID string, q overtime.PeriodQuery) (overtime.Summary, error) {
	if err := q.Validate(); err != nil {
		return overtime.Summary{}, err
	}
	month, year := q.Resolve(o.clock.Now())
	from, to := calendar.MonthRange(year, month, time.UTC)

	totals, err := o.hours.MonthTotals(ctx, userID, from, to, o.work.StandardDailyHours)
	if err != nil {
		return overtime.Summary{}, fmt.Errorf("failed to aggregate monthly hours: %w", err)
	}

	return overtime.Summary{
		Month:                int(month),
		Year:                 year,
		TotalOvertimeHours:   totals.TotalOvertime,
		OvertimeDays:         totals.OvertimeDays,
		TotalHoursWorked:     totals.TotalHoursWorked,
		RegularHoursExpected: o.work.RegularMonthlyHours(),
	}, nil
}

// CalculatePay implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) CalculatePay(ctx context.Context, userID string, q overtime.PayQuery) (overtime.Pay, error) {
	if err := q.Validate(); err != nil {
		return overtime.Pay{}, err
	}
	summary, err := o.Summary(ctx, userID, q.PeriodQuery)
	if err != nil {
		return overtime.Pay{}, err
	}

	regular := min(summary.TotalHoursWorked, summary.RegularHoursExpected) * q.HourlyRate
	extra := summary.TotalOvertimeHours * q.HourlyRate * o.policy.OvertimeMultiplier
	return overtime.Pay{
		Summary:     summary,
		HourlyRate:  q.HourlyRate,
		RegularPay:  regular,
		OvertimePay: extra,
		TotalPay:    regular + extra,
	}, nil
}

// Request implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) Request(ctx context.Context, userID string, req overtime.CreateRequest) (overtime.Request, error) {
	if err := req.Validate(); err != nil {
		return overtime.Request{}, err
	}

	r := overtime.Request{
		ID:             utils.NewID(),
		UserID:         userID,
		WorkDate:       req.WorkDate(),
		RequestedHours: req.Hours,
		Reason:         req.Reason,
		Status:         overtime.StatusPending,
		RequestDate:    o.clock.Now(),
	}
	if err := o.RequestRepository.Create(ctx, r); err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	slog.Info("Overtime requested", "user_id", userID, "work_date", req.Date, "hours", req.Hours)
	return r, nil
}

// List implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) List(ctx context.Context, filter overtime.RequestFilter) ([]overtime.Request, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	list, err := o.RequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return list, nil
}

// Respond implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) Respond(ctx context.Context, managerID, id string, req overtime.RespondRequest) (overtime.Request, error) {
	if err := req.Validate(); err != nil {
		return overtime.Request{}, err
	}

	var resolved overtime.Request
	err := o.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := o.RequestRepository.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != overtime.StatusPending {
			return overtime.ErrRequestResolved
		}

		now := o.clock.Now()
		current.Status = overtime.StatusDenied
		if *req.Approved {
			current.Status = overtime.StatusApproved
		}
		current.ApprovedBy = &managerID
		current.ManagerResponse = &req.Response
		current.ResponseDate = &now
		if err := o.RequestRepository.Resolve(ctx, current); err != nil {
			return err
		}
		resolved = current
		return nil
	})
	if err != nil {
		return overtime.Request{}, err
	}

	o.audit.Record(ctx, managerID, "overtime."+string(resolved.Status), map[string]any{"overtime_request_id": id})
	return resolved, nil
}
