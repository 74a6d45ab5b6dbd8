package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// ActiveUsers lists the users that hold leave balances.
type ActiveUsers interface {
	ListActive(ctx context.Context) ([]user.User, error)
}

type LeaveServiceImpl struct {
	leave.BalanceRepository
	requests   leave.RequestRepository
	users      ActiveUsers
	types      []leave.LeaveType
	policy     config.LeavePolicy
	calculator *QuotaCalculator
	tx         database.Transactor
	clock      calendar.Clock
	audit      *audit.Recorder
}

func NewLeaveService(
	balances leave.BalanceRepository,
	requests leave.RequestRepository,
	users ActiveUsers,
	types []config.LeaveTypeEntry,
	policy config.LeavePolicy,
	tx database.Transactor,
	clock calendar.Clock,
	recorder *audit.Recorder,
) leave.LeaveService {
	lts := make([]leave.LeaveType, 0, len(types))
	for _, t := range types {
		lts = append(lts, leave.LeaveType{Name: t.Name, DefaultDays: t.DefaultDays, Description: t.Description})
	}
	return &LeaveServiceImpl{
		BalanceRepository: balances,
		requests:          requests,
		users:             users,
		types:             lts,
		policy:            policy,
		calculator:        NewQuotaCalculator(),
		tx:                tx,
		clock:             clock,
		audit:             recorder,
	}
}

func (l *LeaveServiceImpl) leaveType(name string) (leave.LeaveType, bool) {
	for _, t := range l.types {
		if t.Name == name {
			return t, true
		}
	}
	return leave.LeaveType{}, false
}

func (l *LeaveServiceImpl) currentYear() int {
	return l.clock.Now().Year()
}

// Types implements leave.LeaveService.
func (l *LeaveServiceImpl) Types(ctx context.Context) []leave.LeaveType {
	out := make([]leave.LeaveType, len(l.types))
	copy(out, l.types)
	return out
}

// Initialize implements leave.LeaveService.
func (l *LeaveServiceImpl) Initialize(ctx context.Context, userID string, hireDate *time.Time) ([]leave.Balance, error) {
	year := l.currentYear()

	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, t := range l.types {
			if t.Unlimited() {
				continue
			}
			days := l.calculator.Prorate(t, hireDate, year)
			err := l.BalanceRepository.Upsert(ctx, leave.Balance{
				ID:            utils.NewID(),
				UserID:        userID,
				LeaveType:     t.Name,
				Year:          year,
				TotalDays:     days,
				RemainingDays: days,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize %s balance: %w", t.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.BalanceRepository.ListByUserYear(ctx, userID, year)
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, userID string, year int) ([]leave.BalanceView, error) {
	if year == 0 {
		year = l.currentYear()
	}

	balances, err := l.BalanceRepository.ListByUserYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	pending, err := l.requests.PendingDays(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending leave: %w", err)
	}

	views := make([]leave.BalanceView, 0, len(balances))
	for _, b := range balances {
		name := b.LeaveType
		if t, ok := l.leaveType(b.LeaveType); ok && t.Description != "" {
			name = t.Description
		}
		views = append(views, leave.BalanceView{
			Balance:       b,
			LeaveTypeName: name,
			PendingDays:   pending[b.LeaveType],
			AvailableDays: b.RemainingDays - pending[b.LeaveType],
		})
	}
	return views, nil
}

// CheckAvailability implements leave.LeaveService.
func (l *LeaveServiceImpl) CheckAvailability(ctx context.Context, userID string, req leave.AvailabilityRequest) (leave.Availability, error) {
	if err := req.Validate(); err != nil {
		return leave.Availability{}, err
	}
	start, end := req.Dates()
	return l.availability(ctx, userID, req.LeaveType, start, end)
}

func (l *LeaveServiceImpl) availability(ctx context.Context, userID, leaveType string, start, end time.Time) (leave.Availability, error) {
	t, ok := l.leaveType(leaveType)
	if !ok {
		return leave.Availability{}, leave.ErrUnknownLeaveType
	}

	requested := calendar.InclusiveDays(start, end)
	if t.Unlimited() {
		return leave.Availability{CanTake: true, RequestedDays: requested}, nil
	}

	year := start.Year()
	balance, err := l.BalanceRepository.Get(ctx, userID, leaveType, year)
	if err != nil {
		return leave.Availability{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if balance == nil {
		return leave.Availability{CanTake: false, Reason: "Leave balance not found", RequestedDays: requested}, nil
	}

	pending, err := l.requests.PendingDays(ctx, userID, year)
	if err != nil {
		return leave.Availability{}, fmt.Errorf("failed to sum pending leave: %w", err)
	}
	available := balance.RemainingDays - pending[leaveType]

	if requested > available {
		insufficient := &leave.InsufficientBalanceError{Available: available, Requested: requested}
		return leave.Availability{
			CanTake:       false,
			Reason:        insufficient.Error(),
			AvailableDays: &available,
			RequestedDays: requested,
		}, insufficient
	}
	return leave.Availability{CanTake: true, AvailableDays: &available, RequestedDays: requested}, nil
}

// Deduct implements leave.LeaveService.
func (l *LeaveServiceImpl) Deduct(ctx context.Context, actorID string, req leave.AdjustRequest) error {
	return l.adjust(ctx, actorID, req, 1)
}

// Restore implements leave.LeaveService.
func (l *LeaveServiceImpl) Restore(ctx context.Context, actorID string, req leave.AdjustRequest) error {
	return l.adjust(ctx, actorID, req, -1)
}

func (l *LeaveServiceImpl) adjust(ctx context.Context, actorID string, req leave.AdjustRequest, sign int) error {
	if err := req.Validate(); err != nil {
		return err
	}
	t, ok := l.leaveType(req.LeaveType)
	if !ok || t.Unlimited() {
		return leave.ErrUnknownLeaveType
	}
	year := l.currentYear()
	if req.Year != nil {
		year = *req.Year
	}

	if err := l.BalanceRepository.Adjust(ctx, req.UserID, req.LeaveType, year, sign*req.Days); err != nil {
		return err
	}

	action := "leave_balance.deduct"
	if sign < 0 {
		action = "leave_balance.restore"
	}
	l.audit.Record(ctx, actorID, action, map[string]any{
		"user_id": req.UserID, "leave_type": req.LeaveType, "year": year, "days": req.Days,
	})
	return nil
}

// CarryForward implements leave.LeaveService.
func (l *LeaveServiceImpl) CarryForward(ctx context.Context, actorID string, req leave.CarryForwardRequest) (leave.CarryForwardResult, error) {
	if err := req.Validate(); err != nil {
		return leave.CarryForwardResult{}, err
	}
	maxDays := l.policy.CarryForwardMaxDays
	if req.MaxDays != nil {
		maxDays = *req.MaxDays
	}
	t, ok := l.leaveType(l.policy.CarryForwardType)
	if !ok {
		return leave.CarryForwardResult{}, leave.ErrUnknownLeaveType
	}
	year := l.currentYear()

	var result leave.CarryForwardResult
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := l.BalanceRepository.Get(ctx, req.UserID, t.Name, year)
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}
		if current == nil {
			return leave.ErrBalanceNotFound
		}

		carry := l.calculator.CarryForward(current.RemainingDays, maxDays)
		next, err := l.BalanceRepository.UpsertCarryForward(ctx, req.UserID, t.Name, year+1, t.DefaultDays, carry)
		if err != nil {
			return fmt.Errorf("failed to carry forward leave: %w", err)
		}

		result = leave.CarryForwardResult{
			UserID:         req.UserID,
			Year:           next.Year,
			CarriedForward: next.CarriedForward,
			TotalDays:      next.TotalDays,
		}
		return nil
	})
	if err != nil {
		return leave.CarryForwardResult{}, err
	}

	l.audit.Record(ctx, actorID, "leave_balance.carry_forward", map[string]any{
		"user_id": req.UserID, "year": result.Year, "days": result.CarriedForward,
	})
	return result, nil
}

// ResetAnnualBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ResetAnnualBalances(ctx context.Context) (int, error) {
	users, err := l.users.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active users: %w", err)
	}

	count := 0
	for _, u := range users {
		if _, err := l.Initialize(ctx, u.ID, u.HireDate); err != nil {
			slog.Error("Failed to reset leave balance", "user_id", u.ID, "error", err)
			continue
		}
		count++
	}

	slog.Info("Annual leave balances reset", "year", l.currentYear(), "users", count, "total", len(users))
	return count, nil
}

// History implements leave.LeaveService.
func (l *LeaveServiceImpl) History(ctx context.Context, userID string, year int) ([]leave.Request, error) {
	if year == 0 {
		year = l.currentYear()
	}
	list, err := l.requests.ListByUserYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave history: %w", err)
	}
	return list, nil
}
