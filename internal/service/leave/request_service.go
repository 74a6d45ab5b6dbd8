package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// RequestLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RequestLeave(ctx context.Context, userID string, req leave.CreateLeaveRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}
	start, end := req.Dates()

	var created leave.Request
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		avail, err := l.availability(ctx, userID, req.LeaveType, start, end)
		if err != nil {
			return err
		}
		if !avail.CanTake {
			return leave.ErrBalanceNotFound
		}

		created = leave.Request{
			ID:          utils.NewID(),
			UserID:      userID,
			LeaveType:   req.LeaveType,
			StartDate:   start,
			EndDate:     end,
			Reason:      req.Reason,
			Status:      leave.StatusPending,
			RequestDate: l.clock.Now(),
		}
		return l.requests.Create(ctx, created)
	})
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("Leave requested", "user_id", userID, "leave_type", created.LeaveType, "days", created.Days())
	return created, nil
}

// ListRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	list, err := l.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return list, nil
}

// RespondToLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RespondToLeave(ctx context.Context, managerID, id string, req leave.RespondLeaveRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	var resolved leave.Request
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := l.requests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != leave.StatusPending {
			return leave.ErrRequestResolved
		}

		status := leave.RequestStatus(req.Status)
		if status == leave.StatusApproved {
			if err := l.deductApproved(ctx, current); err != nil {
				return err
			}
		}

		now := l.clock.Now()
		current.Status = status
		current.ManagerID = &managerID
		current.ResponseDate = &now
		if err := l.requests.UpdateStatus(ctx, current); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		resolved = current
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	l.audit.Record(ctx, managerID, "leave."+req.Status, map[string]any{
		"leave_request_id": id, "user_id": resolved.UserID, "days": resolved.Days(),
	})
	return resolved, nil
}

// deductApproved charges the request against the balance of its start year.
// Unlimited types carry no balance.
func (l *LeaveServiceImpl) deductApproved(ctx context.Context, r leave.Request) error {
	t, ok := l.leaveType(r.LeaveType)
	if !ok {
		return leave.ErrUnknownLeaveType
	}
	if t.Unlimited() {
		return nil
	}

	year := r.StartDate.Year()
	balance, err := l.BalanceRepository.Get(ctx, r.UserID, r.LeaveType, year)
	if err != nil {
		return fmt.Errorf("failed to get leave balance: %w", err)
	}
	if balance == nil {
		return leave.ErrBalanceNotFound
	}
	if balance.RemainingDays < r.Days() {
		return &leave.InsufficientBalanceError{Available: balance.RemainingDays, Requested: r.Days()}
	}
	return l.BalanceRepository.Adjust(ctx, r.UserID, r.LeaveType, year, r.Days())
}

// CancelLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelLeave(ctx context.Context, userID, id string) error {
	var cancelled leave.Request
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := l.requests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return leave.ErrLeaveRequestNotFound
		}

		switch current.Status {
		case leave.StatusPending:
			cancelled = current
			return l.requests.Delete(ctx, id)
		case leave.StatusApproved:
			current.Status = leave.StatusCancelled
			if err := l.requests.UpdateStatus(ctx, current); err != nil {
				return fmt.Errorf("failed to cancel leave request: %w", err)
			}
			cancelled = current
			if t, ok := l.leaveType(current.LeaveType); ok && !t.Unlimited() {
				err := l.BalanceRepository.Adjust(ctx, userID, current.LeaveType, current.StartDate.Year(), -current.Days())
				if err != nil && !errors.Is(err, leave.ErrBalanceNotFound) {
					return fmt.Errorf("failed to restore leave balance: %w", err)
				}
			}
			return nil
		default:
			return leave.ErrCannotCancel
		}
	})
	if err != nil {
		return err
	}

	l.audit.Record(ctx, userID, "leave.cancelled", map[string]any{
		"leave_request_id": id, "status": string(cancelled.Status),
	})
	return nil
}
