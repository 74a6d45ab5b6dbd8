package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	Types(ctx context.Context) []LeaveType

	// Initialize writes prorated allotments for every finite leave type in the
	// current year.
	Initialize(ctx context.Context, userID string, hireDate *time.Time) ([]Balance, error)
	GetBalance(ctx context.Context, userID string, year int) ([]BalanceView, error)
	// CheckAvailability returns an *InsufficientBalanceError when the request
	// exceeds remaining minus pending days.
	CheckAvailability(ctx context.Context, userID string, req AvailabilityRequest) (Availability, error)
	Deduct(ctx context.Context, actorID string, req AdjustRequest) error
	Restore(ctx context.Context, actorID string, req AdjustRequest) error
	CarryForward(ctx context.Context, actorID string, req CarryForwardRequest) (CarryForwardResult, error)
	ResetAnnualBalances(ctx context.Context) (int, error)
	History(ctx context.Context, userID string, year int) ([]Request, error)

	RequestLeave(ctx context.Context, userID string, req CreateLeaveRequest) (Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error)
	RespondToLeave(ctx context.Context, managerID, id string, req RespondLeaveRequest) (Request, error)
	CancelLeave(ctx context.Context, userID, id string) error
}
