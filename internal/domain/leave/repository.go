package leave

import (
	"context"
	"time"
)

type BalanceRepository interface {
	// Upsert writes a fresh allotment. An existing row keeps its used days and
	// carried-forward days: total = b.TotalDays + carried, remaining = total - used.
	Upsert(ctx context.Context, b Balance) error
	// UpsertCarryForward sets the carried-forward days on the year's row:
	// total = base + carry, remaining = total - used.
	UpsertCarryForward(ctx context.Context, userID, leaveType string, year, base, carry int) (Balance, error)
	// Get returns nil when no row exists.
	Get(ctx context.Context, userID, leaveType string, year int) (*Balance, error)
	ListByUserYear(ctx context.Context, userID string, year int) ([]Balance, error)
	// Adjust moves days from remaining to used (negative days reverse it).
	// Returns ErrBalanceNotFound when no row exists.
	Adjust(ctx context.Context, userID, leaveType string, year, days int) error
}

type RequestRepository interface {
	Create(ctx context.Context, r Request) error
	GetForUpdate(ctx context.Context, id string) (Request, error)
	UpdateStatus(ctx context.Context, r Request) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
	// ListByUserYear returns requests starting in year, newest first.
	ListByUserYear(ctx context.Context, userID string, year int) ([]Request, error)
	// PendingDays sums inclusive lengths of pending requests starting in year,
	// grouped by leave type.
	PendingDays(ctx context.Context, userID string, year int) (map[string]int, error)
	// ApprovedInRange returns approved requests overlapping [from, to].
	ApprovedInRange(ctx context.Context, userID string, from, to time.Time) ([]Request, error)
	// OnLeave counts distinct users with approved leave covering day.
	OnLeave(ctx context.Context, day time.Time) (int, error)
}
