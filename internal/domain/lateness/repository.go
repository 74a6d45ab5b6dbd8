package lateness

import (
	"context"
	"time"
)

type LateArrivalRepository interface {
	Create(ctx context.Context, la LateArrival) error
	// Excuse returns ErrLateArrivalNotFound when id does not exist.
	Excuse(ctx context.Context, id, excusedBy, reason string) error
	// ListByUser returns arrivals newest first; nil bounds are open.
	ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]LateArrival, error)
	// CountInRange counts arrivals whose arrival date lies in [from, to],
	// excused ones included.
	CountInRange(ctx context.Context, userID string, from, to time.Time) (MonthCount, error)
	DepartmentStats(ctx context.Context, departmentID string, from, to time.Time) ([]DepartmentStat, error)
}

type WarningRepository interface {
	Exists(ctx context.Context, userID string, warningType WarningType, month time.Time) (bool, error)
	// Create reports false when a warning of the same type already exists for
	// the user and month.
	Create(ctx context.Context, w Warning) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Warning, error)
}
