package overtime

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, r Request) error
	GetForUpdate(ctx context.Context, id string) (Request, error)
	Resolve(ctx context.Context, r Request) error
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
}

type HoursRepository interface {
	// MonthTotals aggregates closed attendance records with work dates in
	// [from, to].
	MonthTotals(ctx context.Context, userID string, from, to time.Time, standardHours float64) (MonthTotals, error)
}
