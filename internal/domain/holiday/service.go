package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	Add(ctx context.Context, actorID string, req CreateRequest) (Holiday, error)
	Delete(ctx context.Context, actorID, id string) error
	ForYear(ctx context.Context, year int) ([]Holiday, error)
	// IsHoliday returns nil when day is not a holiday.
	IsHoliday(ctx context.Context, day time.Time) (*Holiday, error)
	Upcoming(ctx context.Context, limit int) ([]Holiday, error)
	WorkingDays(ctx context.Context, start, end time.Time) (int, error)
	Summary(ctx context.Context, userID string) (Summary, error)
}
