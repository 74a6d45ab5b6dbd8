package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id string) error
	// List returns every stored holiday ordered by date.
	List(ctx context.Context) (Calendar, error)
}

type LeaveDaysReader interface {
	// ApprovedDays sums the inclusive lengths of the user's approved leave
	// starting in year.
	ApprovedDays(ctx context.Context, userID string, year int) (int, error)
}
