package wfh

import (
	"context"
	"time"
)

type RequestRepository interface {
	// Create returns ErrDuplicateRequest when the user already has a request
	// for the date.
	Create(ctx context.Context, r Request) error
	GetForUpdate(ctx context.Context, id string) (Request, error)
	Resolve(ctx context.Context, r Request) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q Query) ([]Request, error)
	// ApprovedFor returns nil when the user has no approved request for day.
	ApprovedFor(ctx context.Context, userID string, day time.Time) (*Request, error)
	CountByStatus(ctx context.Context, userID string, from, to time.Time) (StatusCounts, error)
}

type LogRepository interface {
	Create(ctx context.Context, l Log) error
	// OpenForUpdate returns nil when no session is open for the user on day.
	OpenForUpdate(ctx context.Context, userID string, day time.Time) (*Log, error)
	Close(ctx context.Context, l Log) error
	TotalHours(ctx context.Context, userID string, from, to time.Time) (float64, error)
}
