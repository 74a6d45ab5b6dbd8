package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create returns ErrAlreadyClockedIn when a record exists for the work date.
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// GetByUserAndDate returns the record for the work date, open or closed, or nil.
	GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*Record, error)
	// GetOpenForUpdate locks and returns the open record for the work date, or nil.
	GetOpenForUpdate(ctx context.Context, userID string, workDate time.Time) (*Record, error)
	Close(ctx context.Context, id string, clockOut time.Time, latitude, longitude, totalHours float64) error
	// List returns records newest first.
	List(ctx context.Context, q Query) ([]Record, error)
}

type CorrectionRepository interface {
	Create(ctx context.Context, c CorrectionRequest) error
	// GetForUpdate locks the request row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id string) (CorrectionRequest, error)
	HasPending(ctx context.Context, attendanceID string) (bool, error)
	Resolve(ctx context.Context, c CorrectionRequest) error
	ListPending(ctx context.Context) ([]CorrectionRequest, error)
	ListByUser(ctx context.Context, userID string) ([]CorrectionRequest, error)
}
