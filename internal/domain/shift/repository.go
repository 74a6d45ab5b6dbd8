package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	ListActive(ctx context.Context) ([]Shift, error)
}

type AssignmentRepository interface {
	// HasOverlap checks for an existing (user, shift) assignment whose interval
	// intersects [effective, end]; a nil end means open-ended.
	HasOverlap(ctx context.Context, userID, shiftID string, effective time.Time, end *time.Time) (bool, error)
	// Create returns ErrOverlappingAssignment when the store rejects an overlap.
	Create(ctx context.Context, a Assignment) (Assignment, error)
	// ActiveOn returns the most recently effective assignment covering day, or nil.
	ActiveOn(ctx context.Context, userID string, day time.Time) (*Assignment, error)
	ListByUser(ctx context.Context, userID string) ([]Assignment, error)
	DepartmentSchedule(ctx context.Context, departmentID string, from, to time.Time) ([]ScheduleEntry, error)
}

type SwapRepository interface {
	Create(ctx context.Context, req SwapRequest) (SwapRequest, error)
	GetByID(ctx context.Context, id string) (SwapRequest, error)
	UpdateStatus(ctx context.Context, id string, status SwapStatus, approvedBy *string, responseDate *time.Time) error
	List(ctx context.Context, filter SwapFilter) ([]SwapRequest, error)
}
