package shift

import (
	"context"
	"time"
)

type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (Shift, error)
	ListShifts(ctx context.Context) ([]Shift, error)

	Assign(ctx context.Context, req AssignShiftRequest) (Assignment, error)
	// CurrentShift returns the assignment covering today, or nil.
	CurrentShift(ctx context.Context, userID string) (*Assignment, error)
	// ShiftOn returns the assignment covering day, or nil.
	ShiftOn(ctx context.Context, userID string, day time.Time) (*Assignment, error)
	MyAssignments(ctx context.Context, userID string) ([]Assignment, error)
	DepartmentSchedule(ctx context.Context, departmentID string, weekStart time.Time) (ScheduleWeek, error)

	RequestSwap(ctx context.Context, requesterID string, req CreateSwapRequest) (SwapRequest, error)
	RespondToSwap(ctx context.Context, responder Responder, id string, req RespondSwapRequest) (SwapRequest, error)
	ListSwaps(ctx context.Context, filter SwapFilter) ([]SwapRequest, error)
}
