package timesheet

import (
	"context"
	"time"
)

type TimesheetRepository interface {
	// Create returns ErrDuplicateTimesheet when the user already has a sheet
	// for the week.
	Create(ctx context.Context, ts Timesheet) error
	Exists(ctx context.Context, userID string, weekStart time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (Timesheet, error)
	GetForUpdate(ctx context.Context, id string) (Timesheet, error)
	// UpdateStatus writes status, submitted_at and the review fields.
	UpdateStatus(ctx context.Context, ts Timesheet) error
	ListByUser(ctx context.Context, userID string, status *Status) ([]Timesheet, error)
	// ListPending returns pending sheets, oldest submission first.
	ListPending(ctx context.Context, departmentID *string) ([]Timesheet, error)
}

type AttendanceReader interface {
	// DailyRecords returns the user's attendance with work dates in [from, to],
	// ordered by clock-in.
	DailyRecords(ctx context.Context, userID string, from, to time.Time) ([]DailyRecord, error)
}
