package timesheet

import "context"

type TimesheetService interface {
	Create(ctx context.Context, userID string, req CreateRequest) (Details, error)
	Submit(ctx context.Context, userID, id string) (Timesheet, error)
	Recall(ctx context.Context, userID, id string) (Timesheet, error)
	Review(ctx context.Context, managerID, id string, req ReviewRequest) (Timesheet, error)
	MyTimesheets(ctx context.Context, userID string, filter Filter) ([]Timesheet, error)
	Pending(ctx context.Context, departmentID *string) ([]Timesheet, error)
	Details(ctx context.Context, viewer Viewer, id string) (Details, error)
	// AutoCreateWeekly creates the current week's sheet for every active user.
	// Existing sheets are skipped.
	AutoCreateWeekly(ctx context.Context) (AutoCreateResult, error)
}
