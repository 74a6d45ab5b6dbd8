package lateness

import (
	"context"
	"time"
)

type LatenessService interface {
	// CheckOnClockIn compares clockIn with the start of the user's shift and
	// records a late arrival past the grace period.
	CheckOnClockIn(ctx context.Context, userID, attendanceID string, clockIn time.Time) (CheckResult, error)
	// EvaluateWarnings issues the highest tier reached this month if it has not
	// been issued yet. Returns nil when nothing was issued.
	EvaluateWarnings(ctx context.Context, userID string, at time.Time) (*Warning, error)
	Excuse(ctx context.Context, managerID, id string, req ExcuseRequest) error
	UserLateArrivals(ctx context.Context, userID string, q ListQuery) ([]LateArrival, error)
	Summary(ctx context.Context, userID string) (Summary, error)
	DepartmentStats(ctx context.Context, q DepartmentQuery) ([]DepartmentStat, error)
}
