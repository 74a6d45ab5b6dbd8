package report

import (
	"context"
	"time"
)

type ReportRepository interface {
	// MonthStats aggregates attendance with work_date in [from, to]. Hours
	// above standardHours on a day count as overtime.
	MonthStats(ctx context.Context, userID string, from, to time.Time, standardHours float64) (MonthStats, error)
	DepartmentName(ctx context.Context, departmentID string) (string, error)
	DepartmentSummary(ctx context.Context, departmentID string, from, to time.Time) (DepartmentSummary, error)
	// DepartmentEmployees lists every member, including those with no
	// attendance, ordered by total hours descending.
	DepartmentEmployees(ctx context.Context, departmentID string, from, to time.Time) ([]EmployeeRow, error)
	DayCounts(ctx context.Context, day time.Time) (DayCounts, error)
}
