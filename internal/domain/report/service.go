package report

import (
	"context"
	"time"
)

type ReportService interface {
	Monthly(ctx context.Context, userID string, q PeriodQuery) (Monthly, error)
	Department(ctx context.Context, departmentID string, q PeriodQuery) (Department, error)
	Export(ctx context.Context, req ExportRequest) (File, error)
	Trends(ctx context.Context, userID string, q TrendsQuery) ([]TrendPoint, error)
	// CompanySummary reports on day, or today when day is nil.
	CompanySummary(ctx context.Context, day *time.Time) (CompanySummary, error)
}
