package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeRepo struct {
	stats     map[time.Month]report.MonthStats
	names     map[string]string
	summary   report.DepartmentSummary
	employees []report.EmployeeRow
	counts    report.DayCounts
	lastDay   time.Time
}

func (f *fakeRepo) MonthStats(ctx context.Context, userID string, from, to time.Time, standardHours float64) (report.MonthStats, error) {
	return f.stats[from.Month()], nil
}

func (f *fakeRepo) DepartmentName(ctx context.Context, departmentID string) (string, error) {
	name, ok := f.names[departmentID]
	if !ok {
		return "", report.ErrDepartmentNotFound
	}
	return name, nil
}

func (f *fakeRepo) DepartmentSummary(ctx context.Context, departmentID string, from, to time.Time) (report.DepartmentSummary, error) {
	return f.summary, nil
}

func (f *fakeRepo) DepartmentEmployees(ctx context.Context, departmentID string, from, to time.Time) ([]report.EmployeeRow, error) {
	return f.employees, nil
}

func (f *fakeRepo) DayCounts(ctx context.Context, day time.Time) (report.DayCounts, error) {
	f.lastDay = day
	return f.counts, nil
}

type fixedWorkingDays int

func (n fixedWorkingDays) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	return int(n), nil
}

type fakeLeaves struct {
	approved []leave.Request
	onLeave  int
}

func (f fakeLeaves) ApprovedInRange(ctx context.Context, userID string, from, to time.Time) ([]leave.Request, error) {
	return f.approved, nil
}

func (f fakeLeaves) OnLeave(ctx context.Context, day time.Time) (int, error) {
	return f.onLeave, nil
}

type fakeLate map[time.Month]int

func (f fakeLate) CountInRange(ctx context.Context, userID string, from, to time.Time) (lateness.MonthCount, error) {
	return lateness.MonthCount{Count: f[from.Month()]}, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func newService(repo *fakeRepo, leaves fakeLeaves, late fakeLate, now time.Time) report.ReportService {
	return NewReportService(repo, fixedWorkingDays(21), leaves, late,
		config.DefaultPolicy().Work, calendar.FixedClock{At: now})
}

func TestMonthly_ComputesAbsenceAndRounding(t *testing.T) {
	repo := &fakeRepo{stats: map[time.Month]report.MonthStats{
		time.March: {
			DaysPresent:     15,
			TotalHours:      128.3333,
			OvertimeHours:   8.125,
			AverageHours:    8.555555,
			EarliestArrival: ptr("08:41:00"),
			LatestDeparture: ptr("19:02:13"),
		},
	}}
	leaves := fakeLeaves{approved: []leave.Request{
		// only Mar 1-3 fall inside the month
		{StartDate: day(2026, 2, 26), EndDate: day(2026, 3, 3)},
		{StartDate: day(2026, 3, 16), EndDate: day(2026, 3, 17)},
	}}
	now := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	svc := newService(repo, leaves, fakeLate{time.March: 2}, now)

	m, err := svc.Monthly(context.Background(), "u1", report.PeriodQuery{Month: ptr(3), Year: ptr(2026)})

	require.NoError(t, err)
	assert.Equal(t, 21, m.WorkingDaysInMonth)
	assert.Equal(t, 15, m.DaysPresent)
	assert.Equal(t, 5, m.LeaveDays)
	assert.Equal(t, 1, m.DaysAbsent)
	assert.Equal(t, 128.33, m.TotalHoursWorked)
	assert.Equal(t, 8.13, m.OvertimeHours)
	assert.Equal(t, 8.56, m.AverageHoursPerDay)
	assert.Equal(t, 2, m.LateArrivals)
	assert.Equal(t, "08:41:00", *m.EarliestArrival)
	assert.Equal(t, now, m.GeneratedAt)
}

func TestMonthly_DefaultsToCurrentMonth(t *testing.T) {
	svc := newService(&fakeRepo{}, fakeLeaves{}, fakeLate{}, time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC))

	m, err := svc.Monthly(context.Background(), "u1", report.PeriodQuery{})

	require.NoError(t, err)
	assert.Equal(t, 7, m.Month)
	assert.Equal(t, 2026, m.Year)
	assert.Equal(t, 21, m.DaysAbsent)
	assert.Nil(t, m.EarliestArrival)
}

func TestMonthly_InvalidMonth(t *testing.T) {
	svc := newService(&fakeRepo{}, fakeLeaves{}, fakeLate{}, time.Now())

	_, err := svc.Monthly(context.Background(), "u1", report.PeriodQuery{Month: ptr(13)})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
}

func TestDepartment(t *testing.T) {
	repo := &fakeRepo{
		names:   map[string]string{"d1": "Engineering"},
		summary: report.DepartmentSummary{EmployeesTracked: 2, TotalRecords: 30, TotalHours: 250.456, AvgHoursPerRecord: 8.3485},
		employees: []report.EmployeeRow{
			{UserID: "u2", FullName: "Ana", DaysPresent: 16, TotalHours: 130.005},
			{UserID: "u1", FullName: "Bo", DaysPresent: 14, TotalHours: 120.451},
			{UserID: "u3", FullName: "Cy"},
		},
	}
	svc := newService(repo, fakeLeaves{}, fakeLate{}, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	d, err := svc.Department(context.Background(), "d1", report.PeriodQuery{})

	require.NoError(t, err)
	assert.Equal(t, "Engineering", d.DepartmentName)
	assert.Equal(t, 250.46, d.Summary.TotalHours)
	assert.Equal(t, 8.35, d.Summary.AvgHoursPerRecord)
	require.Len(t, d.EmployeeBreakdown, 3)
	assert.Equal(t, 120.45, d.EmployeeBreakdown[1].TotalHours)
	assert.Zero(t, d.EmployeeBreakdown[2].DaysPresent)
}

func TestDepartment_Unknown(t *testing.T) {
	svc := newService(&fakeRepo{}, fakeLeaves{}, fakeLate{}, time.Now())

	_, err := svc.Department(context.Background(), "nope", report.PeriodQuery{})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestExport_MonthlyCSV(t *testing.T) {
	repo := &fakeRepo{stats: map[time.Month]report.MonthStats{time.March: {DaysPresent: 20, TotalHours: 170, OvertimeHours: 10}}}
	svc := newService(repo, fakeLeaves{}, fakeLate{time.March: 1}, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	f, err := svc.Export(context.Background(), report.ExportRequest{
		PeriodQuery: report.PeriodQuery{Month: ptr(3), Year: ptr(2026)},
		Type:        "monthly",
		UserID:      "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, "monthly-report-2026-03.csv", f.Name)
	assert.Equal(t, "text/csv", f.ContentType)
	records, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, records[0])
	assert.Equal(t, []string{"Month", "3/2026"}, records[1])
	assert.Equal(t, []string{"Total Hours", "170.00"}, records[6])
	assert.Equal(t, []string{"Late Arrivals", "1"}, records[8])
}

func TestExport_DepartmentXLSX(t *testing.T) {
	repo := &fakeRepo{
		names:     map[string]string{"d1": "Ops"},
		employees: []report.EmployeeRow{{UserID: "u1", FullName: "Smith, Jo", DaysPresent: 3, TotalHours: 24}},
	}
	svc := newService(repo, fakeLeaves{}, fakeLate{}, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	f, err := svc.Export(context.Background(), report.ExportRequest{Type: "department", Format: "xlsx", DepartmentID: "d1"})

	require.NoError(t, err)
	assert.Equal(t, "department-report-2026-03.xlsx", f.Name)
	book, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Department")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"u1", "Smith, Jo", "3", "24.00"}, rows[1])
}

func TestExport_Validation(t *testing.T) {
	svc := newService(&fakeRepo{}, fakeLeaves{}, fakeLate{}, time.Now())

	tests := []struct {
		name  string
		req   report.ExportRequest
		field string
	}{
		{"unknown type", report.ExportRequest{Type: "weekly"}, "type"},
		{"bad format", report.ExportRequest{Type: "monthly", UserID: "u1", Format: "pdf"}, "format"},
		{"department without id", report.ExportRequest{Type: "department"}, "department_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Export(context.Background(), tt.req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestTrends_OldestFirst(t *testing.T) {
	repo := &fakeRepo{stats: map[time.Month]report.MonthStats{
		time.November: {DaysPresent: 18, TotalHours: 144},
		time.January:  {DaysPresent: 20, TotalHours: 161.5},
	}}
	svc := newService(repo, fakeLeaves{}, fakeLate{time.January: 4}, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	points, err := svc.Trends(context.Background(), "u1", report.TrendsQuery{Months: ptr(3)})

	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "Nov 2025", points[0].Month)
	assert.Equal(t, 18, points[0].DaysPresent)
	assert.Equal(t, "Dec 2025", points[1].Month)
	assert.Equal(t, "Jan 2026", points[2].Month)
	assert.Equal(t, 161.5, points[2].TotalHours)
	assert.Equal(t, 4, points[2].LateArrivals)
}

func TestTrends_DefaultSixMonths(t *testing.T) {
	svc := newService(&fakeRepo{}, fakeLeaves{}, fakeLate{}, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	points, err := svc.Trends(context.Background(), "u1", report.TrendsQuery{})

	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.Equal(t, "Jan 2026", points[0].Month)
	assert.Equal(t, "Jun 2026", points[5].Month)
}

func TestCompanySummary(t *testing.T) {
	t.Run("absent is the remainder", func(t *testing.T) {
		repo := &fakeRepo{counts: report.DayCounts{TotalEmployees: 50, PresentInOffice: 38, WorkingFromHome: 4}}
		svc := newService(repo, fakeLeaves{onLeave: 3}, fakeLate{}, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))

		s, err := svc.CompanySummary(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "2026-03-04", s.Date)
		assert.Equal(t, 5, s.Absent)
		assert.Equal(t, day(2026, 3, 4), repo.lastDay)
	})

	t.Run("absent is not clamped", func(t *testing.T) {
		repo := &fakeRepo{counts: report.DayCounts{TotalEmployees: 2, PresentInOffice: 2}}
		svc := newService(repo, fakeLeaves{onLeave: 1}, fakeLate{}, time.Now())

		s, err := svc.CompanySummary(context.Background(), ptr(day(2026, 2, 2)))

		require.NoError(t, err)
		assert.Equal(t, "2026-02-02", s.Date)
		assert.Equal(t, -1, s.Absent)
	})
}
