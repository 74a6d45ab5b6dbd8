package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// WorkingDays counts non-weekend, non-holiday days in a range.
type WorkingDays interface {
	WorkingDays(ctx context.Context, start, end time.Time) (int, error)
}

type LeaveReader interface {
	ApprovedInRange(ctx context.Context, userID string, from, to time.Time) ([]leave.Request, error)
	OnLeave(ctx context.Context, day time.Time) (int, error)
}

type LateCounter interface {
	CountInRange(ctx context.Context, userID string, from, to time.Time) (lateness.MonthCount, error)
}

type ReportServiceImpl struct {
	report.ReportRepository
	holidays WorkingDays
	leaves   LeaveReader
	late     LateCounter
	work     config.WorkPolicy
	clock    calendar.Clock
}

func NewReportService(
	repo report.ReportRepository,
	holidays WorkingDays,
	leaves LeaveReader,
	late LateCounter,
	work config.WorkPolicy,
	clock calendar.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: repo,
		holidays:         holidays,
		leaves:           leaves,
		late:             late,
		work:             work,
		clock:            clock,
	}
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, userID string, q report.PeriodQuery) (report.Monthly, error) {
	if err := q.Validate(); err != nil {
		return report.Monthly{}, err
	}
	month, year := q.Resolve(s.clock.Now())
	return s.monthly(ctx, userID, month, year)
}

func (s *ReportServiceImpl) monthly(ctx context.Context, userID string, month time.Month, year int) (report.Monthly, error) {
	from, to := calendar.MonthRange(year, month, time.UTC)

	workingDays, err := s.holidays.WorkingDays(ctx, from, to)
	if err != nil {
		return report.Monthly{}, err
	}

	stats, err := s.ReportRepository.MonthStats(ctx, userID, from, to, s.work.StandardDailyHours)
	if err != nil {
		return report.Monthly{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	leaves, err := s.leaves.ApprovedInRange(ctx, userID, from, to)
	if err != nil {
		return report.Monthly{}, fmt.Errorf("failed to load approved leave: %w", err)
	}
	leaveDays := 0
	for _, lr := range leaves {
		if start, end, ok := calendar.Overlap(lr.StartDate, lr.EndDate, from, to); ok {
			leaveDays += calendar.InclusiveDays(start, end)
		}
	}

	late, err := s.late.CountInRange(ctx, userID, from, to)
	if err != nil {
		return report.Monthly{}, err
	}

	return report.Monthly{
		UserID:             userID,
		Month:              int(month),
		Year:               year,
		WorkingDaysInMonth: workingDays,
		DaysPresent:        stats.DaysPresent,
		DaysAbsent:         workingDays - stats.DaysPresent - leaveDays,
		LeaveDays:          leaveDays,
		TotalHoursWorked:   utils.RoundTo(stats.TotalHours, 2),
		OvertimeHours:      utils.RoundTo(stats.OvertimeHours, 2),
		AverageHoursPerDay: utils.RoundTo(stats.AverageHours, 2),
		LateArrivals:       late.Count,
		EarliestArrival:    stats.EarliestArrival,
		LatestDeparture:    stats.LatestDeparture,
		GeneratedAt:        s.clock.Now(),
	}, nil
}

// Department implements report.ReportService.
func (s *ReportServiceImpl) Department(ctx context.Context, departmentID string, q report.PeriodQuery) (report.Department, error) {
	if err := q.Validate(); err != nil {
		return report.Department{}, err
	}
	month, year := q.Resolve(s.clock.Now())
	from, to := calendar.MonthRange(year, month, time.UTC)

	name, err := s.ReportRepository.DepartmentName(ctx, departmentID)
	if err != nil {
		return report.Department{}, err
	}
	summary, err := s.ReportRepository.DepartmentSummary(ctx, departmentID, from, to)
	if err != nil {
		return report.Department{}, fmt.Errorf("failed to summarize department: %w", err)
	}
	employees, err := s.ReportRepository.DepartmentEmployees(ctx, departmentID, from, to)
	if err != nil {
		return report.Department{}, fmt.Errorf("failed to list department employees: %w", err)
	}

	summary.TotalHours = utils.RoundTo(summary.TotalHours, 2)
	summary.AvgHoursPerRecord = utils.RoundTo(summary.AvgHoursPerRecord, 2)
	for i := range employees {
		employees[i].TotalHours = utils.RoundTo(employees[i].TotalHours, 2)
	}

	return report.Department{
		DepartmentID:      departmentID,
		DepartmentName:    name,
		Month:             int(month),
		Year:              year,
		Summary:           summary,
		EmployeeBreakdown: employees,
		GeneratedAt:       s.clock.Now(),
	}, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	var (
		table export.Table
		name  string
	)
	switch report.Kind(req.Type) {
	case report.KindMonthly:
		m, err := s.Monthly(ctx, req.UserID, req.PeriodQuery)
		if err != nil {
			return report.File{}, err
		}
		table = MonthlyTable(m)
		name = fmt.Sprintf("monthly-report-%d-%02d", m.Year, m.Month)
	case report.KindDepartment:
		d, err := s.Department(ctx, req.DepartmentID, req.PeriodQuery)
		if err != nil {
			return report.File{}, err
		}
		table = DepartmentTable(d)
		name = fmt.Sprintf("department-report-%d-%02d", d.Year, d.Month)
	}

	format := req.ParsedFormat()
	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		return report.File{}, fmt.Errorf("failed to render report: %w", err)
	}
	return report.File{
		Name:        name + "." + format.Extension(),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// MonthlyTable lays a monthly report out as metric/value rows.
func MonthlyTable(m report.Monthly) export.Table {
	return export.Table{
		Sheet:  "Monthly",
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Month", fmt.Sprintf("%d/%d", m.Month, m.Year)},
			{"Working Days", strconv.Itoa(m.WorkingDaysInMonth)},
			{"Days Present", strconv.Itoa(m.DaysPresent)},
			{"Days Absent", strconv.Itoa(m.DaysAbsent)},
			{"Leave Days", strconv.Itoa(m.LeaveDays)},
			{"Total Hours", hours(m.TotalHoursWorked)},
			{"Overtime Hours", hours(m.OvertimeHours)},
			{"Late Arrivals", strconv.Itoa(m.LateArrivals)},
		},
	}
}

// DepartmentTable lays out one row per employee.
func DepartmentTable(d report.Department) export.Table {
	rows := make([][]string, 0, len(d.EmployeeBreakdown))
	for _, e := range d.EmployeeBreakdown {
		rows = append(rows, []string{e.UserID, e.FullName, strconv.Itoa(e.DaysPresent), hours(e.TotalHours)})
	}
	return export.Table{
		Sheet:  "Department",
		Header: []string{"Employee ID", "Name", "Days Present", "Total Hours"},
		Rows:   rows,
	}
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Trends implements report.ReportService.
func (s *ReportServiceImpl) Trends(ctx context.Context, userID string, q report.TrendsQuery) ([]report.TrendPoint, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	n := q.Count()

	points := make([]report.TrendPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		at := first.AddDate(0, -i, 0)
		m, err := s.monthly(ctx, userID, at.Month(), at.Year())
		if err != nil {
			return nil, err
		}
		points = append(points, report.TrendPoint{
			Month:        calendar.MonthLabel(at.Year(), at.Month()),
			DaysPresent:  m.DaysPresent,
			TotalHours:   m.TotalHoursWorked,
			LateArrivals: m.LateArrivals,
		})
	}
	return points, nil
}

// CompanySummary implements report.ReportService.
func (s *ReportServiceImpl) CompanySummary(ctx context.Context, day *time.Time) (report.CompanySummary, error) {
	date := calendar.Today(s.clock)
	if day != nil {
		date = calendar.DateOnly(*day)
	}

	counts, err := s.ReportRepository.DayCounts(ctx, date)
	if err != nil {
		return report.CompanySummary{}, fmt.Errorf("failed to count attendance: %w", err)
	}
	onLeave, err := s.leaves.OnLeave(ctx, date)
	if err != nil {
		return report.CompanySummary{}, fmt.Errorf("failed to count users on leave: %w", err)
	}

	return report.CompanySummary{
		Date:            date.Format(time.DateOnly),
		TotalEmployees:  counts.TotalEmployees,
		PresentInOffice: counts.PresentInOffice,
		OnLeave:         onLeave,
		WorkingFromHome: counts.WorkingFromHome,
		Absent:          counts.TotalEmployees - counts.PresentInOffice - onLeave - counts.WorkingFromHome,
	}, nil
}
