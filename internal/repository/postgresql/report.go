package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

// NewReportRepository reads arrival and departure clock times in loc.
func NewReportRepository(db *database.DB, loc *time.Location) report.ReportRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &reportRepositoryImpl{db: db, loc: loc}
}

// MonthStats implements report.ReportRepository.
func (r *reportRepositoryImpl) MonthStats(ctx context.Context, userID string, from, to time.Time, standardHours float64) (report.MonthStats, error) {
	q := GetQuerier(ctx, r.db)
	var s report.MonthStats
	err := q.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_hours), 0),
			COALESCE(SUM(GREATEST(total_hours - $4, 0)), 0),
			COALESCE(AVG(total_hours), 0),
			TO_CHAR(MIN((clock_in AT TIME ZONE $5)::time), 'HH24:MI:SS'),
			TO_CHAR(MAX((clock_out AT TIME ZONE $5)::time), 'HH24:MI:SS')
		FROM attendance
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
	`, userID, from, to, standardHours, r.loc.String()).Scan(
		&s.DaysPresent, &s.TotalHours, &s.OvertimeHours, &s.AverageHours,
		&s.EarliestArrival, &s.LatestDeparture,
	)
	if err != nil {
		return report.MonthStats{}, err
	}
	return s, nil
}

// DepartmentName implements report.ReportRepository.
func (r *reportRepositoryImpl) DepartmentName(ctx context.Context, departmentID string) (string, error) {
	q := GetQuerier(ctx, r.db)
	var name string
	err := q.QueryRow(ctx, `SELECT name FROM departments WHERE id = $1`, departmentID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", report.ErrDepartmentNotFound
		}
		return "", err
	}
	return name, nil
}

// DepartmentSummary implements report.ReportRepository.
func (r *reportRepositoryImpl) DepartmentSummary(ctx context.Context, departmentID string, from, to time.Time) (report.DepartmentSummary, error) {
	q := GetQuerier(ctx, r.db)
	var s report.DepartmentSummary
	err := q.QueryRow(ctx, `
		SELECT
			COUNT(DISTINCT a.user_id),
			COUNT(*),
			COALESCE(SUM(a.total_hours), 0),
			COALESCE(AVG(a.total_hours), 0)
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE u.department_id = $1 AND a.work_date BETWEEN $2 AND $3
	`, departmentID, from, to).Scan(&s.EmployeesTracked, &s.TotalRecords, &s.TotalHours, &s.AvgHoursPerRecord)
	if err != nil {
		return report.DepartmentSummary{}, err
	}
	return s, nil
}

// DepartmentEmployees implements report.ReportRepository.
func (r *reportRepositoryImpl) DepartmentEmployees(ctx context.Context, departmentID string, from, to time.Time) ([]report.EmployeeRow, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT u.id, u.full_name, u.email, COUNT(a.id), COALESCE(SUM(a.total_hours), 0) AS hours
		FROM users u
		LEFT JOIN attendance a
			ON a.user_id = u.id AND a.work_date BETWEEN $2 AND $3
		WHERE u.department_id = $1
		GROUP BY u.id, u.full_name, u.email
		ORDER BY hours DESC, u.full_name
	`, departmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []report.EmployeeRow{}
	for rows.Next() {
		var e report.EmployeeRow
		if err := rows.Scan(&e.UserID, &e.FullName, &e.Email, &e.DaysPresent, &e.TotalHours); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// DayCounts implements report.ReportRepository.
func (r *reportRepositoryImpl) DayCounts(ctx context.Context, day time.Time) (report.DayCounts, error) {
	q := GetQuerier(ctx, r.db)
	var c report.DayCounts
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(DISTINCT user_id) FROM attendance WHERE work_date = $1),
			(SELECT COUNT(DISTINCT user_id) FROM wfh_requests WHERE status = 'approved' AND work_date = $1)
	`, day).Scan(&c.TotalEmployees, &c.PresentInOffice, &c.WorkingFromHome)
	if err != nil {
		return report.DayCounts{}, err
	}
	return c, nil
}
