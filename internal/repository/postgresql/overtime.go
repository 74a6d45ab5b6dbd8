package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeRequestRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) overtime.RequestRepository {
	return &overtimeRequestRepositoryImpl{db: db}
}

const overtimeRequestColumns = `
	o.id, o.user_id, o.work_date, o.requested_hours, o.reason, o.status, o.approved_by,
	o.manager_response, o.request_date, o.response_date, u.full_name, u.email, d.name
`

const overtimeRequestFrom = `
	FROM overtime_requests o
	JOIN users u ON u.id = o.user_id
	LEFT JOIN departments d ON d.id = u.department_id
`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var o overtime.Request
	err := row.Scan(
		&o.ID, &o.UserID, &o.WorkDate, &o.RequestedHours, &o.Reason, &o.Status, &o.ApprovedBy,
		&o.ManagerResponse, &o.RequestDate, &o.ResponseDate, &o.EmployeeName, &o.Email, &o.DepartmentName,
	)
	return o, err
}

// Create implements overtime.RequestRepository.
func (r *overtimeRequestRepositoryImpl) Create(ctx context.Context, o overtime.Request) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO overtime_requests (id, user_id, work_date, requested_hours, reason, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.UserID, o.WorkDate, o.RequestedHours, o.Reason, o.Status, o.RequestDate)
	return err
}

// GetForUpdate implements overtime.RequestRepository.
func (r *overtimeRequestRepositoryImpl) GetForUpdate(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + overtimeRequestColumns + overtimeRequestFrom + ` WHERE o.id = $1 FOR UPDATE OF o`
	o, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Request{}, overtime.ErrOvertimeRequestNotFound
		}
		return overtime.Request{}, err
	}
	return o, nil
}

// Resolve implements overtime.RequestRepository.
func (r *overtimeRequestRepositoryImpl) Resolve(ctx context.Context, o overtime.Request) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE overtime_requests
		SET status = $2, approved_by = $3, manager_response = $4, response_date = $5
		WHERE id = $1 AND status = 'pending'
	`, o.ID, o.Status, o.ApprovedBy, o.ManagerResponse, o.ResponseDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrRequestResolved
	}
	return nil
}

// List implements overtime.RequestRepository.
func (r *overtimeRequestRepositoryImpl) List(ctx context.Context, filter overtime.RequestFilter) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		where = append(where, fmt.Sprintf("u.department_id = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)))
	}

	query := `SELECT ` + overtimeRequestColumns + overtimeRequestFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.request_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []overtime.Request{}
	for rows.Next() {
		o, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

type overtimeHoursRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeHoursRepository(db *database.DB) overtime.HoursRepository {
	return &overtimeHoursRepositoryImpl{db: db}
}

// MonthTotals implements overtime.HoursRepository.
func (r *overtimeHoursRepositoryImpl) MonthTotals(ctx context.Context, userID string, from, to time.Time, standardHours float64) (overtime.MonthTotals, error) {
	q := GetQuerier(ctx, r.db)
	var t overtime.MonthTotals
	err := q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN total_hours > $4 THEN total_hours - $4 ELSE 0 END), 0),
			COUNT(*) FILTER (WHERE total_hours > $4),
			COALESCE(SUM(total_hours), 0)
		FROM attendance
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
	`, userID, from, to, standardHours).Scan(&t.TotalOvertime, &t.OvertimeDays, &t.TotalHoursWorked)
	if err != nil {
		return overtime.MonthTotals{}, fmt.Errorf("aggregate overtime: %w", err)
	}
	return t, nil
}
