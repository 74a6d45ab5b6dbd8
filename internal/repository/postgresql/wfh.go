package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wfhRequestRepositoryImpl struct {
	db *database.DB
}

func NewWFHRequestRepository(db *database.DB) wfh.RequestRepository {
	return &wfhRequestRepositoryImpl{db: db}
}

const wfhRequestColumns = `
	w.id, w.user_id, w.work_date, w.reason, w.status, w.approved_by, w.manager_response,
	w.request_date, w.response_date, u.full_name, u.email, d.name
`

const wfhRequestFrom = `
	FROM wfh_requests w
	JOIN users u ON u.id = w.user_id
	LEFT JOIN departments d ON d.id = u.department_id
`

func scanWFHRequest(row pgx.Row) (wfh.Request, error) {
	var w wfh.Request
	err := row.Scan(
		&w.ID, &w.UserID, &w.WorkDate, &w.Reason, &w.Status, &w.ApprovedBy, &w.ManagerResponse,
		&w.RequestDate, &w.ResponseDate, &w.EmployeeName, &w.Email, &w.DepartmentName,
	)
	return w, err
}

// Create implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) Create(ctx context.Context, w wfh.Request) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO wfh_requests (id, user_id, work_date, reason, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID, w.UserID, w.WorkDate, w.Reason, w.Status, w.RequestDate)
	if err != nil && isUniqueViolation(err) {
		return wfh.ErrDuplicateRequest
	}
	return err
}

// GetForUpdate implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) GetForUpdate(ctx context.Context, id string) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + wfhRequestColumns + wfhRequestFrom + ` WHERE w.id = $1 FOR UPDATE OF w`
	w, err := scanWFHRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wfh.Request{}, wfh.ErrRequestNotFound
		}
		return wfh.Request{}, err
	}
	return w, nil
}

// Resolve implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) Resolve(ctx context.Context, w wfh.Request) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE wfh_requests
		SET status = $2, approved_by = $3, manager_response = $4, response_date = $5
		WHERE id = $1 AND status = 'pending'
	`, w.ID, w.Status, w.ApprovedBy, w.ManagerResponse, w.ResponseDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wfh.ErrRequestResolved
	}
	return nil
}

// Delete implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM wfh_requests WHERE id = $1`, id)
	return err
}

// List implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) List(ctx context.Context, f wfh.Query) ([]wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != nil {
		add("w.user_id = $%d", *f.UserID)
	}
	if f.Status != nil {
		add("w.status = $%d", *f.Status)
	}
	if f.DepartmentID != nil {
		add("u.department_id = $%d", *f.DepartmentID)
	}
	if f.From != nil {
		add("w.work_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("w.work_date <= $%d", *f.To)
	}

	query := `SELECT ` + wfhRequestColumns + wfhRequestFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY w.work_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []wfh.Request{}
	for rows.Next() {
		w, err := scanWFHRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// ApprovedFor implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) ApprovedFor(ctx context.Context, userID string, day time.Time) (*wfh.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + wfhRequestColumns + wfhRequestFrom + `
		WHERE w.user_id = $1 AND w.work_date = $2 AND w.status = 'approved'`
	w, err := scanWFHRequest(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// CountByStatus implements wfh.RequestRepository.
func (r *wfhRequestRepositoryImpl) CountByStatus(ctx context.Context, userID string, from, to time.Time) (wfh.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)
	var c wfh.StatusCounts
	err := q.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'denied'),
			COUNT(*) FILTER (WHERE status = 'pending')
		FROM wfh_requests
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
	`, userID, from, to).Scan(&c.Approved, &c.Denied, &c.Pending)
	return c, err
}

type wfhLogRepositoryImpl struct {
	db *database.DB
}

func NewWFHLogRepository(db *database.DB) wfh.LogRepository {
	return &wfhLogRepositoryImpl{db: db}
}

// Create implements wfh.LogRepository.
func (r *wfhLogRepositoryImpl) Create(ctx context.Context, l wfh.Log) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO wfh_logs (id, user_id, wfh_request_id, work_date, start_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, l.ID, l.UserID, l.RequestID, l.WorkDate, l.StartTime, l.Notes)
	if err != nil && isUniqueViolation(err) {
		return wfh.ErrSessionAlreadyOpen
	}
	return err
}

// OpenForUpdate implements wfh.LogRepository.
func (r *wfhLogRepositoryImpl) OpenForUpdate(ctx context.Context, userID string, day time.Time) (*wfh.Log, error) {
	q := GetQuerier(ctx, r.db)
	var l wfh.Log
	err := q.QueryRow(ctx, `
		SELECT id, user_id, wfh_request_id, work_date, start_time, end_time, total_hours, notes
		FROM wfh_logs
		WHERE user_id = $1 AND work_date = $2 AND end_time IS NULL
		FOR UPDATE
	`, userID, day).Scan(&l.ID, &l.UserID, &l.RequestID, &l.WorkDate, &l.StartTime, &l.EndTime, &l.TotalHours, &l.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Close implements wfh.LogRepository.
func (r *wfhLogRepositoryImpl) Close(ctx context.Context, l wfh.Log) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE wfh_logs SET end_time = $2, total_hours = $3, notes = $4
		WHERE id = $1 AND end_time IS NULL
	`, l.ID, l.EndTime, l.TotalHours, l.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wfh.ErrNoActiveSession
	}
	return nil
}

// TotalHours implements wfh.LogRepository.
func (r *wfhLogRepositoryImpl) TotalHours(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)
	var total float64
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_hours), 0)
		FROM wfh_logs
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
	`, userID, from, to).Scan(&total)
	return total, err
}
