package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason, lr.status,
	lr.manager_id, lr.request_date, lr.response_date, u.full_name
`

const leaveRequestFrom = ` FROM leave_requests lr JOIN users u ON u.id = lr.user_id`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Reason, &lr.Status,
		&lr.ManagerID, &lr.RequestDate, &lr.ResponseDate, &lr.EmployeeName,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	defer rows.Close()
	requests := []leave.Request{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr leave.Request) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO leave_requests (id, user_id, leave_type, start_date, end_date, reason, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, lr.ID, lr.UserID, lr.LeaveType, lr.StartDate, lr.EndDate, lr.Reason, lr.Status, lr.RequestDate)
	return err
}

// GetForUpdate implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetForUpdate(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + ` WHERE lr.id = $1 FOR UPDATE OF lr`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, err
	}
	return lr, nil
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, lr leave.Request) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE leave_requests SET status = $2, manager_id = $3, response_date = $4 WHERE id = $1
	`, lr.ID, lr.Status, lr.ManagerID, lr.ResponseDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Delete implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	return err
}

// List implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("lr.user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("lr.status = $%d", len(args)))
	}

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lr.request_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// ListByUserYear implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUserYear(ctx context.Context, userID string, year int) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + `
		WHERE lr.user_id = $1 AND EXTRACT(YEAR FROM lr.start_date) = $2
		ORDER BY lr.request_date DESC`
	rows, err := q.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// PendingDays implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) PendingDays(ctx context.Context, userID string, year int) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT leave_type, COALESCE(SUM(end_date - start_date + 1), 0)
		FROM leave_requests
		WHERE user_id = $1 AND status = 'pending' AND EXTRACT(YEAR FROM start_date) = $2
		GROUP BY leave_type
	`, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := map[string]int{}
	for rows.Next() {
		var leaveType string
		var days int
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, err
		}
		pending[leaveType] = days
	}
	return pending, rows.Err()
}

// ApprovedInRange implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ApprovedInRange(ctx context.Context, userID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + `
		WHERE lr.user_id = $1 AND lr.status = 'approved' AND lr.start_date <= $3 AND lr.end_date >= $2
		ORDER BY lr.start_date`
	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// OnLeave implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) OnLeave(ctx context.Context, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)
	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM leave_requests
		WHERE status = 'approved' AND $1 BETWEEN start_date AND end_date
	`, day).Scan(&count)
	return count, err
}
