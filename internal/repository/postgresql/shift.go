package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO shifts (id, name, start_time, end_time, break_minutes, is_active, created_at)
		VALUES ($1, $2, $3::time, $4::time, $5, $6, NOW())
		RETURNING created_at
	`
	if err := q.QueryRow(ctx, query, s.ID, s.Name, s.StartTime, s.EndTime, s.BreakMinutes, s.IsActive).Scan(&s.CreatedAt); err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

const shiftColumns = `id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), break_minutes, is_active, created_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes, &s.IsActive, &s.CreatedAt)
	return s, err
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, err
	}
	return s, nil
}

// ListActive implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListActive(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE is_active = TRUE ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []shift.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

type shiftAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepositoryImpl{db: db}
}

// HasOverlap implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) HasOverlap(ctx context.Context, userID, shiftID string, effective time.Time, end *time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_shifts
			WHERE user_id = $1 AND shift_id = $2
			  AND (
				(end_date IS NULL AND effective_date <= $3)
				OR (end_date >= $3 AND effective_date <= COALESCE($4::date, DATE '9999-12-31'))
			  )
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, shiftID, effective, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO user_shifts (id, user_id, shift_id, effective_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	if err := q.QueryRow(ctx, query, a.ID, a.UserID, a.ShiftID, a.EffectiveDate, a.EndDate).Scan(&a.CreatedAt); err != nil {
		if isExclusionViolation(err) {
			return shift.Assignment{}, shift.ErrOverlappingAssignment
		}
		if isForeignKeyViolation(err) {
			return shift.Assignment{}, shift.ErrShiftNotFound
		}
		return shift.Assignment{}, err
	}
	return a, nil
}

const assignmentSelect = `
	SELECT us.id, us.user_id, us.shift_id, us.effective_date, us.end_date, us.created_at,
		s.id, s.name, to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'), s.break_minutes, s.is_active, s.created_at
	FROM user_shifts us
	JOIN shifts s ON s.id = us.shift_id
`

func scanAssignment(row pgx.Row) (shift.Assignment, error) {
	var a shift.Assignment
	var s shift.Shift
	err := row.Scan(
		&a.ID, &a.UserID, &a.ShiftID, &a.EffectiveDate, &a.EndDate, &a.CreatedAt,
		&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return shift.Assignment{}, err
	}
	a.Shift = &s
	return a, nil
}

// ActiveOn implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ActiveOn(ctx context.Context, userID string, day time.Time) (*shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)
	query := assignmentSelect + `
		WHERE us.user_id = $1
		  AND us.effective_date <= $2
		  AND (us.end_date IS NULL OR us.end_date >= $2)
		ORDER BY us.effective_date DESC, us.created_at DESC
		LIMIT 1
	`
	a, err := scanAssignment(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListByUser implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, assignmentSelect+` WHERE us.user_id = $1 ORDER BY us.effective_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []shift.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// DepartmentSchedule implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) DepartmentSchedule(ctx context.Context, departmentID string, from, to time.Time) ([]shift.ScheduleEntry, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT u.id, u.full_name, s.id, s.name,
			to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
			us.effective_date, us.end_date
		FROM user_shifts us
		JOIN users u ON u.id = us.user_id
		JOIN shifts s ON s.id = us.shift_id
		WHERE u.department_id = $1
		  AND us.effective_date <= $3
		  AND (us.end_date IS NULL OR us.end_date >= $2)
		ORDER BY u.full_name, s.start_time
	`
	rows, err := q.Query(ctx, query, departmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []shift.ScheduleEntry{}
	for rows.Next() {
		var e shift.ScheduleEntry
		if err := rows.Scan(&e.UserID, &e.EmployeeName, &e.ShiftID, &e.ShiftName, &e.StartTime, &e.EndTime, &e.EffectiveDate, &e.EndDate); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type shiftSwapRepositoryImpl struct {
	db *database.DB
}

func NewShiftSwapRepository(db *database.DB) shift.SwapRepository {
	return &shiftSwapRepositoryImpl{db: db}
}

const swapColumns = `id, requester_id, target_user_id, swap_date, COALESCE(reason, ''), status, approved_by, request_date, response_date`

func scanSwap(row pgx.Row) (shift.SwapRequest, error) {
	var s shift.SwapRequest
	err := row.Scan(&s.ID, &s.RequesterID, &s.TargetUserID, &s.SwapDate, &s.Reason, &s.Status, &s.ApprovedBy, &s.RequestDate, &s.ResponseDate)
	return s, err
}

// Create implements shift.SwapRepository.
func (r *shiftSwapRepositoryImpl) Create(ctx context.Context, req shift.SwapRequest) (shift.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO shift_swap_requests (id, requester_id, target_user_id, swap_date, reason, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := q.Exec(ctx, query, req.ID, req.RequesterID, req.TargetUserID, req.SwapDate, req.Reason, req.Status, req.RequestDate); err != nil {
		return shift.SwapRequest{}, err
	}
	return req, nil
}

// GetByID implements shift.SwapRepository.
func (r *shiftSwapRepositoryImpl) GetByID(ctx context.Context, id string) (shift.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)
	s, err := scanSwap(q.QueryRow(ctx, `SELECT `+swapColumns+` FROM shift_swap_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.SwapRequest{}, shift.ErrSwapNotFound
		}
		return shift.SwapRequest{}, err
	}
	return s, nil
}

// UpdateStatus implements shift.SwapRepository.
func (r *shiftSwapRepositoryImpl) UpdateStatus(ctx context.Context, id string, status shift.SwapStatus, approvedBy *string, responseDate *time.Time) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE shift_swap_requests
		SET status = $2, approved_by = $3, response_date = $4
		WHERE id = $1
	`, id, status, approvedBy, responseDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrSwapNotFound
	}
	return nil
}

// List implements shift.SwapRepository.
func (r *shiftSwapRepositoryImpl) List(ctx context.Context, filter shift.SwapFilter) ([]shift.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	argIdx := 1
	if filter.UserID != nil {
		where = append(where, fmt.Sprintf("(requester_id = $%d OR target_user_id = $%d)", argIdx, argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `SELECT ` + swapColumns + ` FROM shift_swap_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY request_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []shift.SwapRequest{}
	for rows.Next() {
		s, err := scanSwap(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
