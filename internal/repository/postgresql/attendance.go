package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.work_date, a.clock_in, a.clock_out, a.total_hours,
	a.clock_in_latitude, a.clock_in_longitude, a.clock_out_latitude, a.clock_out_longitude,
	a.created_at, u.full_name
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.UserID, &r.WorkDate, &r.ClockIn, &r.ClockOut, &r.TotalHours,
		&r.ClockInLatitude, &r.ClockInLongitude, &r.ClockOutLatitude, &r.ClockOutLongitude,
		&r.CreatedAt, &r.EmployeeName,
	)
	return r, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance (id, user_id, work_date, clock_in, clock_in_latitude, clock_in_longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := q.Exec(ctx, query, rec.ID, rec.UserID, rec.WorkDate, rec.ClockIn, rec.ClockInLatitude, rec.ClockInLongitude)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrAlreadyClockedIn
		}
		return err
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + attendanceColumns + ` FROM attendance a JOIN users u ON u.id = a.user_id WHERE a.id = $1`
	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*attendance.Record, error) {
	return r.findForDay(ctx, userID, workDate, false)
}

// GetOpenForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenForUpdate(ctx context.Context, userID string, workDate time.Time) (*attendance.Record, error) {
	return r.findForDay(ctx, userID, workDate, true)
}

func (r *attendanceRepositoryImpl) findForDay(ctx context.Context, userID string, workDate time.Time, openOnly bool) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + attendanceColumns + ` FROM attendance a JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.work_date = $2`
	if openOnly {
		query += ` AND a.clock_out IS NULL FOR UPDATE OF a`
	}
	rec, err := scanRecord(q.QueryRow(ctx, query, userID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Close implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Close(ctx context.Context, id string, clockOut time.Time, latitude, longitude, totalHours float64) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE attendance
		SET clock_out = $2, total_hours = $3, clock_out_latitude = $4, clock_out_longitude = $5
		WHERE id = $1 AND clock_out IS NULL
	`, id, clockOut, totalHours, latitude, longitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenRecord
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Query) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("a.user_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("a.work_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("a.work_date <= $%d", len(args)))
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendance a JOIN users u ON u.id = a.user_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.clock_in DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type correctionRepositoryImpl struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) attendance.CorrectionRepository {
	return &correctionRepositoryImpl{db: db}
}

const correctionColumns = `
	c.id, c.user_id, c.attendance_id, c.request_reason, c.status, c.manager_id,
	c.manager_response, c.request_date, c.response_date, u.full_name
`

func scanCorrection(row pgx.Row) (attendance.CorrectionRequest, error) {
	var c attendance.CorrectionRequest
	err := row.Scan(
		&c.ID, &c.UserID, &c.AttendanceID, &c.RequestReason, &c.Status, &c.ManagerID,
		&c.ManagerResponse, &c.RequestDate, &c.ResponseDate, &c.EmployeeName,
	)
	return c, err
}

// Create implements attendance.CorrectionRepository.
func (r *correctionRepositoryImpl) Create(ctx context.Context, c attendance.CorrectionRequest) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO attendance_correction_requests (id, user_id, attendance_id, request_reason, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.UserID, c.AttendanceID, c.RequestReason, c.Status, c.RequestDate)
	if err != nil && isForeignKeyViolation(err) {
		return attendance.ErrAttendanceNotFound
	}
	return err
}

// GetForUpdate implements attendance.CorrectionRepository.
func (r *correctionRepositoryImpl) GetForUpdate(ctx context.Context, id string) (attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + correctionColumns + `
		FROM attendance_correction_requests c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1 FOR UPDATE OF c`
	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.CorrectionRequest{}, attendance.ErrCorrectionNotFound
		}
		return attendance.CorrectionRequest{}, err
	}
	return c, nil
}

// HasPending implements attendance.CorrectionRepository.
func (r *correctionRepositoryImpl) HasPending(ctx context.Context, attendanceID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM attendance_correction_requests WHERE attendance_id = $1 AND status = 'pending')
	`, attendanceID).Scan(&exists)
	return exists, err
}

// Resolve implements attendance.CorrectionRepository.
func (r *correctionRepositoryImpl) Resolve(ctx context.Context, c attendance.CorrectionRequest) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE attendance_correction_requests
		SET status = $2, manager_id = $3, manager_response = $4, response_date = $5
		WHERE id = $1 AND status = 'pending'
	`, c.ID, c.Status, c.ManagerID, c.ManagerResponse, c.ResponseDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrCorrectionResolved
	}
	return nil
}

// ListPending implements attendance.CorrectionRepository.
func (r *correctionRepositoryImpl) ListPending(ctx context.Context) ([]attendance.CorrectionRequest, error) {
	return r.list(ctx, `c.status = 'pending'`)
}

// ListByUser implements attendance.CorrectionRepository.
func (r *correctionRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]attendance.CorrectionRequest, error) {
	return r.list(ctx, `c.user_id = $1`, userID)
}

func (r *correctionRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + correctionColumns + `
		FROM attendance_correction_requests c JOIN users u ON u.id = c.user_id
		WHERE ` + where + ` ORDER BY c.request_date DESC`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []attendance.CorrectionRequest{}
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
