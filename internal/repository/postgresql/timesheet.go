package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

const timesheetColumns = `
	t.id, t.user_id, t.week_start_date, t.week_end_date, t.total_hours, t.status, t.submitted_at,
	t.approved_by, t.approved_at, t.manager_notes, t.created_at, u.full_name, u.email, d.name
`

const timesheetFrom = `
	FROM timesheets t
	JOIN users u ON u.id = t.user_id
	LEFT JOIN departments d ON d.id = u.department_id
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.UserID, &ts.WeekStartDate, &ts.WeekEndDate, &ts.TotalHours, &ts.Status, &ts.SubmittedAt,
		&ts.ApprovedBy, &ts.ApprovedAt, &ts.ManagerNotes, &ts.CreatedAt, &ts.EmployeeName, &ts.Email, &ts.DepartmentName,
	)
	return ts, err
}

func (r *timesheetRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []timesheet.Timesheet{}
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ts)
	}
	return list, rows.Err()
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO timesheets (id, user_id, week_start_date, week_end_date, total_hours, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, ts.ID, ts.UserID, ts.WeekStartDate, ts.WeekEndDate, ts.TotalHours, ts.Status, ts.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return timesheet.ErrDuplicateTimesheet
	}
	return err
}

// Exists implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Exists(ctx context.Context, userID string, weekStart time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM timesheets WHERE user_id = $1 AND week_start_date = $2)
	`, userID, weekStart).Scan(&exists)
	return exists, err
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetForUpdate(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return r.get(ctx, id, " FOR UPDATE OF t")
}

func (r *timesheetRepositoryImpl) get(ctx context.Context, id, lock string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + timesheetColumns + timesheetFrom + ` WHERE t.id = $1` + lock
	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, err
	}
	return ts, nil
}

// UpdateStatus implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) UpdateStatus(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE timesheets
		SET status = $2, submitted_at = $3, approved_by = $4, approved_at = $5, manager_notes = $6
		WHERE id = $1
	`, ts.ID, ts.Status, ts.SubmittedAt, ts.ApprovedBy, ts.ApprovedAt, ts.ManagerNotes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

// ListByUser implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByUser(ctx context.Context, userID string, status *timesheet.Status) ([]timesheet.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + timesheetFrom + ` WHERE t.user_id = $1`
	args := []interface{}{userID}
	if status != nil {
		query += ` AND t.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY t.week_start_date DESC`
	return r.list(ctx, query, args...)
}

// ListPending implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListPending(ctx context.Context, departmentID *string) ([]timesheet.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + timesheetFrom + ` WHERE t.status = 'pending'`
	var args []interface{}
	if departmentID != nil {
		query += ` AND u.department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY t.submitted_at ASC`
	return r.list(ctx, query, args...)
}

type timesheetAttendanceReaderImpl struct {
	db *database.DB
}

func NewTimesheetAttendanceReader(db *database.DB) timesheet.AttendanceReader {
	return &timesheetAttendanceReaderImpl{db: db}
}

// DailyRecords implements timesheet.AttendanceReader.
func (r *timesheetAttendanceReaderImpl) DailyRecords(ctx context.Context, userID string, from, to time.Time) ([]timesheet.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT work_date, clock_in, clock_out, total_hours
		FROM attendance
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY clock_in
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []timesheet.DailyRecord{}
	for rows.Next() {
		var d timesheet.DailyRecord
		if err := rows.Scan(&d.Date, &d.ClockIn, &d.ClockOut, &d.TotalHours); err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}
