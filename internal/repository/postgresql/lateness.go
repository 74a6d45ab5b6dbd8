package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type lateArrivalRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

// NewLateArrivalRepository stores arrival_date as the calendar day of the
// arrival in loc so month and year filters follow the app timezone.
func NewLateArrivalRepository(db *database.DB, loc *time.Location) lateness.LateArrivalRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &lateArrivalRepositoryImpl{db: db, loc: loc}
}

// Create implements lateness.LateArrivalRepository.
func (r *lateArrivalRepositoryImpl) Create(ctx context.Context, la lateness.LateArrival) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO late_arrivals (id, user_id, attendance_id, arrival_date, arrival_time, expected_time, minutes_late, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := q.Exec(ctx, query,
		la.ID, la.UserID, la.AttendanceID, calendar.DateOnly(la.ArrivalTime.In(r.loc)),
		la.ArrivalTime, la.ExpectedTime, la.MinutesLate,
	)
	return err
}

// Excuse implements lateness.LateArrivalRepository.
func (r *lateArrivalRepositoryImpl) Excuse(ctx context.Context, id, excusedBy, reason string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE late_arrivals
		SET is_excused = TRUE, excused_by = $2, excuse_reason = $3
		WHERE id = $1
	`, id, excusedBy, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lateness.ErrLateArrivalNotFound
	}
	return nil
}

// ListByUser implements lateness.LateArrivalRepository.
func (r *lateArrivalRepositoryImpl) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]lateness.LateArrival, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, user_id, attendance_id, arrival_time, expected_time, minutes_late,
			is_excused, excused_by, excuse_reason, created_at
		FROM late_arrivals
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if from != nil && to != nil {
		query += ` AND arrival_date BETWEEN $2 AND $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY arrival_time DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []lateness.LateArrival{}
	for rows.Next() {
		var la lateness.LateArrival
		if err := rows.Scan(
			&la.ID, &la.UserID, &la.AttendanceID, &la.ArrivalTime, &la.ExpectedTime, &la.MinutesLate,
			&la.IsExcused, &la.ExcusedBy, &la.ExcuseReason, &la.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, la)
	}
	return list, rows.Err()
}

// CountInRange implements lateness.LateArrivalRepository.
func (r *lateArrivalRepositoryImpl) CountInRange(ctx context.Context, userID string, from, to time.Time) (lateness.MonthCount, error) {
	q := GetQuerier(ctx, r.db)
	var c lateness.MonthCount
	err := q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(minutes_late), 0)
		FROM late_arrivals
		WHERE user_id = $1 AND arrival_date BETWEEN $2 AND $3
	`, userID, from, to).Scan(&c.Count, &c.TotalMinutesLate)
	if err != nil {
		return lateness.MonthCount{}, fmt.Errorf("count late arrivals: %w", err)
	}
	return c, nil
}

// DepartmentStats implements lateness.LateArrivalRepository.
func (r *lateArrivalRepositoryImpl) DepartmentStats(ctx context.Context, departmentID string, from, to time.Time) ([]lateness.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT u.id, u.full_name, COUNT(la.id), COALESCE(SUM(la.minutes_late), 0)
		FROM users u
		LEFT JOIN late_arrivals la
			ON la.user_id = u.id AND la.arrival_date BETWEEN $2 AND $3
		WHERE u.department_id = $1
		GROUP BY u.id, u.full_name
		ORDER BY COUNT(la.id) DESC, u.full_name
	`, departmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []lateness.DepartmentStat{}
	for rows.Next() {
		var s lateness.DepartmentStat
		if err := rows.Scan(&s.UserID, &s.EmployeeName, &s.LateCount, &s.TotalMinutesLate); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

type lateWarningRepositoryImpl struct {
	db *database.DB
}

func NewLateWarningRepository(db *database.DB) lateness.WarningRepository {
	return &lateWarningRepositoryImpl{db: db}
}

// Exists implements lateness.WarningRepository.
func (r *lateWarningRepositoryImpl) Exists(ctx context.Context, userID string, warningType lateness.WarningType, month time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM late_warnings
			WHERE user_id = $1 AND warning_type = $2 AND warning_month = $3
		)
	`, userID, warningType, month).Scan(&exists)
	return exists, err
}

// Create implements lateness.WarningRepository.
func (r *lateWarningRepositoryImpl) Create(ctx context.Context, w lateness.Warning) (bool, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		INSERT INTO late_warnings (id, user_id, warning_type, late_count, warning_month, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, warning_type, warning_month) DO NOTHING
	`, w.ID, w.UserID, w.WarningType, w.LateCount, w.WarningMonth, w.IssuedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByUser implements lateness.WarningRepository.
func (r *lateWarningRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]lateness.Warning, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, user_id, warning_type, late_count, warning_month, issued_at
		FROM late_warnings
		WHERE user_id = $1
		ORDER BY issued_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []lateness.Warning{}
	for rows.Next() {
		var w lateness.Warning
		if err := rows.Scan(&w.ID, &w.UserID, &w.WarningType, &w.LateCount, &w.WarningMonth, &w.IssuedAt); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
