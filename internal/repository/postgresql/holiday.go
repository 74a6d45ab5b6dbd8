package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO holidays (id, name, date, is_recurring, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, h.ID, h.Name, h.Date, h.IsRecurring, h.Description, h.CreatedAt)
	return err
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) (holiday.Calendar, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, date, is_recurring, description, created_at
		FROM holidays
		ORDER BY date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := holiday.Calendar{}
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.IsRecurring, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		c = append(c, h)
	}
	return c, rows.Err()
}

type leaveDaysReaderImpl struct {
	db *database.DB
}

func NewLeaveDaysReader(db *database.DB) holiday.LeaveDaysReader {
	return &leaveDaysReaderImpl{db: db}
}

// ApprovedDays implements holiday.LeaveDaysReader.
func (r *leaveDaysReaderImpl) ApprovedDays(ctx context.Context, userID string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)
	var days int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(end_date - start_date + 1), 0)
		FROM leave_requests
		WHERE user_id = $1 AND status = 'approved' AND EXTRACT(YEAR FROM start_date) = $2
	`, userID, year).Scan(&days)
	return days, err
}
