package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `
	id, user_id, leave_type, year, total_days, used_days, remaining_days, carried_forward, updated_at
`

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID, &b.UserID, &b.LeaveType, &b.Year, &b.TotalDays, &b.UsedDays,
		&b.RemainingDays, &b.CarriedForward, &b.UpdatedAt,
	)
	return b, err
}

// Upsert implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO leave_balances (id, user_id, leave_type, year, total_days, used_days, remaining_days, carried_forward, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $5, 0, NOW())
		ON CONFLICT (user_id, leave_type, year) DO UPDATE
		SET total_days = EXCLUDED.total_days + leave_balances.carried_forward,
			remaining_days = EXCLUDED.total_days + leave_balances.carried_forward - leave_balances.used_days,
			updated_at = NOW()
	`, b.ID, b.UserID, b.LeaveType, b.Year, b.TotalDays)
	if err != nil && isForeignKeyViolation(err) {
		return leave.ErrBalanceNotFound
	}
	return err
}

// UpsertCarryForward implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpsertCarryForward(ctx context.Context, userID, leaveType string, year, base, carry int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (id, user_id, leave_type, year, total_days, used_days, remaining_days, carried_forward, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4 + $5, 0, $4 + $5, $5, NOW())
		ON CONFLICT (user_id, leave_type, year) DO UPDATE
		SET carried_forward = EXCLUDED.carried_forward,
			total_days = EXCLUDED.total_days,
			remaining_days = EXCLUDED.total_days - leave_balances.used_days,
			updated_at = NOW()
		RETURNING ` + leaveBalanceColumns
	return scanBalance(q.QueryRow(ctx, query, userID, leaveType, year, base, carry))
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, userID, leaveType string, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances
		WHERE user_id = $1 AND leave_type = $2 AND year = $3`
	b, err := scanBalance(q.QueryRow(ctx, query, userID, leaveType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListByUserYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByUserYear(ctx context.Context, userID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances
		WHERE user_id = $1 AND year = $2 ORDER BY leave_type`
	rows, err := q.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := []leave.Balance{}
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Adjust implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Adjust(ctx context.Context, userID, leaveType string, year, days int) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE leave_balances
		SET used_days = used_days + $4, remaining_days = remaining_days - $4, updated_at = NOW()
		WHERE user_id = $1 AND leave_type = $2 AND year = $3
	`, userID, leaveType, year, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
