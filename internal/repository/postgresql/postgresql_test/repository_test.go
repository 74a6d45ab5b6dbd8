package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveBalance_UpsertKeepsUsage(t *testing.T) {
	s := NewTestDatabase(t)
	repo := postgresql.NewLeaveBalanceRepository(s.DB)
	ctx := context.Background()
	u := createTestUser(t, s, "ana@example.com", user.RoleEmployee)

	require.NoError(t, repo.Upsert(ctx, leave.Balance{ID: utils.NewID(), UserID: u.ID, LeaveType: "annual", Year: 2026, TotalDays: 20}))
	require.NoError(t, repo.Adjust(ctx, u.ID, "annual", 2026, 4))
	require.NoError(t, repo.Upsert(ctx, leave.Balance{ID: utils.NewID(), UserID: u.ID, LeaveType: "annual", Year: 2026, TotalDays: 20}))

	b, err := repo.Get(ctx, u.ID, "annual", 2026)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 20, b.TotalDays)
	assert.Equal(t, 4, b.UsedDays)
	assert.Equal(t, 16, b.RemainingDays)

	err = repo.Adjust(ctx, u.ID, "sick", 2026, 1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestUserShifts_OverlapRejected(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	u := createTestUser(t, s, "ana@example.com", user.RoleEmployee)
	shifts := postgresql.NewShiftRepository(s.DB)
	assignments := postgresql.NewShiftAssignmentRepository(s.DB)

	day := shift.Shift{ID: utils.NewID(), Name: "Day", StartTime: "09:00", EndTime: "17:00", BreakMinutes: 60, IsActive: true}
	_, err := shifts.Create(ctx, day)
	require.NoError(t, err)

	first := shift.Assignment{ID: utils.NewID(), UserID: u.ID, ShiftID: day.ID, EffectiveDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	_, err = assignments.Create(ctx, first)
	require.NoError(t, err)

	second := shift.Assignment{ID: utils.NewID(), UserID: u.ID, ShiftID: day.ID, EffectiveDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
	_, err = assignments.Create(ctx, second)
	assert.ErrorIs(t, err, shift.ErrOverlappingAssignment)
}

func TestTransactor_RollsBack(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(s.DB)
	users := postgresql.NewUserRepository(s.DB)
	boom := errors.New("boom")

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := users.Create(ctx, user.User{
			ID:           utils.NewID(),
			Email:        "rollback@example.com",
			PasswordHash: "hash",
			RoleID:       s.roleID(t, "employee"),
			IsActive:     true,
		})
		require.NoError(t, err)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, err = users.GetByEmail(ctx, "rollback@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
