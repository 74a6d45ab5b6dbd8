package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps a connection to a database migrated with
// migrations/0001_init.sql.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(db.Close)
	return setup
}

// TruncateAllTables removes all rows except the seeded roles and departments.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"audit_log",
		"wfh_logs",
		"wfh_requests",
		"holidays",
		"timesheets",
		"shift_swap_requests",
		"user_shifts",
		"shifts",
		"late_warnings",
		"late_arrivals",
		"overtime_requests",
		"leave_requests",
		"leave_balances",
		"attendance_correction_requests",
		"attendance",
		"users",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) roleID(t *testing.T, name string) int {
	t.Helper()
	var id int
	require.NoError(t, s.DB.QueryRow(context.Background(), `SELECT id FROM roles WHERE role_name = $1`, name).Scan(&id))
	return id
}

func (s *TestDatabaseSetup) departmentID(t *testing.T, name string) string {
	t.Helper()
	var id string
	require.NoError(t, s.DB.QueryRow(context.Background(), `SELECT id FROM departments WHERE name = $1`, name).Scan(&id))
	return id
}
