package lateness

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftLookup struct {
	start string
}

func (f fakeShiftLookup) ShiftOn(ctx context.Context, userID string, day time.Time) (*shift.Assignment, error) {
	if f.start == "" {
		return nil, nil
	}
	return &shift.Assignment{UserID: userID, Shift: &shift.Shift{Name: "Day", StartTime: f.start, EndTime: "17:00"}}, nil
}

type fakeArrivals struct {
	items []lateness.LateArrival
}

func (f *fakeArrivals) Create(ctx context.Context, la lateness.LateArrival) error {
	f.items = append(f.items, la)
	return nil
}

func (f *fakeArrivals) Excuse(ctx context.Context, id, excusedBy, reason string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsExcused = true
			f.items[i].ExcusedBy = &excusedBy
			f.items[i].ExcuseReason = &reason
			return nil
		}
	}
	return lateness.ErrLateArrivalNotFound
}

func (f *fakeArrivals) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]lateness.LateArrival, error) {
	var out []lateness.LateArrival
	for _, la := range f.items {
		if la.UserID != userID {
			continue
		}
		d := calendar.DateOnly(la.ArrivalTime)
		if from != nil && (d.Before(*from) || d.After(*to)) {
			continue
		}
		out = append(out, la)
	}
	return out, nil
}

func (f *fakeArrivals) CountInRange(ctx context.Context, userID string, from, to time.Time) (lateness.MonthCount, error) {
	var c lateness.MonthCount
	for _, la := range f.items {
		d := calendar.DateOnly(la.ArrivalTime)
		if la.UserID == userID && !d.Before(from) && !d.After(to) {
			c.Count++
			c.TotalMinutesLate += la.MinutesLate
		}
	}
	return c, nil
}

func (f *fakeArrivals) DepartmentStats(ctx context.Context, departmentID string, from, to time.Time) ([]lateness.DepartmentStat, error) {
	return nil, nil
}

type fakeWarnings struct {
	items []lateness.Warning
}

func (f *fakeWarnings) Exists(ctx context.Context, userID string, warningType lateness.WarningType, month time.Time) (bool, error) {
	for _, w := range f.items {
		if w.UserID == userID && w.WarningType == warningType && w.WarningMonth.Equal(month) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWarnings) Create(ctx context.Context, w lateness.Warning) (bool, error) {
	f.items = append(f.items, w)
	return true, nil
}

func (f *fakeWarnings) ListByUser(ctx context.Context, userID string) ([]lateness.Warning, error) {
	return f.items, nil
}

func newTestService(start string, now time.Time) (lateness.LatenessService, *fakeArrivals, *fakeWarnings) {
	arrivals := &fakeArrivals{}
	warnings := &fakeWarnings{}
	svc := NewLatenessService(arrivals, warnings, fakeShiftLookup{start: start},
		calendar.FixedClock{At: now}, time.UTC, config.DefaultPolicy().Lateness, nil)
	return svc, arrivals, warnings
}

func TestCheckOnClockIn_GracePeriod(t *testing.T) {
	tests := []struct {
		name        string
		clockIn     time.Time
		late        bool
		minutesLate int
	}{
		{"on time", time.Date(2026, 3, 2, 8, 59, 0, 0, time.UTC), false, 0},
		{"exactly at grace", time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC), false, 0},
		{"partial minute inside grace", time.Date(2026, 3, 2, 9, 5, 59, 0, time.UTC), false, 0},
		{"one minute past grace", time.Date(2026, 3, 2, 9, 6, 0, 0, time.UTC), true, 1},
		{"twenty minutes late", time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC), true, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, arrivals, _ := newTestService("09:00", tt.clockIn)

			res, err := svc.CheckOnClockIn(context.Background(), "u1", "att-1", tt.clockIn)

			require.NoError(t, err)
			assert.Equal(t, tt.late, res.IsLate)
			assert.Equal(t, tt.minutesLate, res.MinutesLate)
			assert.Equal(t, "09:00", res.ExpectedTime)
			if tt.late {
				require.Len(t, arrivals.items, 1)
				assert.Equal(t, tt.minutesLate, arrivals.items[0].MinutesLate)
			} else {
				assert.Empty(t, arrivals.items)
			}
		})
	}
}

func TestCheckOnClockIn_NoShift(t *testing.T) {
	at := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	svc, arrivals, _ := newTestService("", at)

	res, err := svc.CheckOnClockIn(context.Background(), "u1", "att-1", at)

	require.NoError(t, err)
	assert.False(t, res.IsLate)
	assert.Equal(t, "No shift assigned", res.Message)
	assert.Empty(t, arrivals.items)
}

func TestCheckOnClockIn_WarningTiers(t *testing.T) {
	svc, _, warnings := newTestService("09:00", time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for day := 2; day <= 8; day++ {
		_, err := svc.CheckOnClockIn(ctx, "u1", "", time.Date(2026, 3, day, 9, 30, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	require.Len(t, warnings.items, 3)
	assert.Equal(t, lateness.WarningVerbal, warnings.items[0].WarningType)
	assert.Equal(t, 3, warnings.items[0].LateCount)
	assert.Equal(t, lateness.WarningWritten, warnings.items[1].WarningType)
	assert.Equal(t, 5, warnings.items[1].LateCount)
	assert.Equal(t, lateness.WarningFinal, warnings.items[2].WarningType)
	assert.Equal(t, 7, warnings.items[2].LateCount)

	// an eighth late arrival does not repeat the final warning
	_, err := svc.CheckOnClockIn(ctx, "u1", "", time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, warnings.items, 3)
}

func TestEvaluateWarnings_CountsPerMonth(t *testing.T) {
	svc, arrivals, warnings := newTestService("09:00", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	arrivals.items = []lateness.LateArrival{
		{UserID: "u1", ArrivalTime: time.Date(2026, 3, 30, 9, 30, 0, 0, time.UTC)},
		{UserID: "u1", ArrivalTime: time.Date(2026, 3, 31, 9, 30, 0, 0, time.UTC)},
		{UserID: "u1", ArrivalTime: time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)},
	}

	w, err := svc.EvaluateWarnings(ctx, "u1", time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Nil(t, w)
	assert.Empty(t, warnings.items)
}

func TestExcuse_DoesNotRevokeWarnings(t *testing.T) {
	svc, arrivals, warnings := newTestService("09:00", time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	for day := 2; day <= 4; day++ {
		_, err := svc.CheckOnClockIn(ctx, "u1", "", time.Date(2026, 3, day, 9, 30, 0, 0, time.UTC))
		require.NoError(t, err)
	}
	require.Len(t, warnings.items, 1)

	err := svc.Excuse(ctx, "m1", arrivals.items[0].ID, lateness.ExcuseRequest{Reason: "train strike"})

	require.NoError(t, err)
	assert.True(t, arrivals.items[0].IsExcused)
	assert.Len(t, warnings.items, 1)

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ThisMonth.Count)
	assert.Equal(t, 75, summary.ThisMonth.TotalMinutesLate)
	require.NotNil(t, summary.NextWarningAt)
	assert.Equal(t, 5, *summary.NextWarningAt)
}

func TestExcuse_NotFound(t *testing.T) {
	svc, _, _ := newTestService("09:00", time.Now())

	err := svc.Excuse(context.Background(), "m1", "missing", lateness.ExcuseRequest{Reason: "x"})

	assert.ErrorIs(t, err, lateness.ErrLateArrivalNotFound)
}

func TestThresholds_Next(t *testing.T) {
	th := lateness.Thresholds{Verbal: 3, Written: 5, Final: 7}
	cases := map[int]*int{0: intPtr(3), 3: intPtr(5), 6: intPtr(7), 7: nil, 12: nil}
	for count, want := range cases {
		assert.Equal(t, want, th.Next(count), "count %d", count)
	}
}

func intPtr(i int) *int { return &i }
