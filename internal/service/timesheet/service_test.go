package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	items map[string]timesheet.Timesheet
}

func (f *fakeSheets) Create(ctx context.Context, ts timesheet.Timesheet) error {
	for _, existing := range f.items {
		if existing.UserID == ts.UserID && existing.WeekStartDate.Equal(ts.WeekStartDate) {
			return timesheet.ErrDuplicateTimesheet
		}
	}
	f.items[ts.ID] = ts
	return nil
}

func (f *fakeSheets) Exists(ctx context.Context, userID string, weekStart time.Time) (bool, error) {
	for _, ts := range f.items {
		if ts.UserID == userID && ts.WeekStartDate.Equal(weekStart) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSheets) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	ts, ok := f.items[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return ts, nil
}

func (f *fakeSheets) GetForUpdate(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSheets) UpdateStatus(ctx context.Context, ts timesheet.Timesheet) error {
	f.items[ts.ID] = ts
	return nil
}

func (f *fakeSheets) ListByUser(ctx context.Context, userID string, status *timesheet.Status) ([]timesheet.Timesheet, error) {
	out := []timesheet.Timesheet{}
	for _, ts := range f.items {
		if ts.UserID == userID && (status == nil || ts.Status == *status) {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (f *fakeSheets) ListPending(ctx context.Context, departmentID *string) ([]timesheet.Timesheet, error) {
	pending := timesheet.StatusPending
	out := []timesheet.Timesheet{}
	for _, ts := range f.items {
		if ts.Status == pending {
			out = append(out, ts)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	records map[string][]timesheet.DailyRecord
}

func (f fakeAttendance) DailyRecords(ctx context.Context, userID string, from, to time.Time) ([]timesheet.DailyRecord, error) {
	out := []timesheet.DailyRecord{}
	for _, r := range f.records[userID] {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUsers []user.User

func (f fakeUsers) ListActive(ctx context.Context) ([]user.User, error) {
	return f, nil
}

func record(d int, hours *float64) timesheet.DailyRecord {
	date := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	return timesheet.DailyRecord{Date: date, ClockIn: date.Add(9 * time.Hour), TotalHours: hours}
}

func hours(h float64) *float64 { return &h }

func newTestService(now time.Time, users ...user.User) (timesheet.TimesheetService, *fakeSheets) {
	sheets := &fakeSheets{items: map[string]timesheet.Timesheet{}}
	att := fakeAttendance{records: map[string][]timesheet.DailyRecord{
		"u1": {record(7, hours(9)), record(8, hours(8)), record(9, hours(7.5)), record(13, nil), record(14, hours(4)), record(15, hours(8))},
	}}
	svc := NewTimesheetService(sheets, att, fakeUsers(users), database.NoopTransactor{}, calendar.FixedClock{At: now}, nil)
	return svc, sheets
}

func TestCreate_SumsTheWeek(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	d, err := svc.Create(context.Background(), "u1", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), d.WeekEndDate)
	assert.Equal(t, 19.5, d.TotalHours)
	assert.Equal(t, timesheet.StatusDraft, d.Status)
	assert.Len(t, d.DailyRecords, 4)
}

func TestCreate_Duplicate(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	_, err := svc.Create(ctx, "u1", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})

	assert.ErrorIs(t, err, timesheet.ErrDuplicateTimesheet)
}

func TestSubmitRecallReview(t *testing.T) {
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	svc, sheets := newTestService(now)
	ctx := context.Background()
	d, err := svc.Create(ctx, "u1", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})
	require.NoError(t, err)
	approved := true

	_, err = svc.Review(ctx, "m1", d.ID, timesheet.ReviewRequest{Approved: &approved})
	assert.ErrorIs(t, err, timesheet.ErrNotAwaitingReview, "draft cannot be reviewed")

	_, err = svc.Recall(ctx, "u1", d.ID)
	assert.ErrorIs(t, err, timesheet.ErrNotPending)

	ts, err := svc.Submit(ctx, "u1", d.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPending, ts.Status)
	require.NotNil(t, ts.SubmittedAt)

	_, err = svc.Submit(ctx, "u1", d.ID)
	assert.ErrorIs(t, err, timesheet.ErrAlreadySubmitted)

	ts, err = svc.Recall(ctx, "u1", d.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusDraft, ts.Status)
	assert.Nil(t, ts.SubmittedAt)

	_, err = svc.Submit(ctx, "u1", d.ID)
	require.NoError(t, err)
	notes := "looks right"
	ts, err = svc.Review(ctx, "m1", d.ID, timesheet.ReviewRequest{Approved: &approved, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, ts.Status)
	assert.Equal(t, "m1", *ts.ApprovedBy)
	assert.Equal(t, now, *ts.ApprovedAt)
	assert.Equal(t, timesheet.StatusApproved, sheets.items[d.ID].Status)

	_, err = svc.Review(ctx, "m1", d.ID, timesheet.ReviewRequest{Approved: &approved})
	assert.ErrorIs(t, err, timesheet.ErrNotAwaitingReview)
}

func TestSubmit_OtherUser(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	d, err := svc.Create(ctx, "u1", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "u2", d.ID)

	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestDetails_ScopedToOwner(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	d, err := svc.Create(ctx, "u1", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})
	require.NoError(t, err)

	_, err = svc.Details(ctx, timesheet.Viewer{UserID: "u2"}, d.ID)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)

	got, err := svc.Details(ctx, timesheet.Viewer{UserID: "m1", CanViewAll: true}, d.ID)
	require.NoError(t, err)
	assert.Len(t, got.DailyRecords, 4)
}

func TestAutoCreateWeekly_SkipsExisting(t *testing.T) {
	// Wednesday; the week starts on Sunday 2026-03-08.
	now := time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC)
	svc, sheets := newTestService(now, user.User{ID: "u1"}, user.User{ID: "u2"}, user.User{ID: "u3"})
	ctx := context.Background()
	_, err := svc.Create(ctx, "u2", timesheet.CreateRequest{WeekStartDate: "2026-03-08"})
	require.NoError(t, err)

	res, err := svc.AutoCreateWeekly(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), res.WeekStart)
	assert.Len(t, sheets.items, 3)

	res, err = svc.AutoCreateWeekly(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
}
