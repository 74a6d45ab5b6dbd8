package wfh

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequests struct {
	items map[string]wfh.Request
}

func (f *fakeRequests) Create(ctx context.Context, r wfh.Request) error {
	for _, existing := range f.items {
		if existing.UserID == r.UserID && existing.WorkDate.Equal(r.WorkDate) {
			return wfh.ErrDuplicateRequest
		}
	}
	f.items[r.ID] = r
	return nil
}

func (f *fakeRequests) GetForUpdate(ctx context.Context, id string) (wfh.Request, error) {
	r, ok := f.items[id]
	if !ok {
		return wfh.Request{}, wfh.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequests) Resolve(ctx context.Context, r wfh.Request) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeRequests) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRequests) List(ctx context.Context, q wfh.Query) ([]wfh.Request, error) {
	out := []wfh.Request{}
	for _, r := range f.items {
		if q.UserID != nil && r.UserID != *q.UserID {
			continue
		}
		if q.Status != nil && r.Status != *q.Status {
			continue
		}
		if q.From != nil && r.WorkDate.Before(*q.From) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequests) ApprovedFor(ctx context.Context, userID string, day time.Time) (*wfh.Request, error) {
	for _, r := range f.items {
		if r.UserID == userID && r.WorkDate.Equal(day) && r.Status == wfh.StatusApproved {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequests) CountByStatus(ctx context.Context, userID string, from, to time.Time) (wfh.StatusCounts, error) {
	var c wfh.StatusCounts
	for _, r := range f.items {
		if r.UserID != userID || r.WorkDate.Before(from) || r.WorkDate.After(to) {
			continue
		}
		switch r.Status {
		case wfh.StatusApproved:
			c.Approved++
		case wfh.StatusDenied:
			c.Denied++
		case wfh.StatusPending:
			c.Pending++
		}
	}
	return c, nil
}

type fakeLogs struct {
	items []wfh.Log
}

func (f *fakeLogs) Create(ctx context.Context, l wfh.Log) error {
	f.items = append(f.items, l)
	return nil
}

func (f *fakeLogs) OpenForUpdate(ctx context.Context, userID string, day time.Time) (*wfh.Log, error) {
	for _, l := range f.items {
		if l.UserID == userID && l.WorkDate.Equal(day) && l.EndTime == nil {
			return &l, nil
		}
	}
	return nil, nil
}

func (f *fakeLogs) Close(ctx context.Context, l wfh.Log) error {
	for i := range f.items {
		if f.items[i].ID == l.ID {
			f.items[i] = l
		}
	}
	return nil
}

func (f *fakeLogs) TotalHours(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	var total float64
	for _, l := range f.items {
		if l.UserID == userID && l.TotalHours != nil && !l.WorkDate.Before(from) && !l.WorkDate.After(to) {
			total += *l.TotalHours
		}
	}
	return total, nil
}

type mutableClock struct {
	now time.Time
}

func (c *mutableClock) Now() time.Time { return c.now }

type fixture struct {
	svc      wfh.WFHService
	requests *fakeRequests
	logs     *fakeLogs
	clock    *mutableClock
}

func newFixture(now time.Time) fixture {
	f := fixture{
		requests: &fakeRequests{items: map[string]wfh.Request{}},
		logs:     &fakeLogs{},
		clock:    &mutableClock{now: now},
	}
	f.svc = NewWFHService(f.requests, f.logs, database.NoopTransactor{}, f.clock, nil)
	return f
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestRequest_OnePerDay(t *testing.T) {
	f := newFixture(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-04", Reason: "plumber"})
	require.NoError(t, err)
	_, err = f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-04"})

	assert.ErrorIs(t, err, wfh.ErrDuplicateRequest)
	assert.Equal(t, apperror.KindDuplicateOperation, apperror.KindOf(err))
}

func TestRespond_PendingOnly(t *testing.T) {
	f := newFixture(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	r, err := f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-04"})
	require.NoError(t, err)

	resolved, err := f.svc.Respond(ctx, "m1", r.ID, wfh.RespondRequest{Approved: boolPtr(false), Response: strPtr("team day")})
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusDenied, resolved.Status)

	_, err = f.svc.Respond(ctx, "m1", r.ID, wfh.RespondRequest{Approved: boolPtr(true)})
	assert.ErrorIs(t, err, wfh.ErrRequestResolved)
}

func TestLog_Flow(t *testing.T) {
	f := newFixture(time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.svc.Log(ctx, "u1", wfh.LogRequest{Action: "start"})
	require.ErrorIs(t, err, wfh.ErrNoApprovedWFH)

	r, err := f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-04"})
	require.NoError(t, err)
	_, err = f.svc.Respond(ctx, "m1", r.ID, wfh.RespondRequest{Approved: boolPtr(true)})
	require.NoError(t, err)

	_, err = f.svc.Log(ctx, "u1", wfh.LogRequest{Action: "end"})
	require.ErrorIs(t, err, wfh.ErrNoActiveSession)

	started, err := f.svc.Log(ctx, "u1", wfh.LogRequest{Action: "start", Notes: strPtr("on slack")})
	require.NoError(t, err)
	require.NotNil(t, started.StartTime)

	_, err = f.svc.Log(ctx, "u1", wfh.LogRequest{Action: "start"})
	require.ErrorIs(t, err, wfh.ErrSessionAlreadyOpen)

	f.clock.now = f.clock.now.Add(7*time.Hour + 30*time.Minute)
	ended, err := f.svc.Log(ctx, "u1", wfh.LogRequest{Action: "end", Notes: strPtr("shipped")})
	require.NoError(t, err)
	require.NotNil(t, ended.TotalHours)
	assert.Equal(t, 7.5, *ended.TotalHours)
	require.Len(t, f.logs.items, 1)
	assert.Equal(t, "on slack | shipped", *f.logs.items[0].Notes)

	summary, err := f.svc.Summary(ctx, "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Approved)
	assert.Equal(t, 7.5, summary.TotalWFHHours)
	assert.Equal(t, 3, summary.Month)
}

func TestLog_InvalidAction(t *testing.T) {
	f := newFixture(time.Now())

	_, err := f.svc.Log(context.Background(), "u1", wfh.LogRequest{Action: "pause"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "action must be start or end", verrs.ToMap()["action"])
}

func TestCancel(t *testing.T) {
	f := newFixture(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	pending, err := f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-04"})
	require.NoError(t, err)
	approved, err := f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-05"})
	require.NoError(t, err)
	_, err = f.svc.Respond(ctx, "m1", approved.ID, wfh.RespondRequest{Approved: boolPtr(true)})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Cancel(ctx, "u2", pending.ID), wfh.ErrRequestNotFound)
	assert.ErrorIs(t, f.svc.Cancel(ctx, "u1", approved.ID), wfh.ErrCannotCancel)
	require.NoError(t, f.svc.Cancel(ctx, "u1", pending.ID))
	assert.NotContains(t, f.requests.items, pending.ID)
}

func TestList_Filters(t *testing.T) {
	f := newFixture(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-02-20"})
	require.NoError(t, err)
	_, err = f.svc.Request(ctx, "u1", wfh.CreateRequest{Date: "2026-03-04"})
	require.NoError(t, err)

	list, err := f.svc.List(ctx, wfh.Filter{UserID: strPtr("u1"), FromDate: strPtr("2026-03-01")})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.List(ctx, wfh.Filter{Status: strPtr("archived")})
	assert.ErrorIs(t, err, wfh.ErrInvalidStatus)

	_, err = f.svc.List(ctx, wfh.Filter{FromDate: strPtr("yesterday")})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
