package shift

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShifts struct {
	items map[string]shift.Shift
	seq   int
}

func (f *fakeShifts) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.seq++
	s.ID = fmt.Sprintf("shift-%d", f.seq)
	f.items[s.ID] = s
	return s, nil
}

func (f *fakeShifts) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := f.items[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShifts) ListActive(ctx context.Context) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.items {
		if s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

type fakeAssignments struct {
	items []shift.Assignment
}

func (f *fakeAssignments) HasOverlap(ctx context.Context, userID, shiftID string, effective time.Time, end *time.Time) (bool, error) {
	newEnd := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if end != nil {
		newEnd = *end
	}
	for _, a := range f.items {
		if a.UserID != userID || a.ShiftID != shiftID {
			continue
		}
		if a.EndDate == nil && !a.EffectiveDate.After(effective) {
			return true, nil
		}
		if a.EndDate != nil && !a.EndDate.Before(effective) && !a.EffectiveDate.After(newEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignments) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	a.ID = fmt.Sprintf("assign-%d", len(f.items)+1)
	a.CreatedAt = time.Now()
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeAssignments) ActiveOn(ctx context.Context, userID string, day time.Time) (*shift.Assignment, error) {
	var best *shift.Assignment
	for i := range f.items {
		a := f.items[i]
		if a.UserID != userID || !a.Covers(day) {
			continue
		}
		if best == nil || a.EffectiveDate.After(best.EffectiveDate) {
			best = &a
		}
	}
	return best, nil
}

func (f *fakeAssignments) ListByUser(ctx context.Context, userID string) ([]shift.Assignment, error) {
	var out []shift.Assignment
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) DepartmentSchedule(ctx context.Context, departmentID string, from, to time.Time) ([]shift.ScheduleEntry, error) {
	var out []shift.ScheduleEntry
	for _, a := range f.items {
		if _, _, ok := calendar.Overlap(a.EffectiveDate, endOrMax(a.EndDate), from, to); ok {
			out = append(out, shift.ScheduleEntry{UserID: a.UserID, ShiftID: a.ShiftID, EffectiveDate: a.EffectiveDate, EndDate: a.EndDate})
		}
	}
	return out, nil
}

func endOrMax(t *time.Time) time.Time {
	if t == nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return *t
}

type fakeSwaps struct {
	items map[string]shift.SwapRequest
}

func (f *fakeSwaps) Create(ctx context.Context, req shift.SwapRequest) (shift.SwapRequest, error) {
	req.ID = fmt.Sprintf("swap-%d", len(f.items)+1)
	f.items[req.ID] = req
	return req, nil
}

func (f *fakeSwaps) GetByID(ctx context.Context, id string) (shift.SwapRequest, error) {
	s, ok := f.items[id]
	if !ok {
		return shift.SwapRequest{}, shift.ErrSwapNotFound
	}
	return s, nil
}

func (f *fakeSwaps) UpdateStatus(ctx context.Context, id string, status shift.SwapStatus, approvedBy *string, responseDate *time.Time) error {
	s := f.items[id]
	s.Status = status
	s.ApprovedBy = approvedBy
	s.ResponseDate = responseDate
	f.items[id] = s
	return nil
}

func (f *fakeSwaps) List(ctx context.Context, filter shift.SwapFilter) ([]shift.SwapRequest, error) {
	var out []shift.SwapRequest
	for _, s := range f.items {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService() (*ShiftServiceImpl, *fakeShifts, *fakeAssignments, *fakeSwaps) {
	shifts := &fakeShifts{items: map[string]shift.Shift{}}
	assignments := &fakeAssignments{}
	swaps := &fakeSwaps{items: map[string]shift.SwapRequest{}}
	svc := NewShiftService(shifts, assignments, swaps, database.NoopTransactor{},
		calendar.FixedClock{At: testNow}, config.DefaultPolicy().Shifts, nil)
	return svc.(*ShiftServiceImpl), shifts, assignments, swaps
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestCreateShift_DefaultBreak(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{Name: "Morning", StartTime: "09:00", EndTime: "17:00"})

	require.NoError(t, err)
	assert.Equal(t, 60, created.BreakMinutes)
	assert.True(t, created.IsActive)
}

func TestCreateShift_InvalidClock(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{Name: "Bad", StartTime: "25:00", EndTime: "17:00"})

	require.Error(t, err)
}

func TestListShifts_OrderedByStart(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	_, err := svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Night", StartTime: "22:00", EndTime: "06:00"})
	require.NoError(t, err)
	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Morning", StartTime: "06:00", EndTime: "14:00"})
	require.NoError(t, err)

	list, err := svc.ListShifts(ctx)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Morning", list[0].Name)
}

func TestAssign_Overlap(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	sh, err := svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Morning", StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, shift.AssignShiftRequest{UserID: "u1", ShiftID: sh.ID, EffectiveDate: "2026-03-01", EndDate: strPtr("2026-03-31")})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     shift.AssignShiftRequest
		overlap bool
	}{
		{"inside existing range", shift.AssignShiftRequest{UserID: "u1", ShiftID: sh.ID, EffectiveDate: "2026-03-15", EndDate: strPtr("2026-04-15")}, true},
		{"open ended before end", shift.AssignShiftRequest{UserID: "u1", ShiftID: sh.ID, EffectiveDate: "2026-02-01"}, true},
		{"after existing range", shift.AssignShiftRequest{UserID: "u1", ShiftID: sh.ID, EffectiveDate: "2026-04-01"}, false},
		{"other user", shift.AssignShiftRequest{UserID: "u2", ShiftID: sh.ID, EffectiveDate: "2026-03-10"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Assign(ctx, tt.req)
			if tt.overlap {
				assert.ErrorIs(t, err, shift.ErrOverlappingAssignment)
				assert.Equal(t, apperror.KindOverlappingAssignment, apperror.KindOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAssign_EndBeforeEffective(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Assign(context.Background(), shift.AssignShiftRequest{UserID: "u1", ShiftID: "x", EffectiveDate: "2026-03-10", EndDate: strPtr("2026-03-01")})

	require.Error(t, err)
}

func TestAssign_UnknownShift(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Assign(context.Background(), shift.AssignShiftRequest{UserID: "u1", ShiftID: "missing", EffectiveDate: "2026-03-10"})

	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestCurrentShift_MostRecentEffective(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	early, err := svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Early", StartTime: "07:00", EndTime: "15:00"})
	require.NoError(t, err)
	late, err := svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Late", StartTime: "13:00", EndTime: "21:00"})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, shift.AssignShiftRequest{UserID: "u1", ShiftID: early.ID, EffectiveDate: "2026-01-01"})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, shift.AssignShiftRequest{UserID: "u1", ShiftID: late.ID, EffectiveDate: "2026-03-01"})
	require.NoError(t, err)

	current, err := svc.CurrentShift(ctx, "u1")

	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, late.ID, current.ShiftID)

	none, err := svc.CurrentShift(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDepartmentSchedule_WeekBounds(t *testing.T) {
	svc, _, _, _ := newTestService()

	week, err := svc.DepartmentSchedule(context.Background(), "dept-1", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2026-03-08", week.WeekStart)
	assert.Equal(t, "2026-03-14", week.WeekEnd)
	assert.NotNil(t, week.Entries)
}

func TestRequestSwap_WithSelf(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.RequestSwap(context.Background(), "u1", shift.CreateSwapRequest{TargetUserID: "u1", SwapDate: "2026-03-12"})

	assert.ErrorIs(t, err, shift.ErrSwapWithSelf)
}

func TestRespondToSwap_StateMachine(t *testing.T) {
	employee := shift.Responder{UserID: "u2"}
	manager := shift.Responder{UserID: "m1", CanApprove: true}

	tests := []struct {
		name       string
		steps      []func(svc *ShiftServiceImpl, id string) (shift.SwapRequest, error)
		want       shift.SwapStatus
		wantErr    error
		approvedBy string
	}{
		{
			name: "employee rejects",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(employee, boolPtr(false), nil),
			},
			want: shift.SwapRejectedByEmployee,
		},
		{
			name: "employee accepts then manager approves",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(employee, boolPtr(true), nil),
				respond(manager, nil, boolPtr(true)),
			},
			want:       shift.SwapApproved,
			approvedBy: "m1",
		},
		{
			name: "manager rejects after acceptance",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(employee, boolPtr(true), nil),
				respond(manager, nil, boolPtr(false)),
			},
			want:       shift.SwapRejectedByManager,
			approvedBy: "m1",
		},
		{
			name: "manager decides directly from pending",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(manager, nil, boolPtr(true)),
			},
			want:       shift.SwapApproved,
			approvedBy: "m1",
		},
		{
			name: "terminal state is final",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(employee, boolPtr(false), nil),
				respond(manager, nil, boolPtr(true)),
			},
			wantErr: shift.ErrSwapAlreadyResolved,
		},
		{
			name: "no flags",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(manager, nil, nil),
			},
			wantErr: shift.ErrSwapResponseRequired,
		},
		{
			name: "stranger cannot accept",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(shift.Responder{UserID: "u9"}, boolPtr(true), nil),
			},
			wantErr: shift.ErrNotSwapTarget,
		},
		{
			name: "employee cannot approve",
			steps: []func(*ShiftServiceImpl, string) (shift.SwapRequest, error){
				respond(employee, boolPtr(true), nil),
				respond(employee, nil, boolPtr(true)),
			},
			wantErr: shift.ErrManagerDecisionRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestService()
			ctx := context.Background()
			req, err := svc.RequestSwap(ctx, "u1", shift.CreateSwapRequest{TargetUserID: "u2", SwapDate: "2026-03-12", Reason: "family"})
			require.NoError(t, err)
			assert.Equal(t, shift.SwapPending, req.Status)

			var got shift.SwapRequest
			for _, step := range tt.steps {
				got, err = step(svc, req.ID)
				if err != nil {
					break
				}
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			if tt.approvedBy != "" {
				require.NotNil(t, got.ApprovedBy)
				assert.Equal(t, tt.approvedBy, *got.ApprovedBy)
				assert.NotNil(t, got.ResponseDate)
			}
		})
	}
}

func TestRespondToSwap_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.RespondToSwap(context.Background(), shift.Responder{UserID: "m1", CanApprove: true}, "missing", shift.RespondSwapRequest{ManagerApproved: boolPtr(true)})

	assert.ErrorIs(t, err, shift.ErrSwapNotFound)
}

func respond(r shift.Responder, accepted, approved *bool) func(*ShiftServiceImpl, string) (shift.SwapRequest, error) {
	return func(svc *ShiftServiceImpl, id string) (shift.SwapRequest, error) {
		return svc.RespondToSwap(context.Background(), r, id, shift.RespondSwapRequest{TargetAccepted: accepted, ManagerApproved: approved})
	}
}
