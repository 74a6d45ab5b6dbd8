package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/authz"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubAttendance struct {
	attendance.AttendanceService
	gotUserID string
	clockIn   func(req attendance.ClockRequest) (attendance.ClockInResponse, error)
}

func (s *stubAttendance) ClockIn(ctx context.Context, userID string, req attendance.ClockRequest) (attendance.ClockInResponse, error) {
	s.gotUserID = userID
	return s.clockIn(req)
}

func (s *stubAttendance) MyRecords(ctx context.Context, userID string, filter attendance.RecordFilter) ([]attendance.Record, error) {
	s.gotUserID = userID
	return []attendance.Record{}, nil
}

type stubLeave struct {
	leave.LeaveService
	availability func() (leave.Availability, error)
}

func (s *stubLeave) CheckAvailability(ctx context.Context, userID string, req leave.AvailabilityRequest) (leave.Availability, error) {
	return s.availability()
}

type stubShift struct {
	shift.ShiftService
	responder shift.Responder
}

func (s *stubShift) RespondToSwap(ctx context.Context, responder shift.Responder, id string, req shift.RespondSwapRequest) (shift.SwapRequest, error) {
	s.responder = responder
	return shift.SwapRequest{ID: id, Status: shift.SwapPendingManagerApproval}, nil
}

type stubReport struct {
	report.ReportService
	exported report.ExportRequest
}

func (s *stubReport) Export(ctx context.Context, req report.ExportRequest) (report.File, error) {
	s.exported = req
	return report.File{Name: "monthly-report-2026-03.csv", ContentType: "text/csv", Data: []byte("a,b\n")}, nil
}

type fixture struct {
	router     http.Handler
	jwt        jwt.Service
	attendance *stubAttendance
	leave      *stubLeave
	shift      *stubShift
	report     *stubReport
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	authorizer, err := authz.NewAuthorizer()
	require.NoError(t, err)

	f := &fixture{
		jwt:        jwt.NewJWTService(handlerTestSecret, "1h"),
		attendance: &stubAttendance{},
		leave:      &stubLeave{},
		shift:      &stubShift{},
		report:     &stubReport{},
	}
	var locations location.LocationService
	f.router = NewRouter(f.jwt, authorizer, Handlers{
		Auth:       NewAuthHandler(nil),
		Attendance: NewAttendanceHandler(f.attendance, locations),
		Leave:      NewLeaveHandler(f.leave),
		Overtime:   NewOvertimeHandler(nil, nil),
		Shift:      NewShiftHandler(f.shift, authorizer),
		Timesheet:  NewTimesheetHandler(nil, authorizer),
		Holiday:    NewHolidayHandler(nil),
		WFH:        NewWFHHandler(nil),
		Report:     NewReportHandler(f.report, authorizer),
		User:       NewUserHandler(nil, nil, authorizer),
	}, RouterOptions{})
	return f
}

func (f *fixture) token(t *testing.T, id string, role user.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(user.User{ID: id, Email: id + "@example.com", Role: role})
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/attendance/history", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := jwt.NewJWTService("some-other-secret", "1h")
		token, _, err := other.GenerateAccessToken(user.User{ID: "u1", Role: user.RoleEmployee})
		require.NoError(t, err)

		rec := f.do(t, http.MethodGet, "/api/v1/attendance/history", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches handler with caller id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/attendance/history", f.token(t, "u1", user.RoleEmployee), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", f.attendance.gotUserID)
	})
}

func TestRequirePermission(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		role   user.Role
		method string
		path   string
		want   int
	}{
		{"employee cannot list users", user.RoleEmployee, http.MethodGet, "/api/v1/users", http.StatusForbidden},
		{"manager cannot list users", user.RoleManager, http.MethodGet, "/api/v1/users", http.StatusForbidden},
		{"employee cannot view department report", user.RoleEmployee, http.MethodGet, "/api/v1/reports/department", http.StatusForbidden},
		{"employee cannot reset leave", user.RoleEmployee, http.MethodPost, "/api/v1/leave/reset-annual", http.StatusForbidden},
		{"manager cannot add locations", user.RoleManager, http.MethodPost, "/api/v1/locations", http.StatusForbidden},
		{"employee cannot review timesheets", user.RoleEmployee, http.MethodPatch, "/api/v1/timesheets/t1/review", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, f.token(t, "u1", tt.role), nil)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)
		})
	}
}

func TestClockIn_ErrorMapping(t *testing.T) {
	lat, lon := -6.2, 106.8
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"success", nil, http.StatusCreated, ""},
		{"outside geofence", location.ErrUnauthorizedLocation, http.StatusBadRequest, "UNAUTHORIZED_LOCATION"},
		{"already clocked in", attendance.ErrAlreadyClockedIn, http.StatusBadRequest, "DUPLICATE_OPERATION"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.attendance.clockIn = func(req attendance.ClockRequest) (attendance.ClockInResponse, error) {
				if tt.err != nil {
					return attendance.ClockInResponse{}, tt.err
				}
				return attendance.ClockInResponse{ID: "a1", ClockInTime: time.Now()}, nil
			}

			rec := f.do(t, http.MethodPost, "/api/v1/attendance/clockin", f.token(t, "u1", user.RoleEmployee),
				attendance.ClockRequest{Latitude: &lat, Longitude: &lon})

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decode(t, rec)
			if tt.wantKind == "" {
				assert.True(t, resp.Success)
				assert.Equal(t, "u1", f.attendance.gotUserID)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantKind, resp.Error.Code)
		})
	}
}

func TestClockIn_ValidationDetails(t *testing.T) {
	f := newFixture(t)
	f.attendance.clockIn = func(req attendance.ClockRequest) (attendance.ClockInResponse, error) {
		return attendance.ClockInResponse{}, req.Validate()
	}

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/clockin", f.token(t, "u1", user.RoleEmployee), map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "latitude is required", details["latitude"])
}

func TestClockIn_MalformedBody(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clockin", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "u1", user.RoleEmployee))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decode(t, rec).Error.Code)
}

func TestCheckAvailability_InsufficientBalanceDetails(t *testing.T) {
	f := newFixture(t)
	f.leave.availability = func() (leave.Availability, error) {
		return leave.Availability{}, &leave.InsufficientBalanceError{Available: 2, Requested: 5}
	}

	rec := f.do(t, http.MethodGet, "/api/v1/leave/check-availability?leave_type=annual&start_date=2026-03-02&end_date=2026-03-06",
		f.token(t, "u1", user.RoleEmployee), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_BALANCE", resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, details["available_days"])
	assert.EqualValues(t, 5, details["requested_days"])
}

func TestRespondSwap_ApprovalFollowsRole(t *testing.T) {
	f := newFixture(t)
	accepted := true

	rec := f.do(t, http.MethodPatch, "/api/v1/shifts/swap-request/s1", f.token(t, "u2", user.RoleEmployee),
		shift.RespondSwapRequest{TargetAccepted: &accepted})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shift.Responder{UserID: "u2", CanApprove: false}, f.shift.responder)

	rec = f.do(t, http.MethodPatch, "/api/v1/shifts/swap-request/s1", f.token(t, "m1", user.RoleManager),
		shift.RespondSwapRequest{ManagerApproved: &accepted})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shift.Responder{UserID: "m1", CanApprove: true}, f.shift.responder)
}

func TestExport(t *testing.T) {
	f := newFixture(t)

	t.Run("employee export is scoped to self", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports/export?format=csv&month=3&year=2026&user_id=someone-else",
			f.token(t, "u1", user.RoleEmployee), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "monthly-report-2026-03.csv")
		assert.Equal(t, "a,b\n", rec.Body.String())
		assert.Equal(t, "u1", f.report.exported.UserID)
		assert.Equal(t, "monthly", f.report.exported.Type)
	})

	t.Run("manager may export another user", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports/export?format=xlsx&user_id=u9",
			f.token(t, "m1", user.RoleManager), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u9", f.report.exported.UserID)
		assert.Equal(t, "xlsx", f.report.exported.Format)
	})

	t.Run("employee cannot export a department", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports/export?type=department&department_id=d1",
			f.token(t, "u1", user.RoleEmployee), nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestMyPermissions(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/profile/permissions", f.token(t, "m1", user.RoleManager), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := decode(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "manager", data["role"])
	perms, ok := data["permissions"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, perms, "leave.approve")
	assert.Contains(t, perms, "attendance.create")
	assert.NotContains(t, perms, "user.manage")
}

func TestHandleError_MasksInternalErrors(t *testing.T) {
	response.MaskInternalErrors(true)
	t.Cleanup(func() { response.MaskInternalErrors(false) })

	rec := httptest.NewRecorder()
	response.HandleError(rec, errors.New("pq: relation \"users\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
}

func TestHandleError_ValidationErrors(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("month", "month must be between 1 and 12")

	rec := httptest.NewRecorder()
	response.HandleError(rec, errs.Err())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
}
