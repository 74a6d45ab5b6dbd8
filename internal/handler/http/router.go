package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Shift      ShiftHandler
	Timesheet  TimesheetHandler
	Holiday    HolidayHandler
	WFH        WFHHandler
	Report     ReportHandler
	User       UserHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	DB             Pinger
}

func NewRouter(JWTService jwt.Service, authorizer middleware.Authorizer, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	perm := func(p user.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(authorizer, p)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler(opts.DB))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/signin", h.Auth.Signin)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Post("/reset-password/{token}", h.Auth.ResetPassword)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(perm(user.PermissionAttendanceCreate)).Post("/clockin", h.Attendance.ClockIn)
				r.With(perm(user.PermissionAttendanceCreate)).Post("/clockout", h.Attendance.ClockOut)
				r.With(perm(user.PermissionAttendanceViewOwn)).Get("/history", h.Attendance.GetMyAttendance)
				r.With(perm(user.PermissionAttendanceViewAll)).Get("/reports", h.Attendance.List)

				r.With(perm(user.PermissionCorrectionCreate)).Post("/request-correction", h.Attendance.RequestCorrection)
				r.With(perm(user.PermissionCorrectionCreate)).Get("/my-corrections", h.Attendance.MyCorrections)
				r.With(perm(user.PermissionCorrectionApprove)).Get("/correction-requests", h.Attendance.PendingCorrections)
				r.With(perm(user.PermissionCorrectionApprove)).Patch("/correction-requests/{id}", h.Attendance.RespondCorrection)
			})

			r.Route("/locations", func(r chi.Router) {
				r.With(perm(user.PermissionLocationView)).Get("/", h.Attendance.ListLocations)
				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionLocationManage))
					r.Post("/", h.Attendance.AddLocation)
					r.Delete("/{id}", h.Attendance.RemoveLocation)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)
				r.With(perm(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.GetMyBalance)
				r.With(perm(user.PermissionLeaveViewAll)).Get("/balance/{userID}", h.Leave.GetBalance)
				r.With(perm(user.PermissionLeaveViewOwn)).Get("/check-availability", h.Leave.CheckAvailability)
				r.With(perm(user.PermissionLeaveViewOwn)).Get("/history", h.Leave.History)

				r.With(perm(user.PermissionLeaveCreate)).Post("/request", h.Leave.CreateRequest)
				r.With(perm(user.PermissionLeaveViewOwn)).Get("/my-requests", h.Leave.GetMyRequests)
				r.With(perm(user.PermissionLeaveCreate)).Delete("/requests/{id}", h.Leave.CancelRequest)
				r.With(perm(user.PermissionLeaveViewAll)).Get("/requests", h.Leave.ListRequests)
				r.With(perm(user.PermissionLeaveApprove)).Patch("/requests/{id}", h.Leave.RespondRequest)

				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionLeaveManage))
					r.Post("/initialize/{userID}", h.Leave.Initialize)
					r.Post("/carry-forward/{userID}", h.Leave.CarryForward)
					r.Post("/reset-annual", h.Leave.ResetAnnual)
					r.Post("/deduct", h.Leave.Deduct)
					r.Post("/restore", h.Leave.Restore)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.With(perm(user.PermissionOvertimeViewOwn)).Get("/classify", h.Overtime.Classify)
				r.With(perm(user.PermissionOvertimeViewOwn)).Get("/summary", h.Overtime.Summary)
				r.With(perm(user.PermissionOvertimeViewOwn)).Get("/calculate-pay", h.Overtime.CalculatePay)
				r.With(perm(user.PermissionOvertimeCreate)).Post("/request", h.Overtime.CreateRequest)
				r.With(perm(user.PermissionOvertimeViewOwn)).Get("/my-requests", h.Overtime.GetMyRequests)
				r.With(perm(user.PermissionOvertimeViewAll)).Get("/requests", h.Overtime.ListRequests)
				r.With(perm(user.PermissionOvertimeApprove)).Patch("/requests/{id}", h.Overtime.RespondRequest)
			})

			r.Route("/lateness", func(r chi.Router) {
				r.With(perm(user.PermissionLatenessViewOwn)).Get("/my-arrivals", h.Overtime.MyLateArrivals)
				r.With(perm(user.PermissionLatenessViewOwn)).Get("/summary", h.Overtime.LatenessSummary)
				r.With(perm(user.PermissionLatenessViewAll)).Get("/users/{userID}", h.Overtime.UserLateArrivals)
				r.With(perm(user.PermissionLatenessViewAll)).Get("/department", h.Overtime.DepartmentLateness)
				r.With(perm(user.PermissionLatenessExcuse)).Post("/{id}/excuse", h.Overtime.ExcuseLateArrival)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.With(perm(user.PermissionShiftView)).Get("/", h.Shift.List)
				r.With(perm(user.PermissionShiftView)).Get("/my-shift", h.Shift.MyShift)
				r.With(perm(user.PermissionShiftView)).Get("/my-assignments", h.Shift.MyAssignments)
				r.With(perm(user.PermissionShiftView)).Get("/schedule", h.Shift.Schedule)
				r.With(perm(user.PermissionShiftSwap)).Get("/swap-requests", h.Shift.ListSwaps)
				r.With(perm(user.PermissionShiftSwap)).Post("/swap-request", h.Shift.RequestSwap)
				r.With(perm(user.PermissionShiftSwap)).Patch("/swap-request/{id}", h.Shift.RespondSwap)

				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Post("/assign", h.Shift.Assign)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.With(perm(user.PermissionTimesheetCreate)).Post("/", h.Timesheet.Create)
				r.With(perm(user.PermissionTimesheetViewOwn)).Get("/my-timesheets", h.Timesheet.MyTimesheets)
				r.With(perm(user.PermissionTimesheetApprove)).Get("/pending", h.Timesheet.Pending)
				r.With(perm(user.PermissionJobsRun)).Post("/auto-create", h.Timesheet.AutoCreate)
				r.With(perm(user.PermissionTimesheetViewOwn)).Get("/{id}", h.Timesheet.Get)
				r.With(perm(user.PermissionTimesheetCreate)).Post("/{id}/submit", h.Timesheet.Submit)
				r.With(perm(user.PermissionTimesheetCreate)).Post("/{id}/recall", h.Timesheet.Recall)
				r.With(perm(user.PermissionTimesheetApprove)).Patch("/{id}/review", h.Timesheet.Review)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionHolidayView))
					r.Get("/", h.Holiday.List)
					r.Get("/upcoming", h.Holiday.Upcoming)
					r.Get("/summary", h.Holiday.Summary)
					r.Get("/check", h.Holiday.Check)
					r.Get("/working-days", h.Holiday.WorkingDays)
				})
				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionHolidayManage))
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/wfh", func(r chi.Router) {
				r.With(perm(user.PermissionWFHCreate)).Post("/request", h.WFH.CreateRequest)
				r.With(perm(user.PermissionWFHCreate)).Delete("/request/{id}", h.WFH.CancelRequest)
				r.With(perm(user.PermissionWFHApprove)).Patch("/request/{id}", h.WFH.RespondRequest)
				r.With(perm(user.PermissionWFHViewOwn)).Get("/my-requests", h.WFH.GetMyRequests)
				r.With(perm(user.PermissionWFHViewAll)).Get("/requests", h.WFH.ListRequests)
				r.With(perm(user.PermissionWFHCreate)).Post("/log", h.WFH.Log)
				r.With(perm(user.PermissionWFHViewOwn)).Get("/summary", h.WFH.Summary)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(perm(user.PermissionReportsViewOwn)).Get("/monthly", h.Report.Monthly)
				r.With(perm(user.PermissionReportsViewOwn)).Get("/trends", h.Report.Trends)
				r.With(perm(user.PermissionReportsViewOwn)).Get("/export", h.Report.Export)
				r.With(perm(user.PermissionReportsView)).Get("/department", h.Report.Department)
				r.With(perm(user.PermissionReportsView)).Get("/company-summary", h.Report.CompanySummary)
			})

			r.Route("/profile", func(r chi.Router) {
				r.With(perm(user.PermissionViewOwnProfile)).Get("/", h.User.GetProfile)
				r.With(perm(user.PermissionEditOwnProfile)).Put("/", h.User.UpdateProfile)
				r.With(perm(user.PermissionViewOwnProfile)).Get("/permissions", h.User.MyPermissions)
			})

			r.Get("/departments", h.User.Departments)

			r.Route("/users", func(r chi.Router) {
				r.Use(perm(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Get("/roles", h.User.Roles)
				r.Get("/audit-log", h.User.AuditLog)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Put("/{id}/role", h.User.UpdateRole)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Use(perm(user.PermissionJobsRun))
				r.Post("/weekly-timesheets", h.Timesheet.AutoCreate)
				r.Post("/annual-leave-reset", h.Leave.ResetAnnual)
			})
		})
	})
	return r
}

type healthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{Status: "ok", Timestamp: time.Now().UTC()}
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				slog.Error("Health check database ping failed", "error", err)
				status.Status = "degraded"
				status.Database = "unreachable"
				response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database unreachable", status)
				return
			}
			status.Database = "ok"
		}
		response.Success(w, status)
	}
}
