package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/authz"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hris-attendance-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/hris-attendance-go/internal/service/auth"
	holidayService "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
	latenessService "github.com/cmlabs-hris/hris-attendance-go/internal/service/lateness"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
	locationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/location"
	overtimeService "github.com/cmlabs-hris/hris-attendance-go/internal/service/overtime"
	reportService "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/hris-attendance-go/internal/service/shift"
	timesheetService "github.com/cmlabs-hris/hris-attendance-go/internal/service/timesheet"
	userService "github.com/cmlabs-hris/hris-attendance-go/internal/service/user"
	wfhService "github.com/cmlabs-hris/hris-attendance-go/internal/service/wfh"
	"github.com/go-chi/httplog/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)
	response.MaskInternalErrors(cfg.IsProduction())

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := calendar.NewSystemClock(loc)
	policy := cfg.Policy

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeRequestRepo := postgresql.NewOvertimeRequestRepository(db)
	overtimeHoursRepo := postgresql.NewOvertimeHoursRepository(db)
	lateArrivalRepo := postgresql.NewLateArrivalRepository(db, loc)
	lateWarningRepo := postgresql.NewLateWarningRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	shiftAssignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	shiftSwapRepo := postgresql.NewShiftSwapRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	timesheetAttendance := postgresql.NewTimesheetAttendanceReader(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveDaysReader := postgresql.NewLeaveDaysReader(db)
	wfhRequestRepo := postgresql.NewWFHRequestRepository(db)
	wfhLogRepo := postgresql.NewWFHLogRepository(db)
	reportRepo := postgresql.NewReportRepository(db, loc)

	recorder := audit.NewRecorder(auditRepo)

	locationStore, closeStore, err := newLocationStore(ctx, cfg, locationService.SeedLocations(policy.Locations, clock))
	if err != nil {
		return err
	}
	defer closeStore()

	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		return err
	}
	mailer, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("error configuring email: %w", err)
	}
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	// Services
	locations := locationService.NewLocationService(locationStore, policy.Geofence, clock, recorder)
	shifts := shiftService.NewShiftService(shiftRepo, shiftAssignmentRepo, shiftSwapRepo, tx, clock, policy.Shifts, recorder)
	lateness := latenessService.NewLatenessService(lateArrivalRepo, lateWarningRepo, shifts, clock, loc, policy.Lateness, recorder)
	attendance := attendanceService.NewAttendanceService(attendanceRepo, correctionRepo, locations, lateness, tx, clock, recorder)
	leaves := leaveService.NewLeaveService(leaveBalanceRepo, leaveRequestRepo, userRepo, policy.LeaveTypes, policy.Leave, tx, clock, recorder)
	overtime := overtimeService.NewOvertimeService(overtimeRequestRepo, overtimeHoursRepo, policy.Work, policy.Overtime, tx, clock, recorder)
	timesheets := timesheetService.NewTimesheetService(timesheetRepo, timesheetAttendance, userRepo, tx, clock, recorder)
	holidays := holidayService.NewHolidayService(holidayRepo, leaveDaysReader, clock, recorder)
	wfh := wfhService.NewWFHService(wfhRequestRepo, wfhLogRepo, tx, clock, recorder)
	reports := reportService.NewReportService(reportRepo, holidays, leaveRequestRepo, lateArrivalRepo, policy.Work, clock)
	auth := authService.NewAuthService(userRepo, jwtService, leaves, mailer, tx, clock, cfg.App.FrontendURL)
	users := userService.NewUserService(userRepo, recorder)

	// Scheduled jobs
	weekday, err := policy.Jobs.Weekday()
	if err != nil {
		return err
	}
	scheduler := cron.NewScheduler()
	cron.NewWorkforceJobs(timesheets, leaves, weekday, clock, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, authorizer, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(auth),
		Attendance: appHTTP.NewAttendanceHandler(attendance, locations),
		Leave:      appHTTP.NewLeaveHandler(leaves),
		Overtime:   appHTTP.NewOvertimeHandler(overtime, lateness),
		Shift:      appHTTP.NewShiftHandler(shifts, authorizer),
		Timesheet:  appHTTP.NewTimesheetHandler(timesheets, authorizer),
		Holiday:    appHTTP.NewHolidayHandler(holidays),
		WFH:        appHTTP.NewWFHHandler(wfh),
		Report:     appHTTP.NewReportHandler(reports, authorizer),
		User:       appHTTP.NewUserHandler(users, recorder, authorizer),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		DB:             db,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

// newLocationStore uses Redis when REDIS_URL is set so replicas share one
// list, and an in-process store otherwise.
func newLocationStore(ctx context.Context, cfg *config.Config, seed []location.AuthorizedLocation) (location.LocationStore, func(), error) {
	if cfg.Redis.URL == "" {
		slog.Info("Using in-memory authorized location store", "seeded", len(seed))
		return memory.NewLocationStore(seed), func() {}, nil
	}

	client, err := redisRepo.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	store := redisRepo.NewLocationStore(client, cfg.Redis.Key)
	seeded, err := store.SeedIfEmpty(ctx, seed)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	slog.Info("Using redis authorized location store", "key", cfg.Redis.Key, "seeded", seeded)
	return store, func() { _ = client.Close() }, nil
}
