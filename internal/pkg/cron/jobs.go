package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

const checkInterval = time.Hour

type TimesheetCreator interface {
	AutoCreateWeekly(ctx context.Context) (timesheet.AutoCreateResult, error)
}

type LeaveResetter interface {
	ResetAnnualBalances(ctx context.Context) (int, error)
}

// WorkforceJobs holds the calendar-driven batch jobs. Each job checks the
// local date on every tick and runs at most once per matching day.
type WorkforceJobs struct {
	timesheets TimesheetCreator
	leaves     LeaveResetter
	weekday    time.Weekday
	clock      calendar.Clock
	loc        *time.Location

	mu      sync.Mutex
	lastRun map[string]time.Time
}

func NewWorkforceJobs(timesheets TimesheetCreator, leaves LeaveResetter, weekday time.Weekday, clock calendar.Clock, loc *time.Location) *WorkforceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkforceJobs{
		timesheets: timesheets,
		leaves:     leaves,
		weekday:    weekday,
		clock:      clock,
		loc:        loc,
		lastRun:    make(map[string]time.Time),
	}
}

func (j *WorkforceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("weekly_timesheets", checkInterval, j.WeeklyTimesheets)
	scheduler.AddJob("annual_leave_reset", checkInterval, j.AnnualLeaveReset)
}

// claim reports whether name has not yet run on day, and marks it as run.
func (j *WorkforceJobs) claim(name string, day time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if last, ok := j.lastRun[name]; ok && last.Equal(day) {
		return false
	}
	j.lastRun[name] = day
	return true
}

func (j *WorkforceJobs) release(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.lastRun, name)
}

func (j *WorkforceJobs) today() time.Time {
	return calendar.DateOnly(j.clock.Now().In(j.loc))
}

// WeeklyTimesheets creates the current week's timesheets on the configured
// weekday.
func (j *WorkforceJobs) WeeklyTimesheets(ctx context.Context) error {
	day := j.today()
	if day.Weekday() != j.weekday || !j.claim("weekly_timesheets", day) {
		return nil
	}

	slog.Info("Cron: Starting weekly timesheet creation")
	result, err := j.timesheets.AutoCreateWeekly(ctx)
	if err != nil {
		j.release("weekly_timesheets")
		return fmt.Errorf("failed to auto-create timesheets: %w", err)
	}
	slog.Info("Cron: Weekly timesheets created", "count", result.Created, "week_start", result.WeekStart.Format(calendar.DateLayout))
	return nil
}

// AnnualLeaveReset initializes the new year's leave balances on January 1.
func (j *WorkforceJobs) AnnualLeaveReset(ctx context.Context) error {
	day := j.today()
	if day.Month() != time.January || day.Day() != 1 || !j.claim("annual_leave_reset", day) {
		return nil
	}

	slog.Info("Cron: Starting annual leave reset")
	count, err := j.leaves.ResetAnnualBalances(ctx)
	if err != nil {
		j.release("annual_leave_reset")
		return fmt.Errorf("failed to reset annual leave: %w", err)
	}
	slog.Info("Cron: Annual leave balances reset", "users", count)
	return nil
}
