package shift

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes *int   `json:"break_minutes,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if !validator.IsValidClock(r.StartTime) {
		errs.Add("start_time", "start_time must be HH:MM")
	}
	if !validator.IsValidClock(r.EndTime) {
		errs.Add("end_time", "end_time must be HH:MM")
	}
	if r.BreakMinutes != nil && (*r.BreakMinutes < 0 || *r.BreakMinutes > 24*60) {
		errs.Add("break_minutes", "break_minutes must be between 0 and 1440")
	}

	return errs.Err()
}

type AssignShiftRequest struct {
	UserID        string  `json:"user_id"`
	ShiftID       string  `json:"shift_id"`
	EffectiveDate string  `json:"effective_date"`
	EndDate       *string `json:"end_date,omitempty"`

	effective time.Time
	end       *time.Time
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if validator.IsEmpty(r.ShiftID) {
		errs.Add("shift_id", "shift_id is required")
	}
	r.effective = validator.RequiredDate(&errs, "effective_date", r.EffectiveDate)
	r.end = validator.OptionalDate(&errs, "end_date", r.EndDate)
	if r.end != nil && !r.effective.IsZero() && r.end.Before(r.effective) {
		errs.Add("end_date", "end_date must not be before effective_date")
	}

	return errs.Err()
}

// Dates returns the parsed interval. Call after Validate.
func (r *AssignShiftRequest) Dates() (time.Time, *time.Time) {
	return r.effective, r.end
}

type ScheduleQuery struct {
	DepartmentID string
	WeekStart    string
}

func (q *ScheduleQuery) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(q.DepartmentID) {
		errs.Add("department_id", "department_id is required")
	}
	var start time.Time
	if validator.IsEmpty(q.WeekStart) {
		errs.Add("week_start", "week_start is required")
	} else {
		d, ok := validator.IsValidDate(q.WeekStart)
		if !ok {
			errs.Add("week_start", "invalid date format, expected YYYY-MM-DD")
		}
		start = d
	}
	return start, errs.Err()
}

type CreateSwapRequest struct {
	TargetUserID string `json:"target_user_id"`
	SwapDate     string `json:"swap_date"`
	Reason       string `json:"reason"`

	date time.Time
}

func (r *CreateSwapRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TargetUserID) {
		errs.Add("target_user_id", "target_user_id is required")
	}
	r.date = validator.RequiredDate(&errs, "swap_date", r.SwapDate)
	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

func (r *CreateSwapRequest) Date() time.Time {
	return r.date
}

type RespondSwapRequest struct {
	TargetAccepted  *bool `json:"target_accepted,omitempty"`
	ManagerApproved *bool `json:"manager_approved,omitempty"`
}

type SwapFilter struct {
	UserID *string
	Status *SwapStatus
}

type ScheduleWeek struct {
	DepartmentID string          `json:"department_id"`
	WeekStart    string          `json:"week_start"`
	WeekEnd      string          `json:"week_end"`
	Entries      []ScheduleEntry `json:"entries"`
}

func NewScheduleWeek(departmentID string, start time.Time, entries []ScheduleEntry) ScheduleWeek {
	if entries == nil {
		entries = []ScheduleEntry{}
	}
	return ScheduleWeek{
		DepartmentID: departmentID,
		WeekStart:    start.Format(calendar.DateLayout),
		WeekEnd:      calendar.WeekEnd(start).Format(calendar.DateLayout),
		Entries:      entries,
	}
}
