package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type AvailabilityRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

func (r *AvailabilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	}
	r.start = validator.RequiredDate(&errs, "start_date", r.StartDate)
	r.end = validator.RequiredDate(&errs, "end_date", r.EndDate)
	if !r.start.IsZero() && !r.end.IsZero() && r.end.Before(r.start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.Err()
}

// Dates returns the parsed range. Call after Validate.
func (r *AvailabilityRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type CreateLeaveRequest struct {
	AvailabilityRequest
	Reason string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	if err := r.AvailabilityRequest.Validate(); err != nil {
		return err
	}
	if len(r.Reason) > 1000 {
		var errs validator.ValidationErrors
		errs.Add("reason", "reason must not exceed 1000 characters")
		return errs.Err()
	}
	return nil
}

type RespondLeaveRequest struct {
	Status string `json:"status"`
}

func (r *RespondLeaveRequest) Validate() error {
	switch RequestStatus(r.Status) {
	case StatusApproved, StatusDenied:
		return nil
	}
	return ErrInvalidStatus
}

type RequestFilter struct {
	UserID *string
	Status *RequestStatus
}

type InitializeRequest struct {
	UserID   string  `json:"user_id"`
	HireDate *string `json:"hire_date,omitempty"`

	hireDate *time.Time
}

func (r *InitializeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	r.hireDate = validator.OptionalDate(&errs, "hire_date", r.HireDate)
	return errs.Err()
}

func (r *InitializeRequest) ParsedHireDate() *time.Time {
	return r.hireDate
}

// AdjustRequest drives manual deduct and restore. Year defaults to the
// current year.
type AdjustRequest struct {
	UserID    string `json:"user_id"`
	LeaveType string `json:"leave_type"`
	Days      int    `json:"days"`
	Year      *int   `json:"year,omitempty"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	}
	if r.Days <= 0 {
		errs.Add("days", "days must be positive")
	}
	if r.Year != nil && !validator.IsValidYear(*r.Year) {
		errs.Add("year", "invalid year")
	}
	return errs.Err()
}

type CarryForwardRequest struct {
	UserID  string `json:"user_id"`
	MaxDays *int   `json:"max_days,omitempty"`
}

func (r *CarryForwardRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if r.MaxDays != nil && *r.MaxDays < 0 {
		errs.Add("max_days", "max_days must not be negative")
	}
	return errs.Err()
}
