package timesheet

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateRequest struct {
	WeekStartDate string `json:"week_start_date"`

	weekStart time.Time
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	r.weekStart = validator.RequiredDate(&errs, "week_start_date", r.WeekStartDate)
	return errs.Err()
}

func (r *CreateRequest) WeekStart() time.Time {
	return r.weekStart
}

type ReviewRequest struct {
	Approved *bool   `json:"approved"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Approved == nil {
		errs.Add("approved", "approved is required")
	}
	return errs.Err()
}

type Filter struct {
	Status *Status
}

func (f Filter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
