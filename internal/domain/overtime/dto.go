package overtime

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// PeriodQuery defaults missing fields to the current month.
type PeriodQuery struct {
	Month *int
	Year  *int
}

func (q PeriodQuery) Validate() error {
	var errs validator.ValidationErrors
	if q.Month != nil && !validator.IsValidMonth(*q.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if q.Year != nil && !validator.IsValidYear(*q.Year) {
		errs.Add("year", "invalid year")
	}
	return errs.Err()
}

func (q PeriodQuery) Resolve(now time.Time) (time.Month, int) {
	month, year := now.Month(), now.Year()
	if q.Month != nil {
		month = time.Month(*q.Month)
	}
	if q.Year != nil {
		year = *q.Year
	}
	return month, year
}

type PayQuery struct {
	PeriodQuery
	HourlyRate float64
}

func (q PayQuery) Validate() error {
	if err := q.PeriodQuery.Validate(); err != nil {
		return err
	}
	if q.HourlyRate <= 0 {
		var errs validator.ValidationErrors
		errs.Add("hourly_rate", "hourly_rate must be positive")
		return errs.Err()
	}
	return nil
}

type CreateRequest struct {
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Reason string  `json:"reason"`

	date time.Time
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	r.date = validator.RequiredDate(&errs, "date", r.Date)
	if r.Hours <= 0 || r.Hours > 24 {
		errs.Add("hours", "hours must be greater than 0 and at most 24")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	return errs.Err()
}

func (r *CreateRequest) WorkDate() time.Time {
	return r.date
}

type RespondRequest struct {
	Approved *bool  `json:"approved"`
	Response string `json:"response"`
}

func (r *RespondRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Approved == nil {
		errs.Add("approved", "approved is required")
	}
	return errs.Err()
}

type RequestFilter struct {
	Status       *Status
	DepartmentID *string
	UserID       *string
}

func (f RequestFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
