package holiday

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	IsRecurring bool    `json:"is_recurring"`
	Description *string `json:"description,omitempty"`

	date time.Time
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	r.date = validator.RequiredDate(&errs, "date", r.Date)
	return errs.Err()
}

func (r *CreateRequest) ParsedDate() time.Time {
	return r.date
}

type RangeQuery struct {
	StartDate string
	EndDate   string

	start time.Time
	end   time.Time
}

func (q *RangeQuery) Validate() error {
	var errs validator.ValidationErrors
	q.start = validator.RequiredDate(&errs, "start_date", q.StartDate)
	q.end = validator.RequiredDate(&errs, "end_date", q.EndDate)
	if !q.start.IsZero() && !q.end.IsZero() && q.end.Before(q.start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	return errs.Err()
}

func (q *RangeQuery) Dates() (time.Time, time.Time) {
	return q.start, q.end
}
