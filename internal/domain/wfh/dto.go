package wfh

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`

	date time.Time
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	r.date = validator.RequiredDate(&errs, "date", r.Date)
	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}
	return errs.Err()
}

func (r *CreateRequest) WorkDate() time.Time {
	return r.date
}

type RespondRequest struct {
	Approved *bool   `json:"approved"`
	Response *string `json:"response,omitempty"`
}

func (r *RespondRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Approved == nil {
		errs.Add("approved", "approved is required")
	}
	return errs.Err()
}

type LogRequest struct {
	Action string  `json:"action"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *LogRequest) Validate() error {
	var errs validator.ValidationErrors
	switch Action(r.Action) {
	case ActionStart, ActionEnd:
	default:
		errs.Add("action", "action must be start or end")
	}
	return errs.Err()
}

type Filter struct {
	UserID       *string
	Status       *string
	DepartmentID *string
	FromDate     *string
	ToDate       *string

	from *time.Time
	to   *time.Time
}

func (f *Filter) Validate() error {
	if f.Status != nil && !Status(*f.Status).Valid() {
		return ErrInvalidStatus
	}
	var errs validator.ValidationErrors
	f.from = validator.OptionalDate(&errs, "from_date", f.FromDate)
	f.to = validator.OptionalDate(&errs, "to_date", f.ToDate)
	return errs.Err()
}

// Query is a validated Filter.
type Query struct {
	UserID       *string
	Status       *Status
	DepartmentID *string
	From         *time.Time
	To           *time.Time
}

func (f *Filter) Query() Query {
	q := Query{UserID: f.UserID, DepartmentID: f.DepartmentID, From: f.from, To: f.to}
	if f.Status != nil {
		s := Status(*f.Status)
		q.Status = &s
	}
	return q
}
