package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ClockRequest carries the device position for clock-in and clock-out.
type ClockRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	return errs.Err()
}

type ClockInResponse struct {
	ID          string               `json:"id"`
	ClockInTime time.Time            `json:"clock_in_time"`
	Late        lateness.CheckResult `json:"late"`
}

type ClockOutResponse struct {
	ID           string    `json:"id"`
	ClockOutTime time.Time `json:"clock_out_time"`
	TotalHours   float64   `json:"total_hours"`
}

// RecordFilter selects records by user and an inclusive work-date range.
type RecordFilter struct {
	UserID *string
	From   *string
	To     *string

	from *time.Time
	to   *time.Time
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors
	f.from = validator.OptionalDate(&errs, "from", f.From)
	f.to = validator.OptionalDate(&errs, "to", f.To)
	if f.from != nil && f.to != nil && f.to.Before(*f.from) {
		errs.Add("to", "to must not be before from")
	}
	return errs.Err()
}

// Range returns the parsed bounds. Call after Validate.
func (f *RecordFilter) Range() (*time.Time, *time.Time) {
	return f.from, f.to
}

// Query is the repository-level form of RecordFilter.
type Query struct {
	UserID *string
	From   *time.Time
	To     *time.Time
}

type CreateCorrectionRequest struct {
	AttendanceID  string `json:"attendance_id"`
	RequestReason string `json:"request_reason"`
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.AttendanceID) {
		errs.Add("attendance_id", "attendance_id is required")
	}
	if validator.IsEmpty(r.RequestReason) {
		errs.Add("request_reason", "request_reason is required")
	}
	return errs.Err()
}

type RespondCorrectionRequest struct {
	Status          string `json:"status"`
	ManagerResponse string `json:"manager_response"`
}

func (r *RespondCorrectionRequest) Validate() error {
	switch CorrectionStatus(r.Status) {
	case CorrectionApproved, CorrectionDenied:
		return nil
	}
	return ErrInvalidStatus
}
