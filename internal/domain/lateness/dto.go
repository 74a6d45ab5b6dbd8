package lateness

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"

type ExcuseRequest struct {
	Reason string `json:"reason"`
}

func (r *ExcuseRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	return errs.Err()
}

// ListQuery narrows a user's late arrivals to a month or a year. Month without
// Year is ignored.
type ListQuery struct {
	Month *int
	Year  *int
}

func (q ListQuery) Validate() error {
	var errs validator.ValidationErrors
	if q.Month != nil && !validator.IsValidMonth(*q.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if q.Year != nil && !validator.IsValidYear(*q.Year) {
		errs.Add("year", "invalid year")
	}
	return errs.Err()
}

type DepartmentQuery struct {
	DepartmentID string
	Month        int
	Year         int
}

func (q DepartmentQuery) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(q.DepartmentID) {
		errs.Add("department_id", "department_id is required")
	}
	if !validator.IsValidMonth(q.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(q.Year) {
		errs.Add("year", "invalid year")
	}
	return errs.Err()
}
