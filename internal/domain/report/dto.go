package report

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

// PeriodQuery defaults missing fields to the current month.
type PeriodQuery struct {
	Month *int
	Year  *int
}

func (q PeriodQuery) validate(errs *validator.ValidationErrors) {
	if q.Month != nil && !validator.IsValidMonth(*q.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if q.Year != nil && !validator.IsValidYear(*q.Year) {
		errs.Add("year", "invalid year")
	}
}

func (q PeriodQuery) Validate() error {
	var errs validator.ValidationErrors
	q.validate(&errs)
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

type TrendsQuery struct {
	Months *int
}

func (q TrendsQuery) Validate() error {
	var errs validator.ValidationErrors
	if q.Months != nil && (*q.Months < 1 || *q.Months > maxTrendMonths) {
		errs.Add("months", "months must be between 1 and 24")
	}
	return errs.Err()
}

func (q TrendsQuery) Count() int {
	if q.Months == nil {
		return defaultTrendMonths
	}
	return *q.Months
}

// ExportRequest selects a report and its file format. UserID is required for
// monthly exports and DepartmentID for department exports.
type ExportRequest struct {
	PeriodQuery
	Type         string
	Format       string
	UserID       string
	DepartmentID string

	format export.Format
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors
	r.PeriodQuery.validate(&errs)

	switch Kind(r.Type) {
	case KindMonthly:
		if validator.IsEmpty(r.UserID) {
			errs.Add("user_id", "user_id is required")
		}
	case KindDepartment:
		if validator.IsEmpty(r.DepartmentID) {
			errs.Add("department_id", "department_id is required")
		}
	default:
		errs.Add("type", "type must be monthly or department")
	}

	f, err := export.ParseFormat(r.Format)
	if err != nil {
		errs.Add("format", "format must be csv or xlsx")
	}
	r.format = f
	return errs.Err()
}

// ParsedFormat is valid after Validate.
func (r ExportRequest) ParsedFormat() export.Format {
	return r.format
}
