package timesheet

import "time"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Timesheet struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	WeekStartDate time.Time  `json:"week_start_date"`
	WeekEndDate   time.Time  `json:"week_end_date"`
	TotalHours    float64    `json:"total_hours"`
	Status        Status     `json:"status"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ManagerNotes  *string    `json:"manager_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	EmployeeName   *string `json:"employee_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
}

// DailyRecord is one attendance row inside the timesheet week.
type DailyRecord struct {
	Date       time.Time  `json:"date"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	TotalHours *float64   `json:"total_hours,omitempty"`
}

type Details struct {
	Timesheet
	DailyRecords []DailyRecord `json:"daily_records"`
}

// SumHours totals the closed records. Open records count as zero.
func SumHours(records []DailyRecord) float64 {
	var total float64
	for _, r := range records {
		if r.TotalHours != nil {
			total += *r.TotalHours
		}
	}
	return total
}

type AutoCreateResult struct {
	Created   int       `json:"created"`
	WeekStart time.Time `json:"week_start"`
}

// Viewer is the caller of a read that is scoped to the owner unless the caller
// can see every timesheet.
type Viewer struct {
	UserID     string
	CanViewAll bool
}
