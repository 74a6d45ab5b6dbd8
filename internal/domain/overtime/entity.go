package overtime

import (
	"math"
	"time"
)

// Tiers splits a day's hours: up to Standard is regular, the next TierHours
// are paid at the overtime rate and anything beyond is double time.
type Tiers struct {
	Standard  float64
	TierHours float64
}

type Classification struct {
	Regular    float64 `json:"regular"`
	Overtime   float64 `json:"overtime"`
	DoubleTime float64 `json:"double_time"`
}

func (t Tiers) Classify(totalHours float64) Classification {
	if totalHours <= t.Standard {
		return Classification{Regular: totalHours}
	}
	excess := totalHours - t.Standard
	return Classification{
		Regular:    t.Standard,
		Overtime:   math.Min(excess, t.TierHours),
		DoubleTime: math.Max(excess-t.TierHours, 0),
	}
}

// MonthTotals is the raw attendance aggregate for one user and month.
// Overtime is the linear excess over the standard day.
type MonthTotals struct {
	TotalOvertime    float64
	OvertimeDays     int
	TotalHoursWorked float64
}

type Summary struct {
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	TotalOvertimeHours   float64 `json:"total_overtime_hours"`
	OvertimeDays         int     `json:"overtime_days"`
	TotalHoursWorked     float64 `json:"total_hours_worked"`
	RegularHoursExpected float64 `json:"regular_hours_expected"`
}

type Pay struct {
	Summary
	HourlyRate  float64 `json:"hourly_rate"`
	RegularPay  float64 `json:"regular_pay"`
	OvertimePay float64 `json:"overtime_pay"`
	TotalPay    float64 `json:"total_pay"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// Request pre-authorizes extra hours. It is independent of attendance records.
type Request struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	WorkDate        time.Time  `json:"work_date"`
	RequestedHours  float64    `json:"requested_hours"`
	Reason          string     `json:"reason"`
	Status          Status     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ManagerResponse *string    `json:"manager_response,omitempty"`
	RequestDate     time.Time  `json:"request_date"`
	ResponseDate    *time.Time `json:"response_date,omitempty"`

	EmployeeName   *string `json:"employee_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
}
