package attendance

import (
	"time"
)

// Record is one working day for one user. An open record has no ClockOut.
type Record struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	WorkDate          time.Time  `json:"work_date"`
	ClockIn           time.Time  `json:"clock_in"`
	ClockOut          *time.Time `json:"clock_out,omitempty"`
	TotalHours        *float64   `json:"total_hours,omitempty"`
	ClockInLatitude   float64    `json:"clock_in_latitude"`
	ClockInLongitude  float64    `json:"clock_in_longitude"`
	ClockOutLatitude  *float64   `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64   `json:"clock_out_longitude,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	// joined
	EmployeeName *string `json:"employee_name,omitempty"`
}

func (r Record) IsOpen() bool {
	return r.ClockOut == nil
}

// Hours returns the worked hours between in and out at millisecond precision.
func Hours(in, out time.Time) float64 {
	return float64(out.Sub(in).Milliseconds()) / 3.6e6
}

type CorrectionStatus string

const (
	CorrectionPending  CorrectionStatus = "pending"
	CorrectionApproved CorrectionStatus = "approved"
	CorrectionDenied   CorrectionStatus = "denied"
)

type CorrectionRequest struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	AttendanceID    string           `json:"attendance_id"`
	RequestReason   string           `json:"request_reason"`
	Status          CorrectionStatus `json:"status"`
	ManagerID       *string          `json:"manager_id,omitempty"`
	ManagerResponse *string          `json:"manager_response,omitempty"`
	RequestDate     time.Time        `json:"request_date"`
	ResponseDate    *time.Time       `json:"response_date,omitempty"`

	EmployeeName *string `json:"employee_name,omitempty"`
}
