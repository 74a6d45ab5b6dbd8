package wfh

import "time"

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

type Request struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	WorkDate        time.Time  `json:"work_date"`
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

type Action string

const (
	ActionStart Action = "start"
	ActionEnd   Action = "end"
)

// Log is one work-from-home session under an approved request.
type Log struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	RequestID  string     `json:"wfh_request_id"`
	WorkDate   time.Time  `json:"work_date"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	TotalHours *float64   `json:"total_hours,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// AppendNote joins a closing note onto the notes written at start.
func AppendNote(existing *string, note *string) *string {
	if note == nil || *note == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return note
	}
	joined := *existing + " | " + *note
	return &joined
}

type LogResult struct {
	Action     Action     `json:"action"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	TotalHours *float64   `json:"total_hours,omitempty"`
}

type StatusCounts struct {
	Approved int `json:"approved"`
	Denied   int `json:"denied"`
	Pending  int `json:"pending"`
}

type Summary struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	StatusCounts
	TotalWFHHours float64 `json:"total_wfh_hours"`
}
