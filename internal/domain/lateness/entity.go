package lateness

import "time"

type LateArrival struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AttendanceID *string   `json:"attendance_id,omitempty"`
	ArrivalTime  time.Time `json:"arrival_time"`
	ExpectedTime time.Time `json:"expected_time"`
	MinutesLate  int       `json:"minutes_late"`
	IsExcused    bool      `json:"is_excused"`
	ExcusedBy    *string   `json:"excused_by,omitempty"`
	ExcuseReason *string   `json:"excuse_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type WarningType string

const (
	WarningVerbal  WarningType = "verbal"
	WarningWritten WarningType = "written"
	WarningFinal   WarningType = "final"
)

type Warning struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	WarningType  WarningType `json:"warning_type"`
	LateCount    int         `json:"late_count"`
	WarningMonth time.Time   `json:"warning_month"`
	IssuedAt     time.Time   `json:"issued_at"`
}

// Thresholds are monthly late counts that trigger each warning tier.
type Thresholds struct {
	Verbal  int
	Written int
	Final   int
}

// Tier returns the highest warning tier reached by count.
func (t Thresholds) Tier(count int) (WarningType, bool) {
	switch {
	case count >= t.Final:
		return WarningFinal, true
	case count >= t.Written:
		return WarningWritten, true
	case count >= t.Verbal:
		return WarningVerbal, true
	}
	return "", false
}

// Next returns the next threshold above count, or nil once final is reached.
func (t Thresholds) Next(count int) *int {
	for _, n := range []int{t.Verbal, t.Written, t.Final} {
		if count < n {
			next := n
			return &next
		}
	}
	return nil
}

type CheckResult struct {
	IsLate       bool   `json:"is_late"`
	MinutesLate  int    `json:"minutes_late"`
	ExpectedTime string `json:"expected_time,omitempty"`
	ActualTime   string `json:"actual_time,omitempty"`
	Message      string `json:"message,omitempty"`
}

type MonthCount struct {
	Count            int `json:"count"`
	TotalMinutesLate int `json:"total_minutes_late"`
}

type YearCount struct {
	Count int `json:"count"`
}

type Summary struct {
	ThisMonth     MonthCount `json:"this_month"`
	ThisYear      YearCount  `json:"this_year"`
	Warnings      []Warning  `json:"warnings"`
	NextWarningAt *int       `json:"next_warning_at"`
}

type DepartmentStat struct {
	UserID           string `json:"user_id"`
	EmployeeName     string `json:"employee_name"`
	LateCount        int    `json:"late_count"`
	TotalMinutesLate int    `json:"total_minutes_late"`
}
