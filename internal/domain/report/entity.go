package report

import "time"

type Kind string

const (
	KindMonthly    Kind = "monthly"
	KindDepartment Kind = "department"
)

// MonthStats aggregates one user's closed and open attendance rows for a month.
type MonthStats struct {
	DaysPresent     int
	TotalHours      float64
	OvertimeHours   float64
	AverageHours    float64
	EarliestArrival *string
	LatestDeparture *string
}

type Monthly struct {
	UserID             string    `json:"user_id"`
	Month              int       `json:"month"`
	Year               int       `json:"year"`
	WorkingDaysInMonth int       `json:"working_days_in_month"`
	DaysPresent        int       `json:"days_present"`
	DaysAbsent         int       `json:"days_absent"`
	LeaveDays          int       `json:"leave_days"`
	TotalHoursWorked   float64   `json:"total_hours_worked"`
	OvertimeHours      float64   `json:"overtime_hours"`
	AverageHoursPerDay float64   `json:"average_hours_per_day"`
	LateArrivals       int       `json:"late_arrivals"`
	EarliestArrival    *string   `json:"earliest_arrival"`
	LatestDeparture    *string   `json:"latest_departure"`
	GeneratedAt        time.Time `json:"generated_at"`
}

type DepartmentSummary struct {
	EmployeesTracked  int     `json:"employees_tracked"`
	TotalRecords      int     `json:"total_records"`
	TotalHours        float64 `json:"total_hours"`
	AvgHoursPerRecord float64 `json:"avg_hours_per_record"`
}

type EmployeeRow struct {
	UserID      string  `json:"user_id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	DaysPresent int     `json:"days_present"`
	TotalHours  float64 `json:"total_hours"`
}

type Department struct {
	DepartmentID      string            `json:"department_id"`
	DepartmentName    string            `json:"department_name"`
	Month             int               `json:"month"`
	Year              int               `json:"year"`
	Summary           DepartmentSummary `json:"summary"`
	EmployeeBreakdown []EmployeeRow     `json:"employee_breakdown"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

type TrendPoint struct {
	Month        string  `json:"month"`
	DaysPresent  int     `json:"days_present"`
	TotalHours   float64 `json:"total_hours"`
	LateArrivals int     `json:"late_arrivals"`
}

// DayCounts are the attendance-side counts for one company day.
type DayCounts struct {
	TotalEmployees  int
	PresentInOffice int
	WorkingFromHome int
}

type CompanySummary struct {
	Date            string `json:"date"`
	TotalEmployees  int    `json:"total_employees"`
	PresentInOffice int    `json:"present_in_office"`
	OnLeave         int    `json:"on_leave"`
	WorkingFromHome int    `json:"working_from_home"`
	// Absent is not clamped: a user both present and on leave is counted twice.
	Absent int `json:"absent"`
}

// File is a rendered export ready to be served as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

