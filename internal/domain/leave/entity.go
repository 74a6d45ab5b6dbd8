package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// LeaveType is a configured category of leave. DefaultDays < 0 is unlimited
// and never has a balance row.
type LeaveType struct {
	Name        string `json:"name"`
	DefaultDays int    `json:"default_days"`
	Description string `json:"description"`
}

func (t LeaveType) Unlimited() bool {
	return t.DefaultDays < 0
}

// Balance is one (user, leave type, year) allotment.
type Balance struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	LeaveType      string    `json:"leave_type"`
	Year           int       `json:"year"`
	TotalDays      int       `json:"total_days"`
	UsedDays       int       `json:"used_days"`
	RemainingDays  int       `json:"remaining_days"`
	CarriedForward int       `json:"carried_forward"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BalanceView is a balance with the days held by pending requests.
type BalanceView struct {
	Balance
	LeaveTypeName string `json:"leave_type_name"`
	PendingDays   int    `json:"pending_days"`
	AvailableDays int    `json:"available_days"`
}

type Availability struct {
	CanTake       bool   `json:"can_take"`
	Reason        string `json:"reason,omitempty"`
	AvailableDays *int   `json:"available_days,omitempty"`
	RequestedDays int    `json:"requested_days"`
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusDenied    RequestStatus = "denied"
	StatusCancelled RequestStatus = "cancelled"
)

type Request struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	LeaveType    string        `json:"leave_type"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	ManagerID    *string       `json:"manager_id,omitempty"`
	RequestDate  time.Time     `json:"request_date"`
	ResponseDate *time.Time    `json:"response_date,omitempty"`

	EmployeeName *string `json:"employee_name,omitempty"`
}

// Days is the inclusive length of the request in calendar days.
func (r Request) Days() int {
	return calendar.InclusiveDays(r.StartDate, r.EndDate)
}

type CarryForwardResult struct {
	UserID         string `json:"user_id"`
	Year           int    `json:"year"`
	CarriedForward int    `json:"carried_forward"`
	TotalDays      int    `json:"total_days"`
}
