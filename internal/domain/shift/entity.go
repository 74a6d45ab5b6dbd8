package shift

import "time"

// Shift is a named working window. Times are "HH:MM" wall-clock values.
type Shift struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	BreakMinutes int       `json:"break_minutes"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Assignment binds a user to a shift over [EffectiveDate, EndDate]. A nil
// EndDate is open-ended.
type Assignment struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	ShiftID       string     `json:"shift_id"`
	EffectiveDate time.Time  `json:"effective_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	Shift *Shift `json:"shift,omitempty"`
}

// Covers reports whether day falls inside the assignment interval.
func (a Assignment) Covers(day time.Time) bool {
	if day.Before(a.EffectiveDate) {
		return false
	}
	return a.EndDate == nil || !day.After(*a.EndDate)
}

type ScheduleEntry struct {
	UserID        string     `json:"user_id"`
	EmployeeName  string     `json:"employee_name"`
	ShiftID       string     `json:"shift_id"`
	ShiftName     string     `json:"shift_name"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	EffectiveDate time.Time  `json:"effective_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

type SwapStatus string

const (
	SwapPending                SwapStatus = "pending"
	SwapPendingManagerApproval SwapStatus = "pending_manager_approval"
	SwapApproved               SwapStatus = "approved"
	SwapRejectedByEmployee     SwapStatus = "rejected_by_employee"
	SwapRejectedByManager      SwapStatus = "rejected_by_manager"
)

func (s SwapStatus) Terminal() bool {
	return s == SwapApproved || s == SwapRejectedByEmployee || s == SwapRejectedByManager
}

type SwapRequest struct {
	ID           string     `json:"id"`
	RequesterID  string     `json:"requester_id"`
	TargetUserID string     `json:"target_user_id"`
	SwapDate     time.Time  `json:"swap_date"`
	Reason       string     `json:"reason"`
	Status       SwapStatus `json:"status"`
	ApprovedBy   *string    `json:"approved_by,omitempty"`
	RequestDate  time.Time  `json:"request_date"`
	ResponseDate *time.Time `json:"response_date,omitempty"`
}

// Responder is whoever answers a swap request.
type Responder struct {
	UserID     string
	CanApprove bool
}

// NextStatus applies one response to the swap state machine. targetAccepted
// is the target employee's answer, managerApproved the manager's; either may
// be absent.
func (s SwapRequest) NextStatus(responder Responder, targetAccepted, managerApproved *bool) (SwapStatus, error) {
	if s.Status.Terminal() {
		return "", ErrSwapAlreadyResolved
	}
	if targetAccepted == nil && managerApproved == nil {
		return "", ErrSwapResponseRequired
	}

	if targetAccepted != nil {
		if s.Status != SwapPending {
			return "", ErrSwapNotAwaitingTarget
		}
		if responder.UserID != s.TargetUserID && !responder.CanApprove {
			return "", ErrNotSwapTarget
		}
		if !*targetAccepted {
			return SwapRejectedByEmployee, nil
		}
		if managerApproved == nil {
			return SwapPendingManagerApproval, nil
		}
	}

	if !responder.CanApprove {
		return "", ErrManagerDecisionRequired
	}
	if *managerApproved {
		return SwapApproved, nil
	}
	return SwapRejectedByManager, nil
}
