package timesheet

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrDuplicateTimesheet = apperror.New(apperror.KindDuplicateOperation, "timesheet already exists for this week")
	ErrTimesheetNotFound  = apperror.New(apperror.KindNotFound, "timesheet not found")
	ErrAlreadySubmitted   = apperror.New(apperror.KindInvalidState, "timesheet already submitted")
	ErrNotPending         = apperror.New(apperror.KindInvalidState, "can only recall pending timesheets")
	ErrNotAwaitingReview  = apperror.New(apperror.KindInvalidState, "only pending timesheets can be reviewed")
	ErrInvalidStatus      = apperror.New(apperror.KindInvalidStatus, "status must be draft, pending, approved or rejected")
)
