package leave

import (
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
)

var (
	ErrUnknownLeaveType     = apperror.New(apperror.KindValidation, "unknown leave type")
	ErrBalanceNotFound      = apperror.New(apperror.KindNotFound, "leave balance not found")
	ErrInsufficientBalance  = apperror.New(apperror.KindInsufficientBalance, "insufficient leave balance")
	ErrLeaveRequestNotFound = apperror.New(apperror.KindNotFound, "leave request not found")
	ErrInvalidStatus        = apperror.New(apperror.KindInvalidStatus, "invalid status, expected approved or denied")
	ErrRequestResolved      = apperror.New(apperror.KindInvalidState, "leave request has already been resolved")
	ErrCannotCancel         = apperror.New(apperror.KindInvalidState, "only pending or approved leave can be cancelled")
)

// InsufficientBalanceError reports how many days were available against how
// many were requested.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance. Available: %d, Requested: %d", e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// Details is rendered into the error envelope.
func (e *InsufficientBalanceError) Details() map[string]any {
	return map[string]any{"available_days": e.Available, "requested_days": e.Requested}
}
