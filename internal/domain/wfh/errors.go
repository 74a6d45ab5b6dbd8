package wfh

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrDuplicateRequest   = apperror.New(apperror.KindDuplicateOperation, "WFH request already exists for this date")
	ErrRequestNotFound    = apperror.New(apperror.KindNotFound, "WFH request not found")
	ErrRequestResolved    = apperror.New(apperror.KindInvalidState, "WFH request has already been resolved")
	ErrCannotCancel       = apperror.New(apperror.KindInvalidState, "can only cancel pending requests")
	ErrNoApprovedWFH      = apperror.New(apperror.KindNotFound, "no approved WFH for today")
	ErrNoActiveSession    = apperror.New(apperror.KindNotFound, "no active WFH session found")
	ErrSessionAlreadyOpen = apperror.New(apperror.KindDuplicateOperation, "a WFH session is already active today")
	ErrInvalidStatus      = apperror.New(apperror.KindInvalidStatus, "status must be pending, approved or denied")
)
