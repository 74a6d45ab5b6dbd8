package overtime

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrOvertimeRequestNotFound = apperror.New(apperror.KindNotFound, "overtime request not found")
	ErrRequestResolved         = apperror.New(apperror.KindInvalidState, "overtime request has already been resolved")
	ErrInvalidStatus           = apperror.New(apperror.KindInvalidStatus, "status must be pending, approved or denied")
)
