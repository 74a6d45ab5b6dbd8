package attendance

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrAlreadyClockedIn = apperror.New(apperror.KindDuplicateOperation, "already clocked in today")
	ErrNoOpenRecord     = apperror.New(apperror.KindNotFound, "no clock-in record found for today or already clocked out")

	ErrAttendanceNotFound   = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrNotRecordOwner       = apperror.New(apperror.KindForbidden, "attendance record belongs to another user")
	ErrCorrectionNotFound   = apperror.New(apperror.KindNotFound, "correction request not found")
	ErrInvalidStatus        = apperror.New(apperror.KindInvalidStatus, "invalid status, expected approved or denied")
	ErrCorrectionResolved   = apperror.New(apperror.KindInvalidState, "correction request has already been resolved")
	ErrCorrectionPendingDup = apperror.New(apperror.KindDuplicateOperation, "a correction request for this record is already pending")
)
