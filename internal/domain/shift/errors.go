package shift

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrShiftNotFound           = apperror.New(apperror.KindNotFound, "shift not found")
	ErrOverlappingAssignment   = apperror.New(apperror.KindOverlappingAssignment, "overlapping shift assignment exists")
	ErrSwapNotFound            = apperror.New(apperror.KindNotFound, "shift swap request not found")
	ErrSwapAlreadyResolved     = apperror.New(apperror.KindInvalidState, "shift swap request has already been resolved")
	ErrSwapNotAwaitingTarget   = apperror.New(apperror.KindInvalidState, "shift swap request is not awaiting the employee's response")
	ErrSwapResponseRequired    = apperror.New(apperror.KindValidation, "target_accepted or manager_approved is required")
	ErrSwapWithSelf            = apperror.New(apperror.KindValidation, "cannot request a shift swap with yourself")
	ErrNotSwapTarget           = apperror.New(apperror.KindForbidden, "only the requested employee can accept or reject this swap")
	ErrManagerDecisionRequired = apperror.New(apperror.KindForbidden, "only a manager can approve or reject a shift swap")
)
