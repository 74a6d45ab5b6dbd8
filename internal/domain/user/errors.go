package user

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrUserNotFound          = apperror.New(apperror.KindNotFound, "user not found")
	ErrUserEmailExists       = apperror.New(apperror.KindConflict, "email already registered")
	ErrRoleNotFound          = apperror.New(apperror.KindValidation, "role not found")
	ErrDepartmentNotFound    = apperror.New(apperror.KindNotFound, "department not found")
	ErrInvalidPassword       = apperror.New(apperror.KindValidation, "current password is incorrect")
	ErrManagerAccessRequired = apperror.New(apperror.KindForbidden, "manager access required")
	ErrAdminAccessRequired   = apperror.New(apperror.KindForbidden, "admin access required")
	ErrCannotDeleteSelf      = apperror.New(apperror.KindValidation, "you cannot delete your own account")
)
