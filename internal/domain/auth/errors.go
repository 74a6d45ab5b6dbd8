package auth

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrInvalidToken       = apperror.New(apperror.KindUnauthorized, "invalid or missing token")
	ErrAccountInactive    = apperror.New(apperror.KindForbidden, "account is inactive")
	ErrInvalidResetToken  = apperror.New(apperror.KindValidation, "password reset token is invalid or has expired")
)
