package auth

import "context"

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (AuthResponse, error)
	Signin(ctx context.Context, req SigninRequest) (AuthResponse, error)
	// ForgotPassword never reveals whether the email exists.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
