package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// LeaveInitializer seeds a new hire's leave balances.
type LeaveInitializer interface {
	Initialize(ctx context.Context, userID string, hireDate *time.Time) ([]leave.Balance, error)
}

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	leaves      LeaveInitializer
	mailer      email.EmailService
	tx          database.Transactor
	clock       calendar.Clock
	frontendURL string
}

func NewAuthService(
	users user.UserRepository,
	jwtService jwt.Service,
	leaves LeaveInitializer,
	mailer email.EmailService,
	tx database.Transactor,
	clock calendar.Clock,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: users,
		Service:        jwtService,
		leaves:         leaves,
		mailer:         mailer,
		tx:             tx,
		clock:          clock,
		frontendURL:    frontendURL,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) respond(u user.User) (auth.AuthResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AuthResponse{AccessToken: token, ExpiresAt: expiresAt, User: user.ToResponse(u)}, nil
}

// Signup implements auth.AuthService.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	role, err := a.UserRepository.GetRoleByName(ctx, user.Role(req.Role))
	if err != nil {
		return auth.AuthResponse{}, err
	}
	if req.DepartmentID != nil {
		if _, err := a.UserRepository.GetDepartment(ctx, *req.DepartmentID); err != nil {
			return auth.AuthResponse{}, err
		}
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	hireDate := req.ParsedHireDate()
	var created user.User
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err = a.UserRepository.Create(ctx, user.User{
			ID:           utils.NewID(),
			Email:        req.Email,
			PasswordHash: hashed,
			FullName:     req.FullName,
			RoleID:       role.ID,
			Role:         role.Name,
			DepartmentID: req.DepartmentID,
			HireDate:     hireDate,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		if hireDate != nil {
			if _, err := a.leaves.Initialize(ctx, created.ID, hireDate); err != nil {
				return fmt.Errorf("failed to initialize leave balances: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return auth.AuthResponse{}, err
	}

	slog.Info("User signed up", "user_id", created.ID, "role", created.Role)
	return a.respond(created)
}

// Signin implements auth.AuthService.
func (a *AuthServiceImpl) Signin(ctx context.Context, req auth.SigninRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	u, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.AuthResponse{}, auth.ErrAccountInactive
	}

	return a.respond(u)
}

// ForgotPassword implements auth.AuthService.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expires := a.clock.Now().Add(resetTokenTTL)
	if err := a.UserRepository.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := a.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := a.mailer.SendPasswordReset(u.Email, link, expires.Format(time.RFC1123)); err != nil {
		slog.Error("Failed to send password reset email", "user_id", u.ID, "error", err)
	}
	return nil
}

// newResetToken returns 20 random bytes, hex encoded.
func newResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.UserRepository.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidResetToken
		}
		return err
	}
	if !u.ResetTokenValid(req.Token, a.clock.Now()) {
		return auth.ErrInvalidResetToken
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	slog.Info("Password reset", "user_id", u.ID)
	return nil
}
