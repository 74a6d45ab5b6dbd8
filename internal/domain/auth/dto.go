package auth

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type SignupRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	FullName     string  `json:"full_name"`
	DepartmentID *string `json:"department_id,omitempty"`
	HireDate     *string `json:"hire_date,omitempty"`

	hireDate *time.Time
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	validateEmail(&errs, r.Email)
	validatePassword(&errs, "password", r.Password)

	if validator.IsEmpty(r.Role) {
		r.Role = string(user.RoleEmployee)
	}
	r.Role = strings.ToLower(r.Role)
	if !user.Role(r.Role).Valid() {
		errs.Add("role", "role must be one of admin, manager, employee")
	}

	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		r.DepartmentID = nil
	}
	r.hireDate = validator.OptionalDate(&errs, "hire_date", r.HireDate)

	return errs.Err()
}

// ParsedHireDate is valid after Validate.
func (r SignupRequest) ParsedHireDate() *time.Time {
	return r.hireDate
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SigninRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmail(&errs, r.Email)
	return errs.Err()
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs.Add("token", "token is required")
	}
	validatePassword(&errs, "new_password", r.NewPassword)

	return errs.Err()
}

type AuthResponse struct {
	AccessToken string            `json:"token"`
	ExpiresAt   int64             `json:"expires_at"`
	User        user.UserResponse `json:"user"`
}

func validateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "email must be a valid email address")
	}
}

func validatePassword(errs *validator.ValidationErrors, field, password string) {
	if validator.IsEmpty(password) {
		errs.Add(field, field+" is required")
	} else if len(password) < 8 {
		errs.Add(field, field+" must be at least 8 characters long")
	} else if len(password) > 72 {
		errs.Add(field, field+" must not exceed 72 characters")
	}
}
