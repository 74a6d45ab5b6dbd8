package user

import (
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Role           Role    `json:"role"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.HireDate != nil {
		d := u.HireDate.Format("2006-01-02")
		resp.HireDate = &d
	}
	return resp
}

type UserFilter struct {
	DepartmentID *string
	Role         *Role
	Active       *bool
}

// UpdateUserRequest is the admin edit of another account.
type UpdateUserRequest struct {
	Email        *string `json:"email,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil {
		if validator.IsEmpty(*r.Email) {
			errs.Add("email", "email must not be empty")
		} else if !validator.IsValidEmail(*r.Email) {
			errs.Add("email", "invalid email format")
		}
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("full_name", "full_name must not be empty")
	}
	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		errs.Add("department_id", "department_id must not be empty")
	}
	if r.Email == nil && r.FullName == nil && r.DepartmentID == nil && r.IsActive == nil {
		errs.Add("body", "at least one field is required")
	}

	return errs.Err()
}

// UpdateUserRoleRequest represents request to update user role
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

func (r *UpdateUserRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if !Role(strings.ToLower(r.Role)).Valid() {
		errs.Add("role", "invalid role")
	}

	return errs.Err()
}

type UpdateProfileRequest struct {
	Email           *string `json:"email,omitempty"`
	FullName        *string `json:"full_name,omitempty"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("full_name", "full_name must not be empty")
	}
	if r.NewPassword != nil {
		if len(*r.NewPassword) < 8 {
			errs.Add("new_password", "password must be at least 8 characters")
		}
		if r.CurrentPassword == nil || validator.IsEmpty(*r.CurrentPassword) {
			errs.Add("current_password", "current_password is required to change password")
		}
	}

	return errs.Err()
}
