package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, user administration
	RoleManager  Role = "manager"  // Approves requests, sees department data
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID                   string
	Email                string
	PasswordHash         string
	FullName             string
	RoleID               int
	Role                 Role
	DepartmentID         *string
	HireDate             *time.Time
	IsActive             bool
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Join
	DepartmentName *string
}

// RoleInfo is a row of the roles table.
type RoleInfo struct {
	ID   int  `json:"id"`
	Name Role `json:"role_name"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can approve requests
func (u *User) CanApprove() bool {
	return u.IsManager()
}

func (u *User) ResetTokenValid(token string, now time.Time) bool {
	if u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return false
	}
	return *u.ResetPasswordToken == token && now.Before(*u.ResetPasswordExpires)
}
