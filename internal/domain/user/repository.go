package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByResetToken(ctx context.Context, token string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
	ListActive(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) error
	UpdateRole(ctx context.Context, id string, roleID int) error
	// UpdatePassword also clears any pending reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)

	GetRoleByName(ctx context.Context, name Role) (RoleInfo, error)
	ListRoles(ctx context.Context) ([]RoleInfo, error)
	GetDepartment(ctx context.Context, id string) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}
