package user

import "context"

type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (UserResponse, error)
	UpdateRole(ctx context.Context, actorID, id string, req UpdateUserRoleRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	Roles(ctx context.Context) ([]RoleInfo, error)
	Departments(ctx context.Context) ([]Department, error)

	GetProfile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
}
