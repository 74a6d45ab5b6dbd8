package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	audit *audit.Recorder
}

func NewUserService(users user.UserRepository, recorder *audit.Recorder) user.UserService {
	return &UserServiceImpl{UserRepository: users, audit: recorder}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	return out, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, actorID, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.DepartmentID != nil {
		if _, err := s.UserRepository.GetDepartment(ctx, *req.DepartmentID); err != nil {
			return user.UserResponse{}, err
		}
	}
	if err := s.UserRepository.Update(ctx, id, req); err != nil {
		return user.UserResponse{}, err
	}

	s.audit.Record(ctx, actorID, "user.update", map[string]any{"target_user_id": id})
	return s.Get(ctx, id)
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, actorID, id string, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	role, err := s.UserRepository.GetRoleByName(ctx, user.Role(strings.ToLower(req.Role)))
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := s.UserRepository.UpdateRole(ctx, id, role.ID); err != nil {
		return user.UserResponse{}, err
	}

	s.audit.Record(ctx, actorID, "user.role_update", map[string]any{"target_user_id": id, "role": role.Name})
	return s.Get(ctx, id)
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return user.ErrCannotDeleteSelf
	}
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, "user.delete", map[string]any{"target_user_id": id})
	return nil
}

// Roles implements user.UserService.
func (s *UserServiceImpl) Roles(ctx context.Context) ([]user.RoleInfo, error) {
	return s.UserRepository.ListRoles(ctx)
}

// Departments implements user.UserService.
func (s *UserServiceImpl) Departments(ctx context.Context) ([]user.Department, error) {
	return s.UserRepository.ListDepartments(ctx)
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	return s.Get(ctx, userID)
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.NewPassword != nil {
		u, err := s.UserRepository.GetByID(ctx, userID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*req.CurrentPassword)); err != nil {
			return user.UserResponse{}, user.ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.UserRepository.UpdatePassword(ctx, userID, string(hash)); err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to update password: %w", err)
		}
	}

	if req.Email != nil || req.FullName != nil {
		if err := s.UserRepository.Update(ctx, userID, user.UpdateUserRequest{Email: req.Email, FullName: req.FullName}); err != nil {
			return user.UserResponse{}, err
		}
	}

	return s.Get(ctx, userID)
}
