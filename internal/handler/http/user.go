package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// PermissionLister lists the permissions a role holds.
type PermissionLister interface {
	Permissions(role user.Role) ([]string, error)
}

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Roles(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
	AuditLog(w http.ResponseWriter, r *http.Request)

	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	MyPermissions(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
	audit       *audit.Recorder
	permissions PermissionLister
}

func NewUserHandler(userService user.UserService, recorder *audit.Recorder, permissions PermissionLister) UserHandler {
	return &userHandlerImpl{
		userService: userService,
		audit:       recorder,
		permissions: permissions,
	}
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	filter := user.UserFilter{DepartmentID: queryString(r, "department_id")}
	if s := queryString(r, "role"); s != nil {
		role := user.Role(strings.ToLower(*s))
		if !role.Valid() {
			errs.Add("role", "invalid role")
		}
		filter.Role = &role
	}
	if s := queryString(r, "active"); s != nil {
		active, err := strconv.ParseBool(*s)
		if err != nil {
			errs.Add("active", "active must be true or false")
		}
		filter.Active = &active
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	users, err := h.userService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, users)
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, u)
}

// Update implements UserHandler.
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req user.UpdateUserRequest
	if !decodeJSON(w, r, "UpdateUser", &req) {
		return
	}

	u, err := h.userService.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User updated successfully", u)
}

// UpdateRole implements UserHandler.
func (h *userHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req user.UpdateUserRoleRequest
	if !decodeJSON(w, r, "UpdateUserRole", &req) {
		return
	}

	u, err := h.userService.UpdateRole(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User role updated successfully", u)
}

// Delete implements UserHandler.
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.userService.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

// Roles implements UserHandler.
func (h *userHandlerImpl) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.userService.Roles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, roles)
}

// Departments implements UserHandler.
func (h *userHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.userService.Departments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

// AuditLog implements UserHandler.
func (h *userHandlerImpl) AuditLog(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	limit := queryInt(&errs, r, "limit")
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.audit.Recent(r.Context(), deref(limit))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

// GetProfile implements UserHandler.
func (h *userHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	profile, err := h.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// UpdateProfile implements UserHandler.
func (h *userHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req user.UpdateProfileRequest
	if !decodeJSON(w, r, "UpdateProfile", &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}

// MyPermissions implements UserHandler.
func (h *userHandlerImpl) MyPermissions(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	perms, err := h.permissions.Permissions(claims.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"role": claims.Role, "permissions": perms})
}
