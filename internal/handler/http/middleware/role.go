package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

// Authorizer decides whether a role holds a permission.
type Authorizer interface {
	Authorize(role user.Role, permission user.Permission) (bool, error)
}

// RequirePermission checks the caller's role against permission. Must run
// after AuthRequired.
func RequirePermission(authorizer Authorizer, permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			allowed, err := authorizer.Authorize(claims.Role, permission)
			if err != nil {
				slog.Error("Permission check failed", "role", claims.Role, "permission", permission, "error", err)
				response.InternalServerError(w, "Failed to check permissions")
				return
			}
			if !allowed {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, claims.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Can reports whether the caller holds permission. Errors count as denial.
func Can(r *http.Request, authorizer Authorizer, permission user.Permission) bool {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		return false
	}
	allowed, err := authorizer.Authorize(claims.Role, permission)
	if err != nil {
		slog.Error("Permission check failed", "role", claims.Role, "permission", permission, "error", err)
		return false
	}
	return allowed
}
