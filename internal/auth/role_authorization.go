package auth

import (
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/attendance-tracker/internal"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
)

// RoleAuthorization gates routes on the caller's role and active flag. It
// must run after AuthMiddleware.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

// HasRole reports whether the principal holds the required role.
func HasRole(p *errors.Principal, required coreuser.Role) bool {
	switch required {
	case coreuser.RoleAdmin:
		return p.Role == coreuser.RoleAdmin
	case coreuser.RoleEmployee:
		return p.Role == coreuser.RoleEmployee
	default:
		return false
	}
}

func (ra *RoleAuthorization) RequireRole(roles ...coreuser.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := errors.UserFromContext(r.Context())
			if !ok {
				ra.logger.Warn("authorization check failed: user not found in context")
				ra.deny(w, errors.ErrUnauthorized)
				return
			}

			for _, role := range roles {
				if HasRole(user, role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: role not allowed",
				"user_id", user.ID,
				"role", user.Role,
				"required_roles", roles)
			ra.deny(w, errors.ErrForbiddenRole)
		})
	}
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(coreuser.RoleAdmin)
}

func (ra *RoleAuthorization) RequireActiveUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := errors.UserFromContext(r.Context())
			if !ok {
				ra.deny(w, errors.ErrUnauthorized)
				return
			}
			if !user.IsActive {
				ra.logger.WarnContext(r.Context(), "access denied: user is inactive", "user_id", user.ID)
				ra.deny(w, errors.ErrUserInactive)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RoleAuthorization) deny(w http.ResponseWriter, appErr *errors.AppError) {
	transport.WriteErrorBody(w, appErr.StatusCode, appErr.Message)
}
