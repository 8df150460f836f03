package rbac

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/auth"
	"github.com/go-chi/chi"
)

// Authorizer builds chi middleware on top of the resolver and the decision
// functions, so route enforcement and any rendering layer consult the exact
// same predicates over the exact same resolved record.
type Authorizer struct {
	service ServiceAPI
	logger  *slog.Logger
}

func NewAuthorizer(service ServiceAPI, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		service: service,
		logger:  logger,
	}
}

// resolveForUser resolves the caller's permissions. An empty organizationID
// falls back to the caller's current organization pointer.
func (a *Authorizer) resolveForUser(user *auth.User, organizationID string) (*UserPermissions, error) {
	if organizationID == "" && user.CurrentOrganizationID != nil {
		organizationID = *user.CurrentOrganizationID
	}
	return a.service.ResolvePermissions(user.ID, organizationID)
}

func (a *Authorizer) check(w http.ResponseWriter, r *http.Request, next http.Handler,
	organizationID string, allowed func(*UserPermissions) bool, requirement string) {

	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	permissions, err := a.resolveForUser(user, organizationID)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "authorization check failed",
			"error", err,
			"user_id", user.ID,
			"requirement", requirement)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !allowed(permissions) {
		a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
			"user_id", user.ID,
			"requirement", requirement,
			"organization_id", permissions.OrganizationID,
			"user_permissions", permissions.Permissions)
		http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	next.ServeHTTP(w, r)
}

// RequirePermission gates a route on a single permission name, resolved
// against the caller's current organization.
func (a *Authorizer) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.check(w, r, next, "", func(up *UserPermissions) bool {
				return up.HasPermission(permission)
			}, permission)
		})
	}
}

// RequireAnyPermission gates a route on any of the given permission names.
func (a *Authorizer) RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.check(w, r, next, "", func(up *UserPermissions) bool {
				return up.HasAnyPermission(permissions)
			}, "any-of")
		})
	}
}

// RequireOrganizationAccess gates an organization-scoped route (URL param
// "id") on membership in that organization, superadmin bypassing.
func (a *Authorizer) RequireOrganizationAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			organizationID := chi.URLParam(r, "id")
			if organizationID == "" {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			a.check(w, r, next, organizationID, func(up *UserPermissions) bool {
				return up.CanAccessOrganization(organizationID)
			}, "organization-access")
		})
	}
}

// RequireResourceAction gates an organization-scoped route (URL param "id")
// on the resource:action permission inside that organization. Both the
// permission and the organization match are mandatory for non-superadmins.
func (a *Authorizer) RequireResourceAction(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			organizationID := chi.URLParam(r, "id")
			a.check(w, r, next, organizationID, func(up *UserPermissions) bool {
				return up.CanAccessResource(resource, action, organizationID)
			}, PermissionName(resource, action))
		})
	}
}
