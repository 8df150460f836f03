package rbac

import (
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

// UserPermissions is the resolved, transient access record for one user in an
// optional organization context. It is recomputed on demand and never stored;
// both request authorization and UI gating consume the same value through the
// same predicates so the two can never disagree.
type UserPermissions struct {
	PlatformRole     string   `json:"platformRole"`
	OrganizationRole string   `json:"organizationRole,omitempty"`
	OrganizationID   string   `json:"organizationId,omitempty"`
	Permissions      []string `json:"permissions"`
}

// PermissionName builds the catalog name for a resource/action pair.
func PermissionName(resource, action string) string {
	return resource + ":" + action
}

func (up *UserPermissions) IsSuperAdmin() bool {
	return up.PlatformRole == userDatamodel.PlatformRoleSuperAdmin
}

// HasPermission reports whether the resolved set grants the named permission.
// A superadmin holds every permission without consulting the set.
func (up *UserPermissions) HasPermission(permission string) bool {
	if up.IsSuperAdmin() {
		return true
	}
	for _, p := range up.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (up *UserPermissions) HasAnyPermission(permissions []string) bool {
	for _, p := range permissions {
		if up.HasPermission(p) {
			return true
		}
	}
	return false
}

func (up *UserPermissions) HasAllPermissions(permissions []string) bool {
	for _, p := range permissions {
		if !up.HasPermission(p) {
			return false
		}
	}
	return true
}

// CanAccessOrganization reports whether the record was resolved for the given
// organization. Superadmins can access any organization.
func (up *UserPermissions) CanAccessOrganization(organizationID string) bool {
	if up.IsSuperAdmin() {
		return true
	}
	return up.OrganizationID == organizationID
}

// CanAccessResource checks the resource:action permission and, when
// organizationID is non-empty, additionally requires the record to belong to
// that organization. Unlike CanAccessOrganization, a matching permission from
// a different organization's resolution is not enough: both checks must pass
// for non-superadmins.
func (up *UserPermissions) CanAccessResource(resource, action, organizationID string) bool {
	if up.IsSuperAdmin() {
		return true
	}

	if !up.HasPermission(PermissionName(resource, action)) {
		return false
	}

	if organizationID != "" && up.OrganizationID != organizationID {
		return false
	}

	return true
}
