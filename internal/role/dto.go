package role

import (
	"github.com/frahmantamala/access-management/internal/core/common/validation"
)

// CreateRoleDTO is the transport shape for creating an organization role.
type CreateRoleDTO struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleDTO is the transport shape for updating a role's description and
// permission list. Name changes are not supported.
type UpdateRoleDTO struct {
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

func (d CreateRoleDTO) Validate() error {
	if err := validation.ValidateRoleName(d.Name); err != nil {
		return err
	}
	if err := validation.ValidateRolePermissions(d.Permissions); err != nil {
		return err
	}
	return nil
}

func (d UpdateRoleDTO) Validate() error {
	if err := validation.ValidateRolePermissions(d.Permissions); err != nil {
		return err
	}
	return nil
}
