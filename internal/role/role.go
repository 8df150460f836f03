package role

import (
	"encoding/json"
	"time"

	rbacDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/rbac"
)

type Role struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	OrganizationID *string   `json:"organization_id,omitempty"`
	IsSystemRole   bool      `json:"is_system_role"`
	Permissions    []string  `json:"permissions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromDataModel(r *rbacDatamodel.Role) (*Role, error) {
	permissions := []string{}
	if r.Permissions != "" {
		if err := json.Unmarshal([]byte(r.Permissions), &permissions); err != nil {
			return nil, err
		}
	}

	return &Role{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		OrganizationID: r.OrganizationID,
		IsSystemRole:   r.IsSystemRole,
		Permissions:    permissions,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func ToDataModel(r *Role) (*rbacDatamodel.Role, error) {
	permissions := r.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	encoded, err := json.Marshal(permissions)
	if err != nil {
		return nil, err
	}

	return &rbacDatamodel.Role{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		OrganizationID: r.OrganizationID,
		IsSystemRole:   r.IsSystemRole,
		Permissions:    string(encoded),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}
