package permission

import (
	"time"

	rbacDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/rbac"
)

// Permission is a catalog entry. Name is always Resource + ":" + Action.
type Permission struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description,omitempty"`
	Category           string    `json:"category"`
	Resource           string    `json:"resource"`
	Action             string    `json:"action"`
	IsSystemPermission bool      `json:"is_system_permission"`
	CreatedAt          time.Time `json:"created_at"`
}

// CategoryGroup is the catalog presentation shape: permissions bucketed by
// their category, categories ordered by name.
type CategoryGroup struct {
	Category    string        `json:"category"`
	Permissions []*Permission `json:"permissions"`
}

func FromDataModel(p *rbacDatamodel.Permission) *Permission {
	return &Permission{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Category:           p.Category,
		Resource:           p.Resource,
		Action:             p.Action,
		IsSystemPermission: p.IsSystemPermission,
		CreatedAt:          p.CreatedAt,
	}
}
