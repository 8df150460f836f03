package rbac

import "time"

// Role is either organization-scoped (OrganizationID set) or a platform-wide
// system role (OrganizationID nil). Permissions holds the granted permission
// names as a serialized JSON list, decoded at the repository boundary.
type Role struct {
	ID             string    `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;not null;uniqueIndex:idx_role_name_org;index:idx_role_name_platform,unique,where:organization_id IS NULL"`
	Description    *string   `gorm:"column:description"`
	OrganizationID *string   `gorm:"column:organization_id;uniqueIndex:idx_role_name_org"`
	IsSystemRole   bool      `gorm:"column:is_system_role;default:false"`
	Permissions    string    `gorm:"column:permissions;type:jsonb;default:'[]';not null"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:now()"`
}

func (Role) TableName() string {
	return "roles"
}

// Permission is one row of the catalog, the universe of valid permission
// names. Name is always Resource + ":" + Action.
type Permission struct {
	ID                 string    `gorm:"primaryKey"`
	Name               string    `gorm:"column:name;uniqueIndex;not null"`
	Description        *string   `gorm:"column:description"`
	Category           string    `gorm:"column:category;not null"`
	Resource           string    `gorm:"column:resource;not null"`
	Action             string    `gorm:"column:action;not null"`
	IsSystemPermission bool      `gorm:"column:is_system_permission;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
}

func (Permission) TableName() string {
	return "permissions"
}
