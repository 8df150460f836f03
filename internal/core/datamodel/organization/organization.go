package organization

import "time"

const (
	MemberStatusActive    = "active"
	MemberStatusPending   = "pending"
	MemberStatusSuspended = "suspended"
)

type Organization struct {
	ID                 string    `gorm:"primaryKey"`
	Name               string    `gorm:"column:name;not null"`
	Slug               string    `gorm:"column:slug;uniqueIndex;not null"`
	Description        *string   `gorm:"column:description"`
	Logo               *string   `gorm:"column:logo"`
	Website            *string   `gorm:"column:website"`
	Plan               string    `gorm:"column:plan;default:'free';not null"`
	SubscriptionStatus string    `gorm:"column:subscription_status;default:'active';not null"`
	MaxUsers           int       `gorm:"column:max_users;default:5"`
	MaxStorage         int       `gorm:"column:max_storage;default:1000"`
	OwnerID            string    `gorm:"column:owner_id;not null"`
	IsActive           bool      `gorm:"column:is_active;default:true;not null"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time `gorm:"column:updated_at;default:now()"`
}

func (Organization) TableName() string {
	return "organizations"
}

// OrganizationMember binds one user to one organization with exactly one role.
// Permissions holds the per-membership override grants as a serialized JSON
// object whose keys are permission names; it is decoded to a string set at the
// repository boundary.
type OrganizationMember struct {
	ID             string     `gorm:"primaryKey"`
	OrganizationID string     `gorm:"column:organization_id;not null;uniqueIndex:idx_org_user"`
	UserID         string     `gorm:"column:user_id;not null;uniqueIndex:idx_org_user"`
	RoleID         string     `gorm:"column:role_id;not null"`
	Status         string     `gorm:"column:status;default:'active';not null"`
	JoinedAt       time.Time  `gorm:"column:joined_at;default:now()"`
	InvitedAt      *time.Time `gorm:"column:invited_at"`
	InvitedBy      *string    `gorm:"column:invited_by"`
	Permissions    string     `gorm:"column:permissions;type:jsonb;default:'{}'"`
}

func (OrganizationMember) TableName() string {
	return "organization_members"
}
