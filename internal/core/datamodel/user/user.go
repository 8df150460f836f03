package user

import "time"

// Platform roles carried on the user row, independent of any organization.
const (
	PlatformRoleUser       = "user"
	PlatformRoleAdmin      = "admin"
	PlatformRoleSuperAdmin = "superadmin"
)

type User struct {
	ID                    string     `gorm:"primaryKey"`
	Name                  string     `gorm:"column:name;not null"`
	Email                 string     `gorm:"column:email;uniqueIndex;not null"`
	EmailVerified         bool       `gorm:"column:email_verified;default:false"`
	PasswordHash          string     `gorm:"column:password_hash;not null"`
	Role                  string     `gorm:"column:role;default:'user';not null"`
	Banned                bool       `gorm:"column:banned;default:false"`
	BanReason             *string    `gorm:"column:ban_reason"`
	BanExpires            *time.Time `gorm:"column:ban_expires"`
	CurrentOrganizationID *string    `gorm:"column:current_organization_id"`
	CreatedAt             time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
