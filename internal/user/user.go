package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

// Profile is the caller-facing view of a user row. The password hash and
// ban bookkeeping never leave the adapter.
type Profile struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	EmailVerified         bool      `json:"email_verified"`
	PlatformRole          string    `json:"platform_role"`
	CurrentOrganizationID *string   `json:"current_organization_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func FromDataModel(u *userDatamodel.User) *Profile {
	return &Profile{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		EmailVerified:         u.EmailVerified,
		PlatformRole:          u.Role,
		CurrentOrganizationID: u.CurrentOrganizationID,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
