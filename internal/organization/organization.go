package organization

import (
	"time"

	orgDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/organization"
)

type Organization struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Description        *string   `json:"description,omitempty"`
	Logo               *string   `json:"logo,omitempty"`
	Plan               string    `json:"plan"`
	SubscriptionStatus string    `json:"subscription_status"`
	MaxUsers           int       `json:"max_users"`
	MaxStorage         int       `json:"max_storage"`
	OwnerID            string    `json:"owner_id"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

// Member is a membership row enriched with the user and role it references,
// the shape the members listing renders.
type Member struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	RoleID   string    `json:"role_id"`
	RoleName string    `json:"role_name"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

func FromDataModel(o *orgDatamodel.Organization) *Organization {
	return &Organization{
		ID:                 o.ID,
		Name:               o.Name,
		Slug:               o.Slug,
		Description:        o.Description,
		Logo:               o.Logo,
		Plan:               o.Plan,
		SubscriptionStatus: o.SubscriptionStatus,
		MaxUsers:           o.MaxUsers,
		MaxStorage:         o.MaxStorage,
		OwnerID:            o.OwnerID,
		IsActive:           o.IsActive,
		CreatedAt:          o.CreatedAt,
	}
}
