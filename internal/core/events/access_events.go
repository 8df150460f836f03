package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOrganizationSwitched = "organization.switched"
	EventTypeRoleChanged          = "role.changed"
)

// OrganizationSwitchedEvent signals that a user's current organization
// changed and any cached permission view for that user is stale. Consumers
// are expected to re-resolve permissions; the event carries no permission
// data itself.
type OrganizationSwitchedEvent struct {
	BaseEvent
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
}

func NewOrganizationSwitchedEvent(userID, organizationID string) *OrganizationSwitchedEvent {
	return &OrganizationSwitchedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrganizationSwitched,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":         userID,
				"organization_id": organizationID,
			},
		},
		UserID:         userID,
		OrganizationID: organizationID,
	}
}

// RoleChangedEvent is published when a role's permission list is created or
// updated, so in-flight resolutions settle on either the old or the new
// definition but listeners can refresh their views.
type RoleChangedEvent struct {
	BaseEvent
	RoleID         string `json:"role_id"`
	OrganizationID string `json:"organization_id"`
}

func NewRoleChangedEvent(roleID, organizationID string) *RoleChangedEvent {
	return &RoleChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRoleChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"role_id":         roleID,
				"organization_id": organizationID,
			},
		},
		RoleID:         roleID,
		OrganizationID: organizationID,
	}
}
