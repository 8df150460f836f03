package rbac

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/access-management/internal"
	"github.com/frahmantamala/access-management/internal/core/events"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

// User is the identity slice the resolver needs: platform role and the
// current-organization pointer. Loaded as a whole row so a concurrent update
// can never be observed half-written.
type User struct {
	ID                    string
	Email                 string
	PlatformRole          string
	CurrentOrganizationID *string
}

// Membership is an active membership row joined with its role, with both
// permission columns already decoded to string slices by the repository.
type Membership struct {
	OrganizationID    string
	RoleID            string
	RoleName          string
	RolePermissions   []string
	MemberPermissions []string
}

type Repository interface {
	// GetUserByID returns internal.ErrUserNotFound when no such user exists.
	GetUserByID(userID string) (*User, error)
	// GetActiveMembership returns (nil, nil) when the user has no active
	// membership in the organization; absence is not an error.
	GetActiveMembership(userID, organizationID string) (*Membership, error)
	// ListCatalogNames returns every permission name in the catalog.
	ListCatalogNames() ([]string, error)
	UpdateCurrentOrganization(userID, organizationID string) error
}

type ServiceAPI interface {
	ResolvePermissions(userID, organizationID string) (*UserPermissions, error)
	SwitchOrganization(userID, organizationID string) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// ResolvePermissions computes the effective permission record for a user in
// an optional organization context. Missing membership degrades to an empty
// permission set; only an unknown user id is an error, so callers can map
// identity failure and authorization denial to different HTTP statuses.
func (s *Service) ResolvePermissions(userID, organizationID string) (*UserPermissions, error) {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	result := &UserPermissions{
		PlatformRole: u.PlatformRole,
		Permissions:  []string{},
	}
	if result.PlatformRole == "" {
		result.PlatformRole = userDatamodel.PlatformRoleUser
	}

	// Superadmin short-circuits organization scoping: the effective set is
	// the entire catalog.
	if result.PlatformRole == userDatamodel.PlatformRoleSuperAdmin {
		catalog, err := s.repo.ListCatalogNames()
		if err != nil {
			return nil, internal.NewInternalError("failed to load permission catalog", err)
		}
		result.Permissions = catalog
		return result, nil
	}

	if organizationID == "" {
		return result, nil
	}

	membership, err := s.repo.GetActiveMembership(userID, organizationID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load membership", err)
	}
	if membership == nil {
		// No access: not a fault, an empty permission set.
		return result, nil
	}

	result.OrganizationID = organizationID
	result.OrganizationRole = membership.RoleName
	result.Permissions = unionPermissions(membership.RolePermissions, membership.MemberPermissions)

	return result, nil
}

// SwitchOrganization moves the user's current-organization pointer.
// Superadmins may switch anywhere; everyone else needs an active membership.
// On success the switched event is published so consumers re-resolve; the
// coordinator itself returns no permissions.
func (s *Service) SwitchOrganization(userID, organizationID string) error {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return err
	}

	if u.PlatformRole != userDatamodel.PlatformRoleSuperAdmin {
		membership, err := s.repo.GetActiveMembership(userID, organizationID)
		if err != nil {
			return internal.NewInternalError("failed to load membership", err)
		}
		if membership == nil {
			s.logger.Warn("organization switch denied: no active membership",
				"user_id", userID,
				"organization_id", organizationID)
			return internal.ErrNotOrganizationMember
		}
	}

	if err := s.repo.UpdateCurrentOrganization(userID, organizationID); err != nil {
		return internal.NewInternalError("failed to update current organization", err)
	}

	s.logger.Info("organization switched",
		"user_id", userID,
		"organization_id", organizationID)

	if s.eventBus != nil {
		// Handlers run detached from the request, so the actor travels on
		// the context's plain user-id key.
		ctx := internal.ContextWithUserID(context.Background(), userID)
		event := events.NewOrganizationSwitchedEvent(userID, organizationID)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish organization switched event", "error", err)
		}
	}

	return nil
}

// unionPermissions merges the role's permission list with the membership
// override grants, deduplicated, role permissions first.
func unionPermissions(rolePermissions, memberPermissions []string) []string {
	seen := make(map[string]struct{}, len(rolePermissions)+len(memberPermissions))
	merged := make([]string, 0, len(rolePermissions)+len(memberPermissions))

	for _, lists := range [][]string{rolePermissions, memberPermissions} {
		for _, p := range lists {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			merged = append(merged, p)
		}
	}

	return merged
}
