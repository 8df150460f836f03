package role

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/access-management/internal"
	"github.com/frahmantamala/access-management/internal/core/events"
	"github.com/google/uuid"
)

type Repository interface {
	ListForOrganization(organizationID string) ([]*Role, error)
	// GetByID returns internal.ErrRoleNotFound when missing.
	GetByID(roleID string) (*Role, error)
	// Create returns internal.ErrDuplicateRoleName on a (name, organization)
	// uniqueness violation.
	Create(role *Role) error
	Update(role *Role) error
	// CatalogNames returns every permission name in the catalog.
	CatalogNames() ([]string, error)
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

func (s *Service) ListForOrganization(organizationID string) ([]*Role, error) {
	roles, err := s.repo.ListForOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Create stores a new organization-scoped role. Permission names are
// validated against the live catalog so roles cannot accumulate dead,
// unmatchable grants.
func (s *Service) Create(organizationID string, dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.validatePermissions(dto.Permissions); err != nil {
		return nil, err
	}

	now := time.Now()
	role := &Role{
		ID:             uuid.NewString(),
		Name:           dto.Name,
		Description:    dto.Description,
		OrganizationID: &organizationID,
		IsSystemRole:   false,
		Permissions:    dto.Permissions,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(role); err != nil {
		return nil, err
	}

	s.logger.Info("role created",
		"role_id", role.ID,
		"organization_id", organizationID,
		"name", role.Name)

	s.publishRoleChanged(role.ID, organizationID)

	return role, nil
}

// Update replaces a role's description and permission list. System roles are
// immutable through this path.
func (s *Service) Update(organizationID, roleID string, dto UpdateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.repo.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if role.OrganizationID == nil || *role.OrganizationID != organizationID {
		return nil, internal.ErrRoleNotFound
	}
	if role.IsSystemRole {
		return nil, internal.NewForbiddenError("System roles cannot be modified", internal.ErrCodeInsufficientPerms)
	}

	if err := s.validatePermissions(dto.Permissions); err != nil {
		return nil, err
	}

	role.Description = dto.Description
	role.Permissions = dto.Permissions
	role.UpdatedAt = time.Now()

	if err := s.repo.Update(role); err != nil {
		return nil, err
	}

	s.logger.Info("role updated",
		"role_id", role.ID,
		"organization_id", organizationID)

	s.publishRoleChanged(role.ID, organizationID)

	return role, nil
}

func (s *Service) validatePermissions(names []string) error {
	catalog, err := s.repo.CatalogNames()
	if err != nil {
		return fmt.Errorf("failed to load permission catalog: %w", err)
	}

	known := make(map[string]struct{}, len(catalog))
	for _, name := range catalog {
		known[name] = struct{}{}
	}

	for _, name := range names {
		if _, ok := known[name]; !ok {
			return internal.NewValidationError(
				fmt.Sprintf("Permission %q is not in the catalog", name),
				internal.ErrCodeUnknownPermission,
			).WithDetails(map[string]string{"permission": name})
		}
	}
	return nil
}

func (s *Service) publishRoleChanged(roleID, organizationID string) {
	if s.eventBus == nil {
		return
	}
	event := events.NewRoleChangedEvent(roleID, organizationID)
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish role changed event", "error", err)
	}
}
