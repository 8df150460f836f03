package organization

import (
	"fmt"
	"log/slog"

	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

type Repository interface {
	// GetByID returns internal.ErrOrganizationNotFound when missing.
	GetByID(organizationID string) (*Organization, error)
	// ListActive returns every active organization, ordered by name.
	ListActive() ([]*Organization, error)
	// ListForMember returns the organizations the user holds a membership in.
	ListForMember(userID string) ([]*Organization, error)
	ListMembers(organizationID string) ([]*Member, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListVisible returns the organizations the caller may see: superadmins see
// every active organization, everyone else only the ones they belong to.
func (s *Service) ListVisible(userID, platformRole string) ([]*Organization, error) {
	if platformRole == userDatamodel.PlatformRoleSuperAdmin {
		orgs, err := s.repo.ListActive()
		if err != nil {
			return nil, fmt.Errorf("failed to list organizations: %w", err)
		}
		return orgs, nil
	}

	orgs, err := s.repo.ListForMember(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member organizations: %w", err)
	}
	return orgs, nil
}

func (s *Service) GetByID(organizationID string) (*Organization, error) {
	return s.repo.GetByID(organizationID)
}

func (s *Service) ListMembers(organizationID string) ([]*Member, error) {
	members, err := s.repo.ListMembers(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
