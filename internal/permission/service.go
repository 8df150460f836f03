package permission

import (
	"fmt"
	"log/slog"
)

type Repository interface {
	// ListAll returns the whole catalog ordered by category then name.
	ListAll() ([]*Permission, error)
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

// ListGrouped returns the catalog bucketed by category, preserving the
// repository's ordering so the output is stable across calls.
func (s *Service) ListGrouped() ([]*CategoryGroup, error) {
	permissions, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	groups := []*CategoryGroup{}
	index := map[string]*CategoryGroup{}
	for _, p := range permissions {
		group, ok := index[p.Category]
		if !ok {
			group = &CategoryGroup{Category: p.Category, Permissions: []*Permission{}}
			index[p.Category] = group
			groups = append(groups, group)
		}
		group.Permissions = append(group.Permissions, p)
	}
	return groups, nil
}
