package user

import (
	"log/slog"
)

type Repository interface {
	// GetByID returns internal.ErrUserNotFound when missing.
	GetByID(userID string) (*Profile, error)
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

func (s *Service) GetProfile(userID string) (*Profile, error) {
	return s.repo.GetByID(userID)
}
