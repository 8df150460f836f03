package postgres

import (
	"errors"

	"github.com/frahmantamala/access-management/internal"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
	"github.com/frahmantamala/access-management/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(userID string) (*user.Profile, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}
