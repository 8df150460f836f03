package postgres

import (
	"errors"

	"github.com/frahmantamala/access-management/internal/auth"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, string, error) {
	var row userDatamodel.User
	err := r.db.Select("id", "password_hash").Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", auth.ErrUserNotFound
		}
		return "", "", err
	}
	return row.ID, row.PasswordHash, nil
}

func (r *Repository) GetUserByID(userID string) (*auth.UserRecord, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.UserRecord{
		ID:                    row.ID,
		Email:                 row.Email,
		Name:                  row.Name,
		PlatformRole:          row.Role,
		Banned:                row.Banned,
		BanExpires:            row.BanExpires,
		CurrentOrganizationID: row.CurrentOrganizationID,
	}, nil
}
