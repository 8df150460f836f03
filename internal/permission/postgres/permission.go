package postgres

import (
	rbacDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/rbac"
	"github.com/frahmantamala/access-management/internal/permission"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListAll() ([]*permission.Permission, error) {
	var rows []rbacDatamodel.Permission
	err := r.db.Order("category ASC, name ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	permissions := make([]*permission.Permission, 0, len(rows))
	for i := range rows {
		permissions = append(permissions, permission.FromDataModel(&rows[i]))
	}
	return permissions, nil
}
