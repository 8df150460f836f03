package postgres

import (
	"errors"
	"strings"

	"github.com/frahmantamala/access-management/internal"
	rbacDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/rbac"
	"github.com/frahmantamala/access-management/internal/role"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForOrganization returns the organization's own roles plus the shared
// templates that have no organization, system roles first.
func (r *Repository) ListForOrganization(organizationID string) ([]*role.Role, error) {
	var rows []rbacDatamodel.Role
	err := r.db.
		Where("organization_id = ? OR (organization_id IS NULL AND is_system_role = ?)", organizationID, false).
		Order("is_system_role DESC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]*role.Role, 0, len(rows))
	for i := range rows {
		converted, err := role.FromDataModel(&rows[i])
		if err != nil {
			return nil, err
		}
		roles = append(roles, converted)
	}
	return roles, nil
}

func (r *Repository) GetByID(roleID string) (*role.Role, error) {
	var row rbacDatamodel.Role
	err := r.db.Where("id = ?", roleID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return role.FromDataModel(&row)
}

func (r *Repository) Create(newRole *role.Role) error {
	row, err := role.ToDataModel(newRole)
	if err != nil {
		return err
	}
	if err := r.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrDuplicateRoleName
		}
		return err
	}
	return nil
}

func (r *Repository) Update(updated *role.Role) error {
	row, err := role.ToDataModel(updated)
	if err != nil {
		return err
	}
	result := r.db.Model(&rbacDatamodel.Role{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"description": row.Description,
			"permissions": row.Permissions,
			"updated_at":  row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrRoleNotFound
	}
	return nil
}

func (r *Repository) CatalogNames() ([]string, error) {
	var names []string
	err := r.db.Model(&rbacDatamodel.Permission{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
