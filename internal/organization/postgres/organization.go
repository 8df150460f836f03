package postgres

import (
	"errors"

	"github.com/frahmantamala/access-management/internal"
	orgDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/organization"
	"github.com/frahmantamala/access-management/internal/organization"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) organization.Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(organizationID string) (*organization.Organization, error) {
	var row orgDatamodel.Organization
	err := r.db.Where("id = ?", organizationID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrOrganizationNotFound
		}
		return nil, err
	}
	return organization.FromDataModel(&row), nil
}

func (r *Repository) ListActive() ([]*organization.Organization, error) {
	var rows []orgDatamodel.Organization
	err := r.db.Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	orgs := make([]*organization.Organization, 0, len(rows))
	for i := range rows {
		orgs = append(orgs, organization.FromDataModel(&rows[i]))
	}
	return orgs, nil
}

func (r *Repository) ListForMember(userID string) ([]*organization.Organization, error) {
	var rows []orgDatamodel.Organization
	err := r.db.
		Joins("JOIN organization_members m ON m.organization_id = organizations.id").
		Where("m.user_id = ?", userID).
		Order("organizations.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	orgs := make([]*organization.Organization, 0, len(rows))
	for i := range rows {
		orgs = append(orgs, organization.FromDataModel(&rows[i]))
	}
	return orgs, nil
}

func (r *Repository) ListMembers(organizationID string) ([]*organization.Member, error) {
	query := `SELECT m.id, m.user_id, u.name, u.email, m.role_id, r.name AS role_name,
	                 m.status, m.joined_at
	          FROM organization_members m
	          JOIN users u ON u.id = m.user_id
	          JOIN roles r ON r.id = m.role_id
	          WHERE m.organization_id = ?
	          ORDER BY m.joined_at ASC`

	rows, err := r.db.Raw(query, organizationID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*organization.Member
	for rows.Next() {
		var m organization.Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &m.RoleID, &m.RoleName,
			&m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}
