package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/frahmantamala/access-management/internal"
	orgDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/organization"
	rbacDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/rbac"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
	"github.com/frahmantamala/access-management/internal/rbac"
	"gorm.io/gorm"
)

// Repository implements rbac.Repository using GORM. The JSONB permission
// columns are converted to plain string slices here, at the adapter, so the
// kernel only ever sees explicit sets of strings.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByID(userID string) (*rbac.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	return &rbac.User{
		ID:                    row.ID,
		Email:                 row.Email,
		PlatformRole:          row.Role,
		CurrentOrganizationID: row.CurrentOrganizationID,
	}, nil
}

// GetActiveMembership loads the membership joined with its role in one
// query, so the resolver sees one consistent snapshot of both rows.
// Returns (nil, nil) when the user has no active membership.
func (r *Repository) GetActiveMembership(userID, organizationID string) (*rbac.Membership, error) {
	query := `SELECT m.organization_id, m.role_id, r.name AS role_name,
	                 r.permissions AS role_permissions, m.permissions AS member_permissions
	          FROM organization_members m
	          JOIN roles r ON r.id = m.role_id
	          WHERE m.user_id = ? AND m.organization_id = ? AND m.status = ?
	          LIMIT 1`

	var membership rbac.Membership
	var rolePermissions, memberPermissions string

	row := r.db.Raw(query, userID, organizationID, orgDatamodel.MemberStatusActive).Row()
	err := row.Scan(&membership.OrganizationID, &membership.RoleID, &membership.RoleName,
		&rolePermissions, &memberPermissions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	membership.RolePermissions, err = DecodePermissionList(rolePermissions)
	if err != nil {
		return nil, err
	}
	membership.MemberPermissions, err = DecodePermissionSet(memberPermissions)
	if err != nil {
		return nil, err
	}

	return &membership, nil
}

func (r *Repository) ListCatalogNames() ([]string, error) {
	var names []string
	err := r.db.Model(&rbacDatamodel.Permission{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// UpdateCurrentOrganization persists the pointer in a single UPDATE so
// concurrent switches for the same user resolve last-writer-wins.
func (r *Repository) UpdateCurrentOrganization(userID, organizationID string) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_organization_id": organizationID,
			"updated_at":              time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// DecodePermissionList parses a serialized JSON list of permission names.
func DecodePermissionList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, err
	}
	return names, nil
}

// DecodePermissionSet parses a serialized JSON object used as a set: keys
// present mean granted, values carry no meaning. Keys are returned sorted so
// repeated resolutions yield identical records.
func DecodePermissionSet(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var grants map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &grants); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(grants))
	for name := range grants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// EncodePermissionSet serializes a string set back to the stored
// object-as-set shape.
func EncodePermissionSet(names []string) (string, error) {
	grants := make(map[string]bool, len(names))
	for _, name := range names {
		grants[name] = true
	}
	encoded, err := json.Marshal(grants)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
