package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	orgDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/organization"
	rbacDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/rbac"
	rbacPostgres "github.com/frahmantamala/access-management/internal/rbac/postgres"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type seedPermission struct {
	Name     string
	Desc     string
	Category string
	Resource string
	Action   string
}

var catalogSeed = []seedPermission{
	// Organization Management
	{"organization:read", "View organization details", "organization", "organization", "read"},
	{"organization:update", "Update organization settings", "organization", "organization", "update"},
	{"organization:delete", "Delete organization", "organization", "organization", "delete"},
	{"organization:billing", "Manage organization billing", "organization", "organization", "billing"},

	// User Management
	{"user:read", "View users in organization", "user", "user", "read"},
	{"user:create", "Invite users to organization", "user", "user", "create"},
	{"user:update", "Update user details", "user", "user", "update"},
	{"user:delete", "Remove users from organization", "user", "user", "delete"},
	{"user:impersonate", "Impersonate other users", "user", "user", "impersonate"},

	// Role Management
	{"role:read", "View roles in organization", "role", "role", "read"},
	{"role:create", "Create new roles", "role", "role", "create"},
	{"role:update", "Update role permissions", "role", "role", "update"},
	{"role:delete", "Delete roles", "role", "role", "delete"},
	{"role:assign", "Assign roles to users", "role", "role", "assign"},

	// Content Management
	{"content:read", "View content", "content", "content", "read"},
	{"content:create", "Create new content", "content", "content", "create"},
	{"content:update", "Update existing content", "content", "content", "update"},
	{"content:delete", "Delete content", "content", "content", "delete"},
	{"content:publish", "Publish content", "content", "content", "publish"},

	// Analytics
	{"analytics:read", "View analytics and reports", "analytics", "analytics", "read"},
	{"analytics:export", "Export analytics data", "analytics", "analytics", "export"},

	// Settings
	{"settings:read", "View organization settings", "settings", "settings", "read"},
	{"settings:update", "Update organization settings", "settings", "settings", "update"},

	// Platform Admin
	{"platform:organizations", "Manage all organizations", "platform", "platform", "organizations"},
	{"platform:users", "Manage all platform users", "platform", "platform", "users"},
	{"platform:billing", "Manage platform billing", "platform", "platform", "billing"},
	{"platform:settings", "Manage platform settings", "platform", "platform", "settings"},
}

var orgRoleTemplates = []struct {
	Name        string
	Permissions []string
}{
	{"Owner", []string{
		"organization:read", "organization:update", "organization:delete",
		"user:read", "user:create", "user:update", "user:delete",
		"role:read", "role:create", "role:update", "role:delete", "role:assign",
		"content:read", "content:create", "content:update", "content:delete", "content:publish",
		"analytics:read", "analytics:export", "settings:read", "settings:update",
	}},
	{"Admin", []string{
		"organization:read", "user:read", "user:create", "user:update",
		"role:read", "role:assign",
		"content:read", "content:create", "content:update", "content:delete", "content:publish",
		"analytics:read", "settings:read",
	}},
	{"Editor", []string{
		"organization:read", "user:read",
		"content:read", "content:create", "content:update",
		"analytics:read",
	}},
	{"Viewer", []string{
		"organization:read", "user:read", "content:read", "analytics:read",
	}},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo data",
	Long:  `Seed the permission catalog, system roles, demo organizations and demo users.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing user data...")
			for _, table := range []string{"organization_members", "users", "organizations"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		seedCatalog(db)
		seedSystemRoles(db)
		users := seedDemoUsers(db)
		orgs := seedDemoOrganizations(db, users)
		roles := seedOrganizationRoles(db, orgs)
		seedMemberships(db, users, orgs, roles)

		fmt.Println("Seeding completed")
		fmt.Println("Demo credentials: admin@example.com / password123 (superadmin)")
		fmt.Println("                  john@acmecorp.com / password123 (Acme Owner)")
	},
}

func seedCatalog(db *gorm.DB) {
	for _, p := range catalogSeed {
		var exists int
		row := db.Raw("SELECT 1 FROM permissions WHERE name = ?", p.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		desc := p.Desc
		record := rbacDatamodel.Permission{
			ID:                 uuid.NewString(),
			Name:               p.Name,
			Description:        &desc,
			Category:           p.Category,
			Resource:           p.Resource,
			Action:             p.Action,
			IsSystemPermission: true,
			CreatedAt:          time.Now(),
		}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to insert permission %s: %v", p.Name, err)
		}
	}
	fmt.Printf("Seeded %d catalog permissions\n", len(catalogSeed))
}

func seedSystemRoles(db *gorm.DB) {
	allNames := make([]string, 0, len(catalogSeed))
	for _, p := range catalogSeed {
		allNames = append(allNames, p.Name)
	}

	systemRoles := []struct {
		Name        string
		Desc        string
		Permissions []string
	}{
		{"Super Admin", "Platform super administrator with all permissions", allNames},
		{"Platform Admin", "Platform administrator with limited permissions", []string{
			"platform:organizations", "platform:users", "analytics:read", "analytics:export",
		}},
	}

	for _, r := range systemRoles {
		var exists int
		row := db.Raw("SELECT 1 FROM roles WHERE name = ? AND organization_id IS NULL", r.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		encoded, err := json.Marshal(r.Permissions)
		if err != nil {
			log.Fatalf("failed to encode permissions for %s: %v", r.Name, err)
		}
		desc := r.Desc
		record := rbacDatamodel.Role{
			ID:           uuid.NewString(),
			Name:         r.Name,
			Description:  &desc,
			IsSystemRole: true,
			Permissions:  string(encoded),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to insert system role %s: %v", r.Name, err)
		}
	}
	fmt.Println("Seeded system roles")
}

func seedDemoUsers(db *gorm.DB) map[string]string {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}

	demoUsers := []struct {
		Name  string
		Email string
		Role  string
	}{
		{"Super Admin", "admin@example.com", userDatamodel.PlatformRoleSuperAdmin},
		{"John Doe", "john@acmecorp.com", userDatamodel.PlatformRoleUser},
		{"Jane Smith", "jane@acmecorp.com", userDatamodel.PlatformRoleUser},
		{"Bob Wilson", "bob@acmecorp.com", userDatamodel.PlatformRoleUser},
		{"Alice Johnson", "alice@techstart.io", userDatamodel.PlatformRoleUser},
	}

	ids := make(map[string]string, len(demoUsers))
	for _, u := range demoUsers {
		var existingID string
		row := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row()
		if err := row.Scan(&existingID); err == nil {
			ids[u.Email] = existingID
			continue
		}

		record := userDatamodel.User{
			ID:            uuid.NewString(),
			Name:          u.Name,
			Email:         u.Email,
			EmailVerified: true,
			PasswordHash:  string(hash),
			Role:          u.Role,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		ids[u.Email] = record.ID
		fmt.Println("Seeded user:", u.Email)
	}
	return ids
}

func seedDemoOrganizations(db *gorm.DB, users map[string]string) map[string]string {
	acmeDesc := "A leading technology company"
	techDesc := "An innovative startup"

	demoOrgs := []orgDatamodel.Organization{
		{
			ID:                 uuid.NewString(),
			Name:               "Acme Corporation",
			Slug:               "acme-corp",
			Description:        &acmeDesc,
			Plan:               "pro",
			SubscriptionStatus: "active",
			MaxUsers:           50,
			MaxStorage:         10000,
			OwnerID:            users["john@acmecorp.com"],
			IsActive:           true,
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		},
		{
			ID:                 uuid.NewString(),
			Name:               "TechStart",
			Slug:               "techstart",
			Description:        &techDesc,
			Plan:               "free",
			SubscriptionStatus: "active",
			MaxUsers:           5,
			MaxStorage:         1000,
			OwnerID:            users["alice@techstart.io"],
			IsActive:           true,
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		},
	}

	ids := make(map[string]string, len(demoOrgs))
	for _, org := range demoOrgs {
		var existingID string
		row := db.Raw("SELECT id FROM organizations WHERE slug = ?", org.Slug).Row()
		if err := row.Scan(&existingID); err == nil {
			ids[org.Slug] = existingID
			continue
		}

		if err := db.Create(&org).Error; err != nil {
			log.Fatalf("failed to insert organization %s: %v", org.Slug, err)
		}
		ids[org.Slug] = org.ID
		fmt.Println("Seeded organization:", org.Name)
	}
	return ids
}

func seedOrganizationRoles(db *gorm.DB, orgs map[string]string) map[string]map[string]string {
	roleIDs := make(map[string]map[string]string, len(orgs))
	for slug, orgID := range orgs {
		roleIDs[slug] = make(map[string]string, len(orgRoleTemplates))

		for _, template := range orgRoleTemplates {
			var existingID string
			row := db.Raw("SELECT id FROM roles WHERE name = ? AND organization_id = ?", template.Name, orgID).Row()
			if err := row.Scan(&existingID); err == nil {
				roleIDs[slug][template.Name] = existingID
				continue
			}

			encoded, err := json.Marshal(template.Permissions)
			if err != nil {
				log.Fatalf("failed to encode permissions for %s: %v", template.Name, err)
			}
			desc := fmt.Sprintf("%s role", template.Name)
			organizationID := orgID
			record := rbacDatamodel.Role{
				ID:             uuid.NewString(),
				Name:           template.Name,
				Description:    &desc,
				OrganizationID: &organizationID,
				IsSystemRole:   false,
				Permissions:    string(encoded),
				CreatedAt:      time.Now(),
				UpdatedAt:      time.Now(),
			}
			if err := db.Create(&record).Error; err != nil {
				log.Fatalf("failed to insert role %s for %s: %v", template.Name, slug, err)
			}
			roleIDs[slug][template.Name] = record.ID
		}
	}
	fmt.Println("Seeded organization roles")
	return roleIDs
}

func seedMemberships(db *gorm.DB, users, orgs map[string]string, roles map[string]map[string]string) {
	memberships := []struct {
		OrgSlug string
		Email   string
		Role    string
		Extra   []string
	}{
		{"acme-corp", "john@acmecorp.com", "Owner", nil},
		{"acme-corp", "jane@acmecorp.com", "Admin", nil},
		// Bob's Editor role has no export permission; the direct grant on
		// the membership demonstrates the override union.
		{"acme-corp", "bob@acmecorp.com", "Editor", []string{"analytics:export"}},
		{"techstart", "alice@techstart.io", "Owner", nil},
	}

	for _, m := range memberships {
		orgID := orgs[m.OrgSlug]
		userID := users[m.Email]

		var exists int
		row := db.Raw("SELECT 1 FROM organization_members WHERE organization_id = ? AND user_id = ?", orgID, userID).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		overrides, err := rbacPostgres.EncodePermissionSet(m.Extra)
		if err != nil {
			log.Fatalf("failed to encode membership permissions for %s: %v", m.Email, err)
		}

		record := orgDatamodel.OrganizationMember{
			ID:             uuid.NewString(),
			OrganizationID: orgID,
			UserID:         userID,
			RoleID:         roles[m.OrgSlug][m.Role],
			Status:         orgDatamodel.MemberStatusActive,
			Permissions:    overrides,
			JoinedAt:       time.Now(),
		}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to insert membership %s -> %s: %v", m.Email, m.OrgSlug, err)
		}

		// Point each member at their seeded organization.
		if err := db.Exec("UPDATE users SET current_organization_id = ? WHERE id = ?", orgID, userID).Error; err != nil {
			log.Fatalf("failed to set current organization for %s: %v", m.Email, err)
		}
	}
	fmt.Println("Seeded organization memberships")
}
