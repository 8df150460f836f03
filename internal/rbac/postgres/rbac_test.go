package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/access-management/internal"
	rbacPostgres "github.com/frahmantamala/access-management/internal/rbac/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRBACPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Postgres Suite")
}

// SQLite-compatible models for testing

type SQLiteUser struct {
	ID                    string    `gorm:"primaryKey"`
	Name                  string    `gorm:"column:name"`
	Email                 string    `gorm:"column:email;uniqueIndex"`
	PasswordHash          string    `gorm:"column:password_hash"`
	Role                  string    `gorm:"column:role;default:'user'"`
	CurrentOrganizationID *string   `gorm:"column:current_organization_id"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteRole struct {
	ID             string  `gorm:"primaryKey"`
	Name           string  `gorm:"column:name"`
	OrganizationID *string `gorm:"column:organization_id"`
	IsSystemRole   bool    `gorm:"column:is_system_role"`
	Permissions    string  `gorm:"column:permissions"`
}

func (SQLiteRole) TableName() string { return "roles" }

type SQLiteMember struct {
	ID             string `gorm:"primaryKey"`
	OrganizationID string `gorm:"column:organization_id"`
	UserID         string `gorm:"column:user_id"`
	RoleID         string `gorm:"column:role_id"`
	Status         string `gorm:"column:status"`
	Permissions    string `gorm:"column:permissions"`
}

func (SQLiteMember) TableName() string { return "organization_members" }

type SQLitePermission struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"column:name;uniqueIndex"`
	Category string `gorm:"column:category"`
	Resource string `gorm:"column:resource"`
	Action   string `gorm:"column:action"`
}

func (SQLitePermission) TableName() string { return "permissions" }

var _ = Describe("RBAC PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *rbacPostgres.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteRole{}, &SQLiteMember{}, &SQLitePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = rbacPostgres.NewRepository(db)

		Expect(db.Create(&SQLiteUser{
			ID: "user-1", Name: "John", Email: "john@acmecorp.com",
			PasswordHash: "x", Role: "user",
		}).Error).NotTo(HaveOccurred())

		Expect(db.Create(&SQLiteRole{
			ID: "role-editor", Name: "Editor",
			OrganizationID: strPtr("org-1"),
			Permissions:    `["content:read","content:update"]`,
		}).Error).NotTo(HaveOccurred())
	})

	Describe("GetUserByID", func() {
		It("should load the user identity slice", func() {
			u, err := repo.GetUserByID("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("john@acmecorp.com"))
			Expect(u.PlatformRole).To(Equal("user"))
		})

		It("should map missing users to the not found error", func() {
			_, err := repo.GetUserByID("missing")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("GetActiveMembership", func() {
		It("should join membership and role and decode both permission columns", func() {
			Expect(db.Create(&SQLiteMember{
				ID: "m-1", OrganizationID: "org-1", UserID: "user-1",
				RoleID: "role-editor", Status: "active",
				Permissions: `{"analytics:export":true}`,
			}).Error).NotTo(HaveOccurred())

			m, err := repo.GetActiveMembership("user-1", "org-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(m).NotTo(BeNil())
			Expect(m.RoleName).To(Equal("Editor"))
			Expect(m.RolePermissions).To(Equal([]string{"content:read", "content:update"}))
			Expect(m.MemberPermissions).To(Equal([]string{"analytics:export"}))
		})

		It("should return nil without error when no membership exists", func() {
			m, err := repo.GetActiveMembership("user-1", "org-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(BeNil())
		})

		It("should ignore memberships that are not active", func() {
			Expect(db.Create(&SQLiteMember{
				ID: "m-2", OrganizationID: "org-1", UserID: "user-1",
				RoleID: "role-editor", Status: "suspended",
				Permissions: `{}`,
			}).Error).NotTo(HaveOccurred())

			m, err := repo.GetActiveMembership("user-1", "org-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(BeNil())
		})
	})

	Describe("ListCatalogNames", func() {
		It("should return names ordered alphabetically", func() {
			for _, p := range []SQLitePermission{
				{ID: "p-1", Name: "user:read", Category: "user", Resource: "user", Action: "read"},
				{ID: "p-2", Name: "content:read", Category: "content", Resource: "content", Action: "read"},
			} {
				Expect(db.Create(&p).Error).NotTo(HaveOccurred())
			}

			names, err := repo.ListCatalogNames()
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"content:read", "user:read"}))
		})
	})

	Describe("UpdateCurrentOrganization", func() {
		It("should persist the pointer", func() {
			err := repo.UpdateCurrentOrganization("user-1", "org-1")
			Expect(err).NotTo(HaveOccurred())

			var row SQLiteUser
			Expect(db.First(&row, "id = ?", "user-1").Error).NotTo(HaveOccurred())
			Expect(row.CurrentOrganizationID).NotTo(BeNil())
			Expect(*row.CurrentOrganizationID).To(Equal("org-1"))
		})

		It("should map a missing user to the not found error", func() {
			err := repo.UpdateCurrentOrganization("missing", "org-1")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("permission column helpers", func() {
		It("should decode an empty list column to an empty slice", func() {
			names, err := rbacPostgres.DecodePermissionList("")
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
		})

		It("should decode object keys sorted", func() {
			names, err := rbacPostgres.DecodePermissionSet(`{"b:read":true,"a:read":{}}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"a:read", "b:read"}))
		})

		It("should round-trip a set through encode and decode", func() {
			encoded, err := rbacPostgres.EncodePermissionSet([]string{"a:read", "b:read"})
			Expect(err).NotTo(HaveOccurred())

			names, err := rbacPostgres.DecodePermissionSet(encoded)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"a:read", "b:read"}))
		})
	})
})

func strPtr(s string) *string { return &s }
