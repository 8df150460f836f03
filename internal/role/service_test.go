package role

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/access-management/internal"
)

func TestRole(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Role Module Suite")
}

// Mock repository for testing
type mockRoleRepository struct {
	roles         map[string]*Role
	catalog       []string
	created       *Role
	updated       *Role
	returnError   bool
	errorToReturn error
}

func newMockRoleRepository() *mockRoleRepository {
	org := "org-acme"
	return &mockRoleRepository{
		roles: map[string]*Role{
			"role-editor": {
				ID: "role-editor", Name: "Editor", OrganizationID: &org,
				Permissions: []string{"content:read", "content:update"},
				CreatedAt:   time.Now(), UpdatedAt: time.Now(),
			},
			"role-system": {
				ID: "role-system", Name: "Super Admin", IsSystemRole: true,
				Permissions: []string{"content:read"},
			},
		},
		catalog: []string{"analytics:read", "content:read", "content:update", "user:read"},
	}
}

func (m *mockRoleRepository) ListForOrganization(organizationID string) ([]*Role, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	var out []*Role
	for _, r := range m.roles {
		if r.OrganizationID != nil && *r.OrganizationID == organizationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRoleRepository) GetByID(roleID string) (*Role, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if r, ok := m.roles[roleID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, internal.ErrRoleNotFound
}

func (m *mockRoleRepository) Create(role *Role) error {
	if m.returnError {
		return m.errorToReturn
	}
	for _, r := range m.roles {
		sameOrg := r.OrganizationID != nil && role.OrganizationID != nil && *r.OrganizationID == *role.OrganizationID
		if sameOrg && r.Name == role.Name {
			return internal.ErrDuplicateRoleName
		}
	}
	m.created = role
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleRepository) Update(role *Role) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.updated = role
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleRepository) CatalogNames() ([]string, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.catalog, nil
}

var _ = ginkgo.Describe("RoleService", func() {
	var (
		service  *Service
		mockRepo *mockRoleRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRoleRepository()
		service = NewService(mockRepo, nil, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.Context("with valid input", func() {
			ginkgo.It("should store the role with a generated id", func() {
				created, err := service.Create("org-acme", CreateRoleDTO{
					Name:        "Reviewer",
					Permissions: []string{"content:read", "analytics:read"},
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(created.ID).ToNot(gomega.BeEmpty())
				gomega.Expect(created.OrganizationID).ToNot(gomega.BeNil())
				gomega.Expect(*created.OrganizationID).To(gomega.Equal("org-acme"))
				gomega.Expect(created.IsSystemRole).To(gomega.BeFalse())
				gomega.Expect(mockRepo.created).ToNot(gomega.BeNil())
			})

			ginkgo.It("should accept an empty permission list", func() {
				created, err := service.Create("org-acme", CreateRoleDTO{
					Name:        "Ghost",
					Permissions: []string{},
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(created.Permissions).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("with a permission outside the catalog", func() {
			ginkgo.It("should reject with the unknown permission error", func() {
				_, err := service.Create("org-acme", CreateRoleDTO{
					Name:        "Reviewer",
					Permissions: []string{"content:read", "content:teleport"},
				})

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeUnknownPermission))
			})
		})

		ginkgo.Context("with a duplicate name", func() {
			ginkgo.It("should surface the conflict error", func() {
				_, err := service.Create("org-acme", CreateRoleDTO{
					Name:        "Editor",
					Permissions: []string{"content:read"},
				})
				gomega.Expect(err).To(gomega.Equal(internal.ErrDuplicateRoleName))
			})
		})

		ginkgo.Context("with invalid input", func() {
			ginkgo.It("should reject a missing name", func() {
				_, err := service.Create("org-acme", CreateRoleDTO{
					Permissions: []string{"content:read"},
				})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})

			ginkgo.It("should reject nil permissions", func() {
				_, err := service.Create("org-acme", CreateRoleDTO{Name: "Reviewer"})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})

			ginkgo.It("should reject a malformed permission name", func() {
				_, err := service.Create("org-acme", CreateRoleDTO{
					Name:        "Reviewer",
					Permissions: []string{"not a permission"},
				})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should replace the permission list", func() {
			updated, err := service.Update("org-acme", "role-editor", UpdateRoleDTO{
				Permissions: []string{"content:read"},
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Permissions).To(gomega.Equal([]string{"content:read"}))
			gomega.Expect(mockRepo.updated).ToNot(gomega.BeNil())
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.Update("org-acme", "role-ghost", UpdateRoleDTO{
				Permissions: []string{"content:read"},
			})
			gomega.Expect(err).To(gomega.Equal(internal.ErrRoleNotFound))
		})

		ginkgo.It("should treat a role from another organization as missing", func() {
			_, err := service.Update("org-techstart", "role-editor", UpdateRoleDTO{
				Permissions: []string{"content:read"},
			})
			gomega.Expect(err).To(gomega.Equal(internal.ErrRoleNotFound))
		})

		ginkgo.It("should refuse to modify a system role", func() {
			org := "org-acme"
			mockRepo.roles["role-system"].OrganizationID = &org

			_, err := service.Update("org-acme", "role-system", UpdateRoleDTO{
				Permissions: []string{"content:read"},
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeForbidden))
		})

		ginkgo.It("should validate permissions against the catalog", func() {
			_, err := service.Update("org-acme", "role-editor", UpdateRoleDTO{
				Permissions: []string{"content:fly"},
			})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeUnknownPermission))
		})
	})

	ginkgo.Describe("ListForOrganization", func() {
		ginkgo.It("should return the organization's roles", func() {
			roles, err := service.ListForOrganization("org-acme")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(roles).To(gomega.HaveLen(1))
			gomega.Expect(roles[0].Name).To(gomega.Equal("Editor"))
		})

		ginkgo.It("should wrap repository failures", func() {
			mockRepo.returnError = true
			mockRepo.errorToReturn = errors.New("connection refused")

			_, err := service.ListForOrganization("org-acme")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
