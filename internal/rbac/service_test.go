package rbac

import (
	"context"
	"errors"
	"log/slog"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/access-management/internal"
	"github.com/frahmantamala/access-management/internal/core/events"
)

// Mock repository for testing
type mockRepository struct {
	users         map[string]*User
	memberships   map[string]*Membership // "userID|orgID" -> membership
	catalog       []string
	updatedUser   string
	updatedOrg    string
	updateCalls   int
	returnError   bool
	errorToReturn error
}

func newMockRepository() *mockRepository {
	acme := "org-acme"
	return &mockRepository{
		users: map[string]*User{
			"user-john": {ID: "user-john", Email: "john@acmecorp.com", PlatformRole: "user", CurrentOrganizationID: &acme},
			"user-root": {ID: "user-root", Email: "admin@example.com", PlatformRole: "superadmin"},
			"user-new":  {ID: "user-new", Email: "new@example.com", PlatformRole: ""},
		},
		memberships: map[string]*Membership{
			"user-john|org-acme": {
				OrganizationID:    "org-acme",
				RoleID:            "role-editor",
				RoleName:          "Editor",
				RolePermissions:   []string{"organization:read", "content:read", "content:update"},
				MemberPermissions: []string{"content:update", "analytics:export"},
			},
		},
		catalog: []string{"analytics:export", "content:read", "content:update", "organization:read"},
	}
}

func (m *mockRepository) GetUserByID(userID string) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockRepository) GetActiveMembership(userID, organizationID string) (*Membership, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.memberships[userID+"|"+organizationID], nil
}

func (m *mockRepository) ListCatalogNames() ([]string, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.catalog, nil
}

func (m *mockRepository) UpdateCurrentOrganization(userID, organizationID string) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.updatedUser = userID
	m.updatedOrg = organizationID
	m.updateCalls++
	return nil
}

var _ = ginkgo.Describe("RBACService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		service = NewService(mockRepo, nil, slog.Default())
	})

	ginkgo.Describe("ResolvePermissions", func() {
		ginkgo.Context("when the user has an active membership", func() {
			ginkgo.It("should return the union of role and member permissions", func() {
				result, err := service.ResolvePermissions("user-john", "org-acme")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.PlatformRole).To(gomega.Equal("user"))
				gomega.Expect(result.OrganizationRole).To(gomega.Equal("Editor"))
				gomega.Expect(result.OrganizationID).To(gomega.Equal("org-acme"))
				gomega.Expect(result.Permissions).To(gomega.Equal([]string{
					"organization:read", "content:read", "content:update", "analytics:export",
				}))
			})

			ginkgo.It("should deduplicate overlapping grants", func() {
				result, err := service.ResolvePermissions("user-john", "org-acme")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				counts := map[string]int{}
				for _, p := range result.Permissions {
					counts[p]++
				}
				gomega.Expect(counts["content:update"]).To(gomega.Equal(1))
			})

			ginkgo.It("should resolve identically on repeated calls", func() {
				first, err := service.ResolvePermissions("user-john", "org-acme")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				second, err := service.ResolvePermissions("user-john", "org-acme")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(second).To(gomega.Equal(first))
			})
		})

		ginkgo.Context("when the user is a superadmin", func() {
			ginkgo.It("should return the full catalog without organization scoping", func() {
				result, err := service.ResolvePermissions("user-root", "org-acme")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.PlatformRole).To(gomega.Equal("superadmin"))
				gomega.Expect(result.OrganizationID).To(gomega.BeEmpty())
				gomega.Expect(result.Permissions).To(gomega.Equal(mockRepo.catalog))
			})

			ginkgo.It("should return the full catalog even with no organization", func() {
				result, err := service.ResolvePermissions("user-root", "")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Permissions).To(gomega.Equal(mockRepo.catalog))
			})
		})

		ginkgo.Context("when no organization context is given", func() {
			ginkgo.It("should return an empty permission set, not an error", func() {
				result, err := service.ResolvePermissions("user-john", "")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.PlatformRole).To(gomega.Equal("user"))
				gomega.Expect(result.OrganizationRole).To(gomega.BeEmpty())
				gomega.Expect(result.Permissions).To(gomega.BeEmpty())
				gomega.Expect(result.Permissions).ToNot(gomega.BeNil())
			})
		})

		ginkgo.Context("when the user has no active membership in the organization", func() {
			ginkgo.It("should return an empty permission set, not an error", func() {
				result, err := service.ResolvePermissions("user-john", "org-techstart")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.OrganizationID).To(gomega.BeEmpty())
				gomega.Expect(result.Permissions).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the platform role is blank", func() {
			ginkgo.It("should default to the user role", func() {
				result, err := service.ResolvePermissions("user-new", "")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.PlatformRole).To(gomega.Equal("user"))
			})
		})

		ginkgo.Context("when the user does not exist", func() {
			ginkgo.It("should return the user not found error", func() {
				result, err := service.ResolvePermissions("user-ghost", "org-acme")

				gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
				gomega.Expect(result).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should surface the failure", func() {
				mockRepo.returnError = true
				mockRepo.errorToReturn = errors.New("connection refused")

				_, err := service.ResolvePermissions("user-john", "org-acme")
				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})
	})

	ginkgo.Describe("SwitchOrganization", func() {
		ginkgo.Context("when the user has an active membership", func() {
			ginkgo.It("should update the current organization pointer once", func() {
				err := service.SwitchOrganization("user-john", "org-acme")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.updatedUser).To(gomega.Equal("user-john"))
				gomega.Expect(mockRepo.updatedOrg).To(gomega.Equal("org-acme"))
				gomega.Expect(mockRepo.updateCalls).To(gomega.Equal(1))
			})

			ginkgo.It("should publish the switched event with the actor on the context", func() {
				bus := events.NewEventBus(slog.Default())
				received := make(chan events.Event, 1)
				actors := make(chan string, 1)
				bus.Subscribe(events.EventTypeOrganizationSwitched, func(ctx context.Context, e events.Event) error {
					actors <- internal.UserIDFromContext(ctx)
					received <- e
					return nil
				})
				service = NewService(mockRepo, bus, slog.Default())

				err := service.SwitchOrganization("user-john", "org-acme")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				var event events.Event
				gomega.Eventually(received).Should(gomega.Receive(&event))
				switched, ok := event.(*events.OrganizationSwitchedEvent)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(switched.UserID).To(gomega.Equal("user-john"))
				gomega.Expect(switched.OrganizationID).To(gomega.Equal("org-acme"))

				var actor string
				gomega.Eventually(actors).Should(gomega.Receive(&actor))
				gomega.Expect(actor).To(gomega.Equal("user-john"))
			})
		})

		ginkgo.Context("when the user has no active membership", func() {
			ginkgo.It("should deny without mutating the pointer", func() {
				err := service.SwitchOrganization("user-john", "org-techstart")

				gomega.Expect(err).To(gomega.Equal(internal.ErrNotOrganizationMember))
				gomega.Expect(mockRepo.updateCalls).To(gomega.Equal(0))
			})
		})

		ginkgo.Context("when the user is a superadmin", func() {
			ginkgo.It("should switch without a membership check", func() {
				err := service.SwitchOrganization("user-root", "org-techstart")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.updatedOrg).To(gomega.Equal("org-techstart"))
			})
		})

		ginkgo.Context("when the user does not exist", func() {
			ginkgo.It("should return the user not found error", func() {
				err := service.SwitchOrganization("user-ghost", "org-acme")
				gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
			})
		})
	})
})
