package rbac

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/access-management/internal/auth"
)

var _ = ginkgo.Describe("Authorizer", func() {
	var (
		authorizer *Authorizer
		mockRepo   *mockRepository
		okHandler  http.Handler
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		service := NewService(mockRepo, nil, slog.Default())
		authorizer = NewAuthorizer(service, slog.Default())
		okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	requestAs := func(router *chi.Mux, user *auth.User, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if user != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Describe("RequirePermission", func() {
		newRouter := func() *chi.Mux {
			router := chi.NewRouter()
			router.Group(func(r chi.Router) {
				r.Use(authorizer.RequirePermission("content:update"))
				r.Get("/protected", okHandler.ServeHTTP)
			})
			return router
		}

		ginkgo.It("should pass a member holding the permission in their current organization", func() {
			acme := "org-acme"
			rec := requestAs(newRouter(), &auth.User{ID: "user-john", CurrentOrganizationID: &acme}, "/protected")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a member without the permission", func() {
			router := chi.NewRouter()
			router.Group(func(r chi.Router) {
				r.Use(authorizer.RequirePermission("role:delete"))
				r.Get("/protected", okHandler.ServeHTTP)
			})

			acme := "org-acme"
			rec := requestAs(router, &auth.User{ID: "user-john", CurrentOrganizationID: &acme}, "/protected")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should reject an unauthenticated request", func() {
			rec := requestAs(newRouter(), nil, "/protected")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should pass a superadmin without membership", func() {
			rec := requestAs(newRouter(), &auth.User{ID: "user-root"}, "/protected")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("RequireOrganizationAccess", func() {
		newRouter := func() *chi.Mux {
			router := chi.NewRouter()
			router.Route("/organizations/{id}", func(r chi.Router) {
				r.Use(authorizer.RequireOrganizationAccess())
				r.Get("/", okHandler.ServeHTTP)
			})
			return router
		}

		ginkgo.It("should pass a member of the organization", func() {
			rec := requestAs(newRouter(), &auth.User{ID: "user-john"}, "/organizations/org-acme/")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a non-member", func() {
			rec := requestAs(newRouter(), &auth.User{ID: "user-john"}, "/organizations/org-techstart/")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should pass a superadmin for any organization", func() {
			rec := requestAs(newRouter(), &auth.User{ID: "user-root"}, "/organizations/org-techstart/")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("RequireResourceAction", func() {
		newRouter := func() *chi.Mux {
			router := chi.NewRouter()
			router.Route("/organizations/{id}", func(r chi.Router) {
				r.Use(authorizer.RequireResourceAction("content", "update"))
				r.Get("/content", okHandler.ServeHTTP)
			})
			return router
		}

		ginkgo.It("should pass when the permission is held inside the organization", func() {
			rec := requestAs(newRouter(), &auth.User{ID: "user-john"}, "/organizations/org-acme/content")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject when the permission exists but the organization differs", func() {
			rec := requestAs(newRouter(), &auth.User{ID: "user-john"}, "/organizations/org-techstart/content")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should reject a member without the permission", func() {
			router := chi.NewRouter()
			router.Route("/organizations/{id}", func(r chi.Router) {
				r.Use(authorizer.RequireResourceAction("role", "delete"))
				r.Get("/roles", okHandler.ServeHTTP)
			})

			rec := requestAs(router, &auth.User{ID: "user-john"}, "/organizations/org-acme/roles")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})
})
