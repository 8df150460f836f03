package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/auth"
	"github.com/frahmantamala/access-management/internal/organization"
	"github.com/frahmantamala/access-management/internal/permission"
	"github.com/frahmantamala/access-management/internal/rbac"
	"github.com/frahmantamala/access-management/internal/role"
	"github.com/frahmantamala/access-management/internal/transport/middleware"
	"github.com/frahmantamala/access-management/internal/transport/swagger"
	"github.com/frahmantamala/access-management/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, authorizer *rbac.Authorizer, rbacHandler *rbac.Handler, userHandler *user.Handler, organizationHandler *organization.Handler, roleHandler *role.Handler, permissionHandler *permission.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})

			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if rbacHandler != nil {
					pr.Post("/auth/permissions", rbacHandler.ResolvePermissions)
					pr.Post("/auth/switch-organization", rbacHandler.SwitchOrganization)
				}

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.Me)
				}

				// Permission catalog
				if permissionHandler != nil {
					pr.Get("/permissions", permissionHandler.ListPermissions)
				}

				// Organization routes
				if organizationHandler != nil {
					pr.Route("/organizations", func(or chi.Router) {
						or.Get("/", organizationHandler.ListOrganizations)

						or.Route("/{id}", func(ir chi.Router) {
							ir.Use(authorizer.RequireOrganizationAccess())
							ir.Get("/", organizationHandler.GetOrganization)

							ir.Group(func(mr chi.Router) {
								mr.Use(authorizer.RequireResourceAction("user", "read"))
								mr.Get("/members", organizationHandler.ListMembers)
							})

							if roleHandler != nil {
								ir.Route("/roles", func(rr chi.Router) {
									rr.Group(func(gr chi.Router) {
										gr.Use(authorizer.RequireResourceAction("role", "read"))
										gr.Get("/", roleHandler.ListRoles)
									})
									rr.Group(func(gr chi.Router) {
										gr.Use(authorizer.RequireResourceAction("role", "create"))
										gr.Post("/", roleHandler.CreateRole)
									})
									rr.Group(func(gr chi.Router) {
										gr.Use(authorizer.RequireResourceAction("role", "update"))
										gr.Put("/{roleId}", roleHandler.UpdateRole)
									})
								})
							}
						})
					})
				}
			})
		}
	})
}
