package organization

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/auth"
	"github.com/frahmantamala/access-management/internal/transport"
	"github.com/frahmantamala/access-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListVisible(userID, platformRole string) ([]*Organization, error)
	GetByID(organizationID string) (*Organization, error)
	ListMembers(organizationID string) ([]*Member, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListOrganizations handles GET /organizations
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orgs, err := h.Service.ListVisible(user.ID, user.PlatformRole)
	if err != nil {
		h.Logger.Error("failed to list organizations", "user_id", user.ID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, orgs)
}

// GetOrganization handles GET /organizations/{id}; organization access is
// enforced by middleware before this runs.
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")

	org, err := h.Service.GetByID(organizationID)
	if err != nil {
		h.Logger.Warn("failed to get organization", "organization_id", organizationID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, org)
}

// ListMembers handles GET /organizations/{id}/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")

	members, err := h.Service.ListMembers(organizationID)
	if err != nil {
		h.Logger.Error("failed to list members", "organization_id", organizationID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, members)
}
