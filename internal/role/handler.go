package role

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/transport"
	"github.com/frahmantamala/access-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListForOrganization(organizationID string) ([]*Role, error)
	Create(organizationID string, dto CreateRoleDTO) (*Role, error)
	Update(organizationID, roleID string, dto UpdateRoleDTO) (*Role, error)
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

// ListRoles handles GET /organizations/{id}/roles
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")

	roles, err := h.Service.ListForOrganization(organizationID)
	if err != nil {
		h.Logger.Error("failed to list roles", "organization_id", organizationID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, roles)
}

// CreateRole handles POST /organizations/{id}/roles
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")

	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(organizationID, dto)
	if err != nil {
		h.Logger.Warn("failed to create role", "organization_id", organizationID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// UpdateRole handles PUT /organizations/{id}/roles/{roleId}
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")
	roleID := chi.URLParam(r, "roleId")

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(organizationID, roleID, dto)
	if err != nil {
		h.Logger.Warn("failed to update role", "organization_id", organizationID, "role_id", roleID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}
