package rbac

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/auth"
	"github.com/frahmantamala/access-management/internal/transport"
	"github.com/frahmantamala/access-management/pkg/logger"
)

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

// ResolvePermissions handles POST /auth/permissions. The caller is already
// authenticated; the body optionally narrows resolution to one organization.
func (h *Handler) ResolvePermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ResolvePermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permissions, err := h.Service.ResolvePermissions(user.ID, dto.OrganizationID)
	if err != nil {
		h.Logger.Error("permission resolution failed", "user_id", user.ID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permissions)
}

// SwitchOrganization handles POST /auth/switch-organization. On success the
// caller is expected to re-invoke the resolution endpoint.
func (h *Handler) SwitchOrganization(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SwitchOrganizationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.SwitchOrganization(user.ID, dto.OrganizationID); err != nil {
		h.Logger.Warn("organization switch failed",
			"user_id", user.ID,
			"organization_id", dto.OrganizationID,
			"error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, SwitchOrganizationResponse{Success: true})
}
