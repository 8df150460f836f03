package permission

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/transport"
	"github.com/frahmantamala/access-management/pkg/logger"
)

type ServiceAPI interface {
	ListGrouped() ([]*CategoryGroup, error)
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

// ListPermissions handles GET /permissions
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.ListGrouped()
	if err != nil {
		h.Logger.Error("failed to list permissions", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, groups)
}
