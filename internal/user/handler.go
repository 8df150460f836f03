package user

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/auth"
	"github.com/frahmantamala/access-management/internal/transport"
	"github.com/frahmantamala/access-management/pkg/logger"
)

type ServiceAPI interface {
	GetProfile(userID string) (*Profile, error)
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

// Me handles GET /users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.Service.GetProfile(authUser.ID)
	if err != nil {
		h.Logger.Error("failed to load profile", "user_id", authUser.ID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}
