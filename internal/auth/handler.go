package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal"
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, ErrUserBanned):
			h.WriteError(w, http.StatusForbidden, "user account is banned")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware authenticates the bearer token and stores the caller in the
// request context. Missing or invalid identity is an authentication failure
// here, never an empty permission set downstream.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := h.Service.GetUserByID(claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, ErrUserBanned):
				h.Logger.Warn("banned user rejected", "user_id", claims.UserID)
				h.WriteError(w, http.StatusForbidden, "user account is banned")
			default:
				h.Logger.Error("failed to load user for token", "user_id", claims.UserID, "error", err)
				h.WriteError(w, http.StatusUnauthorized, "user not found")
			}
			return
		}

		// The plain id key is stored alongside the full user so packages
		// that must not depend on this one can still identify the caller.
		ctx := ContextWithUser(r.Context(), user)
		ctx = internal.ContextWithUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
