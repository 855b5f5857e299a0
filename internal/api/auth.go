package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
	"github.com/erazemk/welcomehome/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Identity *service.Identity
	Issuer   *auth.Issuer
	DB       *db.DB
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	}

	p, err := h.Identity.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, model.ErrInvalidUsername) || errors.Is(err, model.ErrInvalidPassword) {
		slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, "log in", err)
		return
	}

	token, claims, err := h.Issuer.Issue(auth.Session{Username: p.Username, Role: p.Role})
	if err != nil {
		slog.Error("failed to issue token", "username", p.Username, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "user", p.Username, "role", p.Role, "via", "api")
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Role: p.Role, ExpiresAt: claims.Expiry()})
}

// Logout handles POST /api/logout by revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.Expiry()); err != nil {
		writeError(w, "revoke token", err)
		return
	}

	slog.Info("user logged out", "user", claims.Username, "via", "api")
	w.WriteHeader(http.StatusNoContent)
}
