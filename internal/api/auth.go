// ABOUTME: Development-only session mint endpoint. Production sessions come
// ABOUTME: from the external identity provider; this route is never mounted there.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/session"
)

// mintSessionBody is the JSON request body for POST /api/v1/auth/session.
type mintSessionBody struct {
	UserID       string   `json:"user_id"`
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}

// mintSessionHandler handles POST /api/v1/auth/session (development only,
// rate limited). It issues a session cookie with the requested claims so the
// authorization stack can be exercised end to end without the external
// identity provider.
func (srv *Server) mintSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req mintSessionBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	token, err := session.IssueToken([]byte(srv.cfg.SessionSecret), session.Claims{
		UserID:       userID,
		Email:        req.Email,
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		Capabilities: req.Capabilities,
	}, srv.cfg.SessionTTL)
	if err != nil {
		slog.ErrorContext(r.Context(), "mint session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   srv.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
