// ABOUTME: DJ roster admin handlers: list, authority changes, removal, and the
// ABOUTME: caller's own profile-completeness view.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/roles"
	"github.com/WXYC/dj-site-sub004/internal/session"
	"github.com/WXYC/dj-site-sub004/internal/store"
)

// djResponse is the roster view of a user. Authority is reported both raw and
// normalized so admin tooling can spot legacy values that no longer parse.
type djResponse struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Username      string   `json:"username,omitempty"`
	RealName      string   `json:"real_name,omitempty"`
	DjName        string   `json:"dj_name,omitempty"`
	Authority     string   `json:"authority"`
	AuthorityRank string   `json:"authority_rank"`
	Capabilities  []string `json:"capabilities"`
	CreatedAt     string   `json:"created_at"` // RFC3339
}

func toDJResponse(u store.User) djResponse {
	caps := u.Capabilities
	if caps == nil {
		caps = []string{}
	}
	return djResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Username:      u.Username,
		RealName:      u.RealName,
		DjName:        u.DjName,
		Authority:     u.Authority,
		AuthorityRank: roles.NormalizeAuthority(u.Authority).String(),
		Capabilities:  caps,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

// listDJsHandler handles GET /api/v1/djs.
// Requires at least MusicDirector (enforced by Require middleware).
func (srv *Server) listDJsHandler(w http.ResponseWriter, r *http.Request) {
	users, err := srv.store.ListDJs(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list djs", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]djResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toDJResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string][]djResponse{"djs": out})
}

// updateAuthorityBody is the JSON request body for PATCH /api/v1/djs/{user_id}.
type updateAuthorityBody struct {
	Authority string `json:"authority"`
}

// updateAuthorityHandler handles PATCH /api/v1/djs/{user_id}.
// Requires at least StationManager. The authority string is stored raw; the
// rank it grants comes from normalization at decision time.
func (srv *Server) updateAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	var req updateAuthorityBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Authority == "" {
		http.Error(w, "authority is required", http.StatusBadRequest)
		return
	}

	user, err := srv.store.UpdateUserAuthority(r.Context(), userID, req.Authority)
	if err != nil {
		slog.ErrorContext(r.Context(), "update authority", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toDJResponse(*user))
}

// deleteDJHandler handles DELETE /api/v1/djs/{user_id}.
// Requires StationManager plus the webmaster capability.
func (srv *Server) deleteDJHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	if err := srv.store.DeleteUser(r.Context(), userID); err != nil {
		slog.ErrorContext(r.Context(), "delete dj", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// profileResponse is the caller's own roster profile with completeness info.
type profileResponse struct {
	djResponse
	Complete          bool     `json:"complete"`
	MissingAttributes []string `json:"missing_attributes,omitempty"`
}

// myProfileHandler handles GET /api/v1/djs/me.
// Any authenticated caller may view their own profile and what is missing
// from it.
func (srv *Server) myProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := provenIdentityFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := srv.store.GetUserByID(r.Context(), id.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "get profile", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	profile := session.Profile{RealName: user.RealName, DjName: user.DjName}
	writeJSON(w, http.StatusOK, profileResponse{
		djResponse:        toDJResponse(*user),
		Complete:          profile.Complete(),
		MissingAttributes: profile.MissingAttributes(),
	})
}
