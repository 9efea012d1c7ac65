// ABOUTME: Org membership admin handlers: list members and change a member's role.
// ABOUTME: The org in the URL is a slug; handlers resolve it before touching rows.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/roles"
	"github.com/WXYC/dj-site-sub004/internal/store"
)

// memberResponse is the API representation of an org member. The role is
// reported raw plus normalized, the same dual view the roster uses for
// authority strings.
type memberResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	Rank     string `json:"rank"`
	JoinedAt string `json:"joined_at"` // RFC3339
}

func toMemberResponse(m store.OrgMember) memberResponse {
	return memberResponse{
		UserID:   m.UserID.String(),
		Email:    m.Email,
		Username: m.Username,
		Role:     m.Role,
		Rank:     roles.Normalize(m.Role).String(),
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
}

// orgFromSlug resolves the {slug} URL param to an organization, writing the
// error response itself when resolution fails.
func (srv *Server) orgFromSlug(w http.ResponseWriter, r *http.Request) *store.Organization {
	slug := chi.URLParam(r, "slug")
	org, err := srv.store.GetOrgBySlug(r.Context(), slug)
	if err != nil {
		slog.ErrorContext(r.Context(), "resolve org slug", "slug", slug, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil
	}
	if org == nil {
		http.Error(w, "organization not found", http.StatusNotFound)
		return nil
	}
	return org
}

// listMembersHandler handles GET /api/v1/orgs/{slug}/members.
// Requires at least StationManager (enforced by Require middleware).
func (srv *Server) listMembersHandler(w http.ResponseWriter, r *http.Request) {
	org := srv.orgFromSlug(w, r)
	if org == nil {
		return
	}
	members, err := srv.store.ListOrgMembers(r.Context(), org.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "list org members", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, map[string][]memberResponse{"members": out})
}

// updateMemberRoleBody is the JSON request body for PATCH member role.
type updateMemberRoleBody struct {
	Role string `json:"role"`
}

// updateMemberRoleHandler handles PATCH /api/v1/orgs/{slug}/members/{user_id}.
// Requires at least StationManager.
func (srv *Server) updateMemberRoleHandler(w http.ResponseWriter, r *http.Request) {
	org := srv.orgFromSlug(w, r)
	if org == nil {
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	var req updateMemberRoleBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		http.Error(w, "role is required", http.StatusBadRequest)
		return
	}

	if err := srv.store.UpdateOrgMemberRole(r.Context(), org.ID, userID, req.Role); err != nil {
		slog.ErrorContext(r.Context(), "update member role", "error", err)
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
