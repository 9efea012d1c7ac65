// ABOUTME: WithSession middleware projects the session cookie into an Identity.
// ABOUTME: Pure per-request transform; no I/O and no enforcement happens here.
package api

import (
	"context"
	"net/http"

	"github.com/WXYC/dj-site-sub004/internal/session"
)

// WithSession returns a middleware that reads the session cookie, projects it
// into a normalized Identity, and stores it in the request context. Requests
// without a usable session pass through with no identity; enforcement is
// Require's job, so public routes stay cheap.
func (srv *Server) WithSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := session.FromRequest(r, []byte(srv.cfg.SessionSecret))
			if raw == nil {
				next.ServeHTTP(w, r)
				return
			}
			id := session.ProjectIdentity(raw)
			ctx := context.WithValue(r.Context(), ctxIdentity, &id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFrom returns the projected identity for the request, or nil when
// the request is anonymous.
func identityFrom(r *http.Request) *session.Identity {
	id, _ := r.Context().Value(ctxIdentity).(*session.Identity)
	return id
}

// provenIdentityFrom returns the verdict-proven identity injected by Require.
// ok is false on routes that never passed through Require.
func provenIdentityFrom(r *http.Request) (session.Identity, bool) {
	id, ok := r.Context().Value(ctxProvenIdentity).(session.Identity)
	return id, ok
}
