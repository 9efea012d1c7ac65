// ABOUTME: Require middleware resolves the caller's effective role and
// ABOUTME: enforces a Requirement, delegating failures to the guard.
package api

import (
	"context"
	"net/http"

	"github.com/WXYC/dj-site-sub004/internal/authz"
)

// Require returns a middleware that enforces req for every request. The
// caller's role is resolved fresh per decision: the org membership role wins
// when the deployment is org-scoped and the lookup succeeds, the
// session-embedded role otherwise. On success the verdict-proven identity is
// injected into the request context; on failure the guard maps the verdict
// onto mode's effect and the chain stops.
//
// Must run after WithSession.
func (srv *Server) Require(req authz.Requirement, mode GuardMode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identityFrom(r)
			if id != nil {
				// Copy before overriding: the projected identity in context
				// stays untouched for any sibling middleware.
				resolved := *id
				resolved.Role = srv.resolver.ResolveRole(r.Context(), resolved)
				id = &resolved
			}

			verdict := authz.Authorize(id, req)
			if !verdict.Authorized() {
				srv.Guard(w, r, verdict, mode)
				return
			}

			proven, _ := verdict.Identity()
			ctx := context.WithValue(r.Context(), ctxProvenIdentity, proven)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
