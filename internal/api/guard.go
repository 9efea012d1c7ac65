// ABOUTME: Guard maps an authorization verdict onto an HTTP effect.
// ABOUTME: No decision logic lives here, only the mapping to redirect/401/403.
package api

import (
	"net/http"
	"net/url"

	"github.com/WXYC/dj-site-sub004/internal/authz"
)

// GuardMode selects how a failed verdict is surfaced to the caller.
type GuardMode int

const (
	// GuardRedirect is for browser-facing routes: redirect to login or home.
	GuardRedirect GuardMode = iota
	// GuardAPI is for JSON routes: structured 401/403 bodies.
	GuardAPI
)

// defaultRedirectHome is where forbidden browser requests land when no
// destination is configured.
const defaultRedirectHome = "/dashboard"

// errorBody is the JSON body for guard failures in API mode.
type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// Guard turns an unauthorized verdict into its caller-visible effect.
// Authorized verdicts are a no-op: the middleware continues the chain itself.
//
//   - NotAuthenticated, redirect mode: 302 to the login path carrying the
//     original URL in return_to so the identity collaborator can send the
//     user back after signing in.
//   - NotAuthenticated, api mode: 401.
//   - InsufficientRole / MissingCapability, redirect mode: 302 to the
//     configured home (hard-coded default when unset).
//   - InsufficientRole / MissingCapability, api mode: 403.
func (srv *Server) Guard(w http.ResponseWriter, r *http.Request, v authz.Verdict, mode GuardMode) {
	if v.Authorized() {
		return
	}

	if mode == GuardRedirect {
		if v.Reason() == authz.ReasonNotAuthenticated {
			login := srv.cfg.LoginPath + "?return_to=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, login, http.StatusFound)
			return
		}
		home := srv.cfg.RedirectHome
		if home == "" {
			home = defaultRedirectHome
		}
		http.Redirect(w, r, home, http.StatusFound)
		return
	}

	if v.Reason() == authz.ReasonNotAuthenticated {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Reason: v.Reason().String()})
		return
	}
	writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden", Reason: v.Reason().String()})
}
