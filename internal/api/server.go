// ABOUTME: HTTP server struct, constructor, and handler wiring for the dj-site API.
// ABOUTME: Holds the store, config, role resolver, and rate limiter used by handlers.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/WXYC/dj-site-sub004/internal/authz"
	"github.com/WXYC/dj-site-sub004/internal/config"
	"github.com/WXYC/dj-site-sub004/internal/directory"
	"github.com/WXYC/dj-site-sub004/internal/roles"
	"github.com/WXYC/dj-site-sub004/internal/store"
)

// Server holds the dependencies for the HTTP layer.
type Server struct {
	store       *store.Store
	cfg         *config.Config
	resolver    *directory.Resolver
	rateLimiter *ipRateLimiter
}

// NewServer creates a Server. The store doubles as the organization-directory
// collaborator for role resolution.
func NewServer(s *store.Store, cfg *config.Config) *Server {
	evictTTL := cfg.RateLimitEvictTTL
	if evictTTL == 0 {
		evictTTL = 15 * time.Minute
	}
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = perMinute
	}
	rl := newIPRateLimiter(rate.Limit(float64(perMinute)/60), burst, evictTTL)
	return &Server{
		store:       s,
		cfg:         cfg,
		resolver:    directory.NewResolver(s, cfg.OrgScope),
		rateLimiter: rl,
	}
}

// Handler builds and returns the http.Handler.
func (srv *Server) Handler() http.Handler {
	var db *pgxpool.Pool
	if srv.store != nil {
		db = srv.store.Pool()
	}
	r := chi.NewRouter()

	// Security headers first so they appear on every response including errors.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// 1 MB global body limit protects against OOM from large request bodies.
	r.Use(middleware.RequestSize(1 << 20))
	r.Use(middleware.Recoverer)

	// ── Infrastructure endpoints ──────────────────────────────────────────────
	r.Get("/healthz", healthzHandler(db))
	r.Handle("/metrics", promhttp.Handler())

	// ── API v1 sub-router ─────────────────────────────────────────────────────
	apiRouter := chi.NewRouter()
	apiRouter.Use(srv.WithSession())

	// Public reads use huma (OpenAPI 3.1); guarded routes use chi so the
	// Require middleware composes per route group.
	humaConfig := huma.DefaultConfig("WXYC DJ Site API", "0.1.0")
	humaConfig.Info.Description = "Catalog, flowsheet, and roster API for the station site"
	hapi := humachi.New(apiRouter, humaConfig)
	registerCatalogRoutes(hapi, srv.store)
	registerFlowsheetReadRoutes(hapi, srv.store)

	// Flowsheet writes.
	apiRouter.With(srv.Require(authz.Requirement{Role: roles.RoleDj}, GuardAPI)).
		Post("/flowsheet", srv.addFlowsheetEntryHandler)
	apiRouter.With(srv.Require(authz.Requirement{Role: roles.RoleMusicDirector}, GuardAPI)).
		Delete("/flowsheet/{entry_id}", srv.deleteFlowsheetEntryHandler)

	// DJ roster admin.
	apiRouter.Route("/djs", func(r chi.Router) {
		r.With(srv.Require(authz.Requirement{}, GuardAPI)).Get("/me", srv.myProfileHandler)
		r.With(srv.Require(authz.Requirement{Role: roles.RoleMusicDirector}, GuardAPI)).Get("/", srv.listDJsHandler)
		r.With(srv.Require(authz.Requirement{Role: roles.RoleStationManager}, GuardAPI)).
			Patch("/{user_id}", srv.updateAuthorityHandler)
		r.With(srv.Require(authz.Requirement{Role: roles.RoleStationManager, Capability: roles.CapabilityWebmaster}, GuardAPI)).
			Delete("/{user_id}", srv.deleteDJHandler)
	})

	// Org membership admin.
	apiRouter.Route("/orgs/{slug}/members", func(r chi.Router) {
		r.Use(srv.Require(authz.Requirement{Role: roles.RoleStationManager}, GuardAPI))
		r.Get("/", srv.listMembersHandler)
		r.Patch("/{user_id}", srv.updateMemberRoleHandler)
	})

	// Browser-facing management page uses redirect-mode guarding.
	apiRouter.With(srv.Require(authz.Requirement{Role: roles.RoleMusicDirector}, GuardRedirect)).
		Get("/manage/flowsheet", srv.manageFlowsheetHandler)

	// Dev-only session mint so the stack is exercisable without the external
	// identity provider. Never mounted outside development.
	if srv.cfg.IsDevelopment() {
		apiRouter.With(srv.authRateLimit()).Post("/auth/session", srv.mintSessionHandler)
	}

	r.Mount("/api/v1", apiRouter)

	return r
}

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writeJSON: encode failed", "error", err)
	}
}

// healthResponse is the JSON body for /healthz.
type healthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db,omitempty"`
}

// healthzHandler returns 200 {"status":"ok"} when the DB is reachable,
// or 503 {"status":"degraded","db":"unavailable"} when it is not.
func healthzHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		statusCode := http.StatusOK

		if db == nil {
			resp.Status = "degraded"
			resp.DB = "unavailable"
			statusCode = http.StatusServiceUnavailable
		} else if err := db.Ping(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "healthz: db ping failed", "error", err)
			resp.Status = "degraded"
			resp.DB = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.ErrorContext(r.Context(), "healthz: failed to encode response", "error", err)
		}
	}
}
