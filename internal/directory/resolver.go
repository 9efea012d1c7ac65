// ABOUTME: Organization role resolution: prefers the org membership role over
// ABOUTME: the session-embedded role, degrading to the session role on any failure.
package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/roles"
	"github.com/WXYC/dj-site-sub004/internal/session"
)

// Directory is the organization-directory collaborator. Implementations
// return (nil, nil) for "not found"; errors are reserved for lookup faults.
// The store provides the production implementation; tests supply fakes.
type Directory interface {
	// ResolveOrganizationID translates a human-readable slug to the internal
	// organization id.
	ResolveOrganizationID(ctx context.Context, slug string) (*string, error)
	// GetMembershipRole returns the free-form role string for userID's
	// membership in orgID. orgID is a string because a degraded resolution
	// may pass a value that never translated to an internal id.
	GetMembershipRole(ctx context.Context, userID uuid.UUID, orgID string) (*string, error)
}

// Resolver produces the one canonical role for an authorization decision.
// When an organization scope is configured, the caller's membership role in
// that organization wins; otherwise, and on every failure path, the
// session-embedded role is the answer. One lookup per decision, no caching:
// role changes take effect on the next request.
type Resolver struct {
	dir Directory
	// scope is the configured organization, an internal id or a slug.
	// Empty means the deployment is not org-scoped.
	scope string
}

// NewResolver creates a Resolver. scope may be empty, an org UUID, or a slug.
func NewResolver(dir Directory, scope string) *Resolver {
	return &Resolver{dir: dir, scope: scope}
}

// ResolveRole returns the role to use for this decision. It never fails: a
// directory outage degrades to the session-embedded role rather than locking
// everyone out. The unscoped path performs no I/O at all.
func (rv *Resolver) ResolveRole(ctx context.Context, id session.Identity) roles.Role {
	if rv.scope == "" {
		return id.Role
	}

	orgID := rv.scope
	if _, err := uuid.Parse(rv.scope); err != nil {
		// Configured value is a slug; one lookup translates it. If the
		// translation fails, keep the configured value as a best-effort id;
		// the membership query below simply finds nothing.
		resolved, err := rv.dir.ResolveOrganizationID(ctx, rv.scope)
		if err != nil {
			slog.WarnContext(ctx, "org slug lookup failed, using configured value as id",
				"slug", rv.scope, "error", err)
		} else if resolved != nil {
			orgID = *resolved
		}
	}

	roleStr, err := rv.dir.GetMembershipRole(ctx, id.ID, orgID)
	if err != nil {
		slog.WarnContext(ctx, "membership lookup failed, falling back to session role",
			"user_id", id.ID, "org_id", orgID, "error", err)
		return id.Role
	}
	if roleStr == nil {
		return id.Role
	}
	// A found membership role replaces the session role entirely, even when
	// it normalizes lower.
	return roles.Normalize(*roleStr)
}
