// ABOUTME: Tests for the org role resolver: override, fallback, and the
// ABOUTME: zero-I/O guarantee on the unscoped path, via a call-counting fake.
package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/roles"
	"github.com/WXYC/dj-site-sub004/internal/session"
)

// fakeDirectory counts calls so tests can assert on I/O behavior.
type fakeDirectory struct {
	slugCalls       int
	membershipCalls int

	slugResult  *string
	slugErr     error
	role        *string
	roleErr     error
	lastOrgID   string
	lastUserID  uuid.UUID
	lastSlugArg string
}

func (f *fakeDirectory) ResolveOrganizationID(_ context.Context, slug string) (*string, error) {
	f.slugCalls++
	f.lastSlugArg = slug
	return f.slugResult, f.slugErr
}

func (f *fakeDirectory) GetMembershipRole(_ context.Context, userID uuid.UUID, orgID string) (*string, error) {
	f.membershipCalls++
	f.lastUserID = userID
	f.lastOrgID = orgID
	return f.role, f.roleErr
}

func strptr(s string) *string { return &s }

func djIdentity() session.Identity {
	return session.Identity{ID: uuid.New(), Email: "carol@wxyc.org", Role: roles.RoleDj}
}

func TestResolveRoleUnscopedDoesNoIO(t *testing.T) {
	t.Parallel()
	dir := &fakeDirectory{role: strptr("stationmanager")}
	rv := NewResolver(dir, "")

	got := rv.ResolveRole(context.Background(), djIdentity())
	if got != roles.RoleDj {
		t.Errorf("ResolveRole = %v, want session role RoleDj", got)
	}
	if dir.slugCalls != 0 || dir.membershipCalls != 0 {
		t.Errorf("unscoped resolve performed I/O: slug=%d membership=%d", dir.slugCalls, dir.membershipCalls)
	}
}

func TestResolveRoleUUIDScopeSkipsSlugLookup(t *testing.T) {
	t.Parallel()
	orgID := uuid.New().String()
	dir := &fakeDirectory{role: strptr("music_director")}
	rv := NewResolver(dir, orgID)

	id := djIdentity()
	got := rv.ResolveRole(context.Background(), id)
	if got != roles.RoleMusicDirector {
		t.Errorf("ResolveRole = %v, want RoleMusicDirector from membership", got)
	}
	if dir.slugCalls != 0 {
		t.Errorf("slug lookup called %d times for a UUID scope, want 0", dir.slugCalls)
	}
	if dir.membershipCalls != 1 {
		t.Errorf("membership lookup called %d times, want 1", dir.membershipCalls)
	}
	if dir.lastOrgID != orgID || dir.lastUserID != id.ID {
		t.Errorf("membership queried with (%v, %v), want (%v, %v)", dir.lastUserID, dir.lastOrgID, id.ID, orgID)
	}
}

func TestResolveRoleSlugTranslation(t *testing.T) {
	t.Parallel()
	internal := uuid.New().String()
	dir := &fakeDirectory{slugResult: strptr(internal), role: strptr("station-manager")}
	rv := NewResolver(dir, "wxyc")

	got := rv.ResolveRole(context.Background(), djIdentity())
	if got != roles.RoleStationManager {
		t.Errorf("ResolveRole = %v, want RoleStationManager", got)
	}
	if dir.lastSlugArg != "wxyc" {
		t.Errorf("slug lookup arg = %q, want %q", dir.lastSlugArg, "wxyc")
	}
	if dir.lastOrgID != internal {
		t.Errorf("membership queried with org %q, want translated id %q", dir.lastOrgID, internal)
	}
}

// Slug translation failing (error or not found) degrades to using the
// configured value as the org id, not to failing the resolution.
func TestResolveRoleSlugLookupFailureDegrades(t *testing.T) {
	t.Parallel()
	for name, dir := range map[string]*fakeDirectory{
		"error":     {slugErr: errors.New("directory down"), role: strptr("dj")},
		"not found": {slugResult: nil, role: strptr("dj")},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rv := NewResolver(dir, "wxyc")
			got := rv.ResolveRole(context.Background(), djIdentity())
			if got != roles.RoleDj {
				t.Errorf("ResolveRole = %v, want RoleDj", got)
			}
			if dir.lastOrgID != "wxyc" {
				t.Errorf("membership queried with %q, want raw configured value %q", dir.lastOrgID, "wxyc")
			}
		})
	}
}

// Membership lookup failure or absence must yield exactly the session role.
func TestResolveRoleMembershipFallback(t *testing.T) {
	t.Parallel()
	scope := uuid.New().String()
	for name, dir := range map[string]*fakeDirectory{
		"lookup error": {roleErr: errors.New("timeout")},
		"no row":       {role: nil},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rv := NewResolver(dir, scope)
			id := session.Identity{ID: uuid.New(), Role: roles.RoleMusicDirector}
			if got := rv.ResolveRole(context.Background(), id); got != roles.RoleMusicDirector {
				t.Errorf("ResolveRole = %v, want session role RoleMusicDirector", got)
			}
		})
	}
}

// A found membership role overrides entirely, even downward.
func TestResolveRoleMembershipOverridesDownward(t *testing.T) {
	t.Parallel()
	dir := &fakeDirectory{role: strptr("member")}
	rv := NewResolver(dir, uuid.New().String())

	id := session.Identity{ID: uuid.New(), Role: roles.RoleStationManager}
	if got := rv.ResolveRole(context.Background(), id); got != roles.RoleNone {
		t.Errorf("ResolveRole = %v, want RoleNone (membership role wins outright)", got)
	}
}
