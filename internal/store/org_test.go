// ABOUTME: Integration tests for organization and membership store methods,
// ABOUTME: including the directory contract used by role resolution.
package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/WXYC/dj-site-sub004/internal/testutil"
)

func TestOrgLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	org, err := db.CreateOrg(ctx, "wxyc", "WXYC 89.3 FM")
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	if org.Slug != "wxyc" || org.Name != "WXYC 89.3 FM" {
		t.Errorf("created org = %+v, want slug wxyc / name WXYC 89.3 FM", org)
	}
	if org.ID == uuid.Nil {
		t.Error("created org has nil id")
	}

	t.Run("get by slug", func(t *testing.T) {
		got, err := db.GetOrgBySlug(ctx, "wxyc")
		if err != nil {
			t.Fatalf("get org by slug: %v", err)
		}
		if got == nil || got.ID != org.ID {
			t.Errorf("got %+v, want id %s", got, org.ID)
		}
	})

	t.Run("get by unknown slug is nil, nil", func(t *testing.T) {
		got, err := db.GetOrgBySlug(ctx, "wknc")
		if err != nil {
			t.Fatalf("get org by slug: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil for unknown slug", got)
		}
	})

	t.Run("resolve organization id", func(t *testing.T) {
		id, err := db.ResolveOrganizationID(ctx, "wxyc")
		if err != nil {
			t.Fatalf("resolve org id: %v", err)
		}
		if id == nil || *id != org.ID.String() {
			t.Errorf("resolved id = %v, want %s", id, org.ID)
		}

		missing, err := db.ResolveOrganizationID(ctx, "wknc")
		if err != nil {
			t.Fatalf("resolve unknown slug: %v", err)
		}
		if missing != nil {
			t.Errorf("resolved id for unknown slug = %q, want nil", *missing)
		}
	})
}

func TestOrgMembership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	org, err := db.CreateOrg(ctx, "wxyc", "WXYC 89.3 FM")
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	user, err := db.CreateUser(ctx, "dj@wxyc.test", "djtest", "DJ")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	// Role strings are stored exactly as given; normalization happens on read.
	if err := db.CreateOrgMember(ctx, org.ID, user.ID, "musicDirector"); err != nil {
		t.Fatalf("create member: %v", err)
	}

	t.Run("membership role round-trips raw", func(t *testing.T) {
		role, err := db.GetMembershipRole(ctx, user.ID, org.ID.String())
		if err != nil {
			t.Fatalf("get membership role: %v", err)
		}
		if role == nil || *role != "musicDirector" {
			t.Errorf("role = %v, want raw musicDirector", role)
		}
	})

	t.Run("no membership is nil, nil", func(t *testing.T) {
		stranger, err := db.CreateUser(ctx, "stranger@wxyc.test", "stranger", "NO")
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		role, err := db.GetMembershipRole(ctx, stranger.ID, org.ID.String())
		if err != nil {
			t.Fatalf("get membership role: %v", err)
		}
		if role != nil {
			t.Errorf("role = %q, want nil for non-member", *role)
		}
	})

	t.Run("non-uuid org id is nil, nil", func(t *testing.T) {
		role, err := db.GetMembershipRole(ctx, user.ID, "wxyc")
		if err != nil {
			t.Fatalf("get membership role: %v", err)
		}
		if role != nil {
			t.Errorf("role = %q, want nil when org id is not a uuid", *role)
		}
	})

	t.Run("update role", func(t *testing.T) {
		if err := db.UpdateOrgMemberRole(ctx, org.ID, user.ID, "stationManager"); err != nil {
			t.Fatalf("update member role: %v", err)
		}
		role, err := db.GetMembershipRole(ctx, user.ID, org.ID.String())
		if err != nil {
			t.Fatalf("get membership role: %v", err)
		}
		if role == nil || *role != "stationManager" {
			t.Errorf("role = %v, want stationManager after update", role)
		}
	})

	t.Run("update missing membership is ErrNoRows", func(t *testing.T) {
		err := db.UpdateOrgMemberRole(ctx, org.ID, uuid.New(), "dj")
		if !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("err = %v, want wrapped pgx.ErrNoRows", err)
		}
	})

	t.Run("list members joins user fields", func(t *testing.T) {
		members, err := db.ListOrgMembers(ctx, org.ID)
		if err != nil {
			t.Fatalf("list members: %v", err)
		}
		if len(members) != 1 {
			t.Fatalf("got %d members, want 1", len(members))
		}
		m := members[0]
		if m.UserID != user.ID || m.Email != "dj@wxyc.test" || m.Username != "djtest" {
			t.Errorf("member = %+v, want joined user fields", m)
		}
		if m.Role != "stationManager" {
			t.Errorf("member role = %q, want stationManager", m.Role)
		}
	})

	t.Run("remove member", func(t *testing.T) {
		if err := db.RemoveOrgMember(ctx, org.ID, user.ID); err != nil {
			t.Fatalf("remove member: %v", err)
		}
		role, err := db.GetMembershipRole(ctx, user.ID, org.ID.String())
		if err != nil {
			t.Fatalf("get membership role: %v", err)
		}
		if role != nil {
			t.Errorf("role = %q, want nil after removal", *role)
		}
	})
}
