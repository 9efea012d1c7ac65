// ABOUTME: Integration tests for the DJ roster store methods.
package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/testutil"
)

func TestUserRoster(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, "ramona@wxyc.test", "ramona", "DJ")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "ramona@wxyc.test" || user.Username != "ramona" {
		t.Errorf("created user = %+v", user)
	}
	// Authority is stored exactly as given, never normalized at rest.
	if user.Authority != "DJ" {
		t.Errorf("authority = %q, want raw DJ", user.Authority)
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := db.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("got %+v, want id %s", got, user.ID)
		}
	})

	t.Run("get unknown id is nil, nil", func(t *testing.T) {
		got, err := db.GetUserByID(ctx, uuid.New())
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("update authority", func(t *testing.T) {
		got, err := db.UpdateUserAuthority(ctx, user.ID, "MD")
		if err != nil {
			t.Fatalf("update authority: %v", err)
		}
		if got == nil || got.Authority != "MD" {
			t.Errorf("got %+v, want authority MD", got)
		}
	})

	t.Run("update authority of unknown user is nil, nil", func(t *testing.T) {
		got, err := db.UpdateUserAuthority(ctx, uuid.New(), "SM")
		if err != nil {
			t.Fatalf("update authority: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("update profile", func(t *testing.T) {
		got, err := db.UpdateUserProfile(ctx, user.ID, "Ramona Q", "DJ Flowers")
		if err != nil {
			t.Fatalf("update profile: %v", err)
		}
		if got == nil || got.RealName != "Ramona Q" || got.DjName != "DJ Flowers" {
			t.Errorf("got %+v, want profile fields set", got)
		}
	})

	t.Run("list ordered by username", func(t *testing.T) {
		if _, err := db.CreateUser(ctx, "alvin@wxyc.test", "alvin", "NO"); err != nil {
			t.Fatalf("create user: %v", err)
		}
		users, err := db.ListDJs(ctx)
		if err != nil {
			t.Fatalf("list djs: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("got %d users, want 2", len(users))
		}
		if users[0].Username != "alvin" || users[1].Username != "ramona" {
			t.Errorf("order = [%s, %s], want [alvin, ramona]", users[0].Username, users[1].Username)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := db.DeleteUser(ctx, user.ID); err != nil {
			t.Fatalf("delete user: %v", err)
		}
		got, err := db.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil after delete", got)
		}
	})
}
