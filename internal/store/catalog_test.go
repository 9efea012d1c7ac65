// ABOUTME: Integration tests for the record-library catalog store methods.
package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/store"
	"github.com/WXYC/dj-site-sub004/internal/testutil"
)

func TestCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	seed := []struct{ artist, title, genre string }{
		{"Superchunk", "No Pocky for Kitty", "Rock"},
		{"Sun Ra", "Lanquidity", "Jazz"},
		{"Alice Coltrane", "Journey in Satchidananda", "Jazz"},
	}
	ids := make(map[string]uuid.UUID)
	for _, s := range seed {
		a, err := db.AddAlbum(ctx, s.artist, s.title, s.genre, "LP", "XY-1001")
		if err != nil {
			t.Fatalf("add album %s: %v", s.title, err)
		}
		ids[s.title] = a.ID
	}

	t.Run("get by id", func(t *testing.T) {
		a, err := db.GetAlbum(ctx, ids["Lanquidity"])
		if err != nil {
			t.Fatalf("get album: %v", err)
		}
		if a == nil || a.Artist != "Sun Ra" {
			t.Errorf("got %+v, want Sun Ra", a)
		}
	})

	t.Run("get unknown id is nil, nil", func(t *testing.T) {
		a, err := db.GetAlbum(ctx, uuid.New())
		if err != nil {
			t.Fatalf("get album: %v", err)
		}
		if a != nil {
			t.Errorf("got %+v, want nil", a)
		}
	})

	t.Run("artist substring is case-insensitive", func(t *testing.T) {
		albums, err := db.SearchCatalog(ctx, store.CatalogFilter{Artist: "coltrane"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(albums) != 1 || albums[0].Artist != "Alice Coltrane" {
			t.Errorf("got %+v, want only Alice Coltrane", albums)
		}
	})

	t.Run("genre filter combines with title", func(t *testing.T) {
		albums, err := db.SearchCatalog(ctx, store.CatalogFilter{Genre: "jazz", Title: "journey"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(albums) != 1 || albums[0].Title != "Journey in Satchidananda" {
			t.Errorf("got %+v, want only the Coltrane record", albums)
		}
	})

	t.Run("no filter returns all ordered by artist", func(t *testing.T) {
		albums, err := db.SearchCatalog(ctx, store.CatalogFilter{})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(albums) != 3 {
			t.Fatalf("got %d albums, want 3", len(albums))
		}
		if albums[0].Artist != "Alice Coltrane" || albums[2].Artist != "Superchunk" {
			t.Errorf("order = [%s, %s, %s]", albums[0].Artist, albums[1].Artist, albums[2].Artist)
		}
	})

	t.Run("limit and offset page the results", func(t *testing.T) {
		albums, err := db.SearchCatalog(ctx, store.CatalogFilter{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(albums) != 1 || albums[0].Artist != "Sun Ra" {
			t.Errorf("page = %+v, want only Sun Ra", albums)
		}
	})
}
