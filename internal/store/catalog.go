// ABOUTME: Store methods for the record-library catalog. The search endpoint
// ABOUTME: composes its filter set dynamically with squirrel.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Album is an albums row.
type Album struct {
	ID          uuid.UUID
	Artist      string
	Title       string
	Genre       string
	Format      string
	LibraryCode string
	AddedAt     time.Time
}

// CatalogFilter narrows a catalog search. Empty fields are not applied.
type CatalogFilter struct {
	Artist string // case-insensitive substring
	Title  string // case-insensitive substring
	Genre  string // exact, case-insensitive
	Limit  int32
	Offset int32
}

// SearchCatalog returns albums matching the filter, ordered by artist then title.
func (s *Store) SearchCatalog(ctx context.Context, f CatalogFilter) ([]Album, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := psql.Select("id", "artist", "title", "genre", "format", "library_code", "added_at").
		From("albums").
		OrderBy("lower(artist)", "lower(title)").
		Limit(uint64(limit)).
		Offset(uint64(f.Offset))
	if f.Artist != "" {
		q = q.Where(squirrel.ILike{"artist": "%" + f.Artist + "%"})
	}
	if f.Title != "" {
		q = q.Where(squirrel.ILike{"title": "%" + f.Title + "%"})
	}
	if f.Genre != "" {
		q = q.Where("lower(genre) = lower(?)", f.Genre)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.Artist, &a.Title, &a.Genre, &a.Format, &a.LibraryCode, &a.AddedAt); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	return albums, nil
}

// GetAlbum returns the album with the given id, or (nil, nil) if not found.
func (s *Store) GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error) {
	var a Album
	err := s.pool.QueryRow(ctx,
		`SELECT id, artist, title, genre, format, library_code, added_at
		 FROM albums WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Artist, &a.Title, &a.Genre, &a.Format, &a.LibraryCode, &a.AddedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}
	return &a, nil
}

// AddAlbum inserts a catalog row and returns it.
func (s *Store) AddAlbum(ctx context.Context, artist, title, genre, format, libraryCode string) (*Album, error) {
	var a Album
	err := s.pool.QueryRow(ctx,
		`INSERT INTO albums (artist, title, genre, format, library_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, artist, title, genre, format, library_code, added_at`,
		artist, title, genre, format, libraryCode,
	).Scan(&a.ID, &a.Artist, &a.Title, &a.Genre, &a.Format, &a.LibraryCode, &a.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("add album: %w", err)
	}
	return &a, nil
}
