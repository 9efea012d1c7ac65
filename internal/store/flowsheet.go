// ABOUTME: Store methods for the flowsheet, the station's live broadcast log.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FlowsheetEntry is one logged play.
type FlowsheetEntry struct {
	ID       uuid.UUID
	DjID     uuid.UUID
	Artist   string
	Title    string
	Album    string
	Request  bool
	PlayedAt time.Time
}

// AddFlowsheetEntry logs a play and returns the stored row.
func (s *Store) AddFlowsheetEntry(ctx context.Context, djID uuid.UUID, artist, title, album string, request bool) (*FlowsheetEntry, error) {
	var e FlowsheetEntry
	err := s.pool.QueryRow(ctx,
		`INSERT INTO flowsheet_entries (dj_id, artist, title, album, request)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, dj_id, artist, title, album, request, played_at`,
		djID, artist, title, album, request,
	).Scan(&e.ID, &e.DjID, &e.Artist, &e.Title, &e.Album, &e.Request, &e.PlayedAt)
	if err != nil {
		return nil, fmt.Errorf("add flowsheet entry: %w", err)
	}
	return &e, nil
}

// ListFlowsheet returns the most recent entries, newest first.
func (s *Store) ListFlowsheet(ctx context.Context, limit, offset int32) ([]FlowsheetEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, dj_id, artist, title, album, request, played_at
		 FROM flowsheet_entries ORDER BY played_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list flowsheet: %w", err)
	}
	defer rows.Close()

	var entries []FlowsheetEntry
	for rows.Next() {
		var e FlowsheetEntry
		if err := rows.Scan(&e.ID, &e.DjID, &e.Artist, &e.Title, &e.Album, &e.Request, &e.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan flowsheet entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flowsheet: %w", err)
	}
	return entries, nil
}

// DeleteFlowsheetEntry removes a logged play. Returns false if no row existed.
func (s *Store) DeleteFlowsheetEntry(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM flowsheet_entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete flowsheet entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
