// Package store provides the data access layer over a pgx connection pool.
// Fixed-shape queries are written directly against pgx; the catalog search
// builds its dynamic filter set with squirrel.
package store

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql is the shared squirrel builder configured for Postgres placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store is the central data access object.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying pgxpool for callers that need direct access
// (healthz ping, test setup).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }
