// ABOUTME: Store methods for the DJ roster: users, legacy authority, capabilities.
// ABOUTME: authority and capability strings are stored raw and normalized on read.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User is a users row. Authority is the legacy flat role string; Capabilities
// hold independent grant tokens. Both are free-form at rest.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	RealName     string
	DjName       string
	Authority    string
	Capabilities []string
	CreatedAt    time.Time
}

const userColumns = `id, email, username, real_name, dj_name, authority, capabilities, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.RealName, &u.DjName,
		&u.Authority, &u.Capabilities, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and returns the row.
func (s *Store) CreateUser(ctx context.Context, email, username, authority string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`INSERT INTO users (email, username, authority) VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, username, authority,
	))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByID returns the user with the given id, or (nil, nil) if not found.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// ListDJs returns every roster user ordered by username. No authority
// filtering happens here or in the roster view: admins need to see users
// whose legacy authority strings no longer normalize to any rank.
func (s *Store) ListDJs(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username, email`,
	)
	if err != nil {
		return nil, fmt.Errorf("list djs: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.RealName, &u.DjName,
			&u.Authority, &u.Capabilities, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list djs: %w", err)
	}
	return users, nil
}

// UpdateUserAuthority changes a user's legacy authority string. Returns
// (nil, nil) if the user does not exist.
func (s *Store) UpdateUserAuthority(ctx context.Context, id uuid.UUID, authority string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET authority = $2 WHERE id = $1 RETURNING `+userColumns,
		id, authority,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user authority: %w", err)
	}
	return u, nil
}

// UpdateUserProfile sets the roster profile fields. Returns (nil, nil) if the
// user does not exist.
func (s *Store) UpdateUserProfile(ctx context.Context, id uuid.UUID, realName, djName string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET real_name = $2, dj_name = $3 WHERE id = $1 RETURNING `+userColumns,
		id, realName, djName,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user from the roster.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
