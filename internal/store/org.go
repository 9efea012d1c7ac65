// ABOUTME: Store methods for organizations and memberships, including the
// ABOUTME: directory.Directory implementation used by role resolution.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Organization is an organizations row.
type Organization struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
}

// OrgMember is a membership row joined with user display fields.
type OrgMember struct {
	UserID   uuid.UUID
	Email    string
	Username string
	Role     string
	JoinedAt time.Time
}

// CreateOrg inserts a new organization row and returns it.
func (s *Store) CreateOrg(ctx context.Context, slug, name string) (*Organization, error) {
	var org Organization
	err := s.pool.QueryRow(ctx,
		`INSERT INTO organizations (slug, name) VALUES ($1, $2)
		 RETURNING id, slug, name, created_at`,
		slug, name,
	).Scan(&org.ID, &org.Slug, &org.Name, &org.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create org: %w", err)
	}
	return &org, nil
}

// GetOrgBySlug returns the org with the given slug, or (nil, nil) if not found.
func (s *Store) GetOrgBySlug(ctx context.Context, slug string) (*Organization, error) {
	var org Organization
	err := s.pool.QueryRow(ctx,
		`SELECT id, slug, name, created_at FROM organizations WHERE slug = $1`,
		slug,
	).Scan(&org.ID, &org.Slug, &org.Name, &org.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get org by slug: %w", err)
	}
	return &org, nil
}

// ResolveOrganizationID translates a slug to the internal org id string.
// Returns (nil, nil) when no org has that slug. Part of directory.Directory.
func (s *Store) ResolveOrganizationID(ctx context.Context, slug string) (*string, error) {
	org, err := s.GetOrgBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	id := org.ID.String()
	return &id, nil
}

// GetMembershipRole returns the free-form role string for userID's membership
// in orgID, or (nil, nil) if there is no membership. An orgID that does not
// parse as a UUID cannot match any row and resolves to no membership; this
// is the degraded path where a slug never translated to an internal id.
// Part of directory.Directory.
func (s *Store) GetMembershipRole(ctx context.Context, userID uuid.UUID, orgID string) (*string, error) {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return nil, nil
	}
	var role string
	err = s.pool.QueryRow(ctx,
		`SELECT role FROM org_members WHERE org_id = $1 AND user_id = $2`,
		orgUUID, userID,
	).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get membership role: %w", err)
	}
	return &role, nil
}

// CreateOrgMember adds a user to an org with the given role string.
func (s *Store) CreateOrgMember(ctx context.Context, orgID, userID uuid.UUID, role string) error {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO org_members (org_id, user_id, role) VALUES ($1, $2, $3)`,
		orgID, userID, role,
	); err != nil {
		return fmt.Errorf("create org member: %w", err)
	}
	return nil
}

// UpdateOrgMemberRole changes the role of userID in orgID. Returns
// pgx.ErrNoRows wrapped if there is no such membership.
func (s *Store) UpdateOrgMemberRole(ctx context.Context, orgID, userID uuid.UUID, role string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE org_members SET role = $3 WHERE org_id = $1 AND user_id = $2`,
		orgID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("update org member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update org member role: %w", pgx.ErrNoRows)
	}
	return nil
}

// ListOrgMembers returns all members of an org ordered by join time.
func (s *Store) ListOrgMembers(ctx context.Context, orgID uuid.UUID) ([]OrgMember, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.user_id, u.email, u.username, m.role, m.created_at
		 FROM org_members m JOIN users u ON u.id = m.user_id
		 WHERE m.org_id = $1 ORDER BY m.created_at`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("list org members: %w", err)
	}
	defer rows.Close()

	var members []OrgMember
	for rows.Next() {
		var m OrgMember
		if err := rows.Scan(&m.UserID, &m.Email, &m.Username, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan org member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list org members: %w", err)
	}
	return members, nil
}

// RemoveOrgMember removes userID from orgID.
func (s *Store) RemoveOrgMember(ctx context.Context, orgID, userID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM org_members WHERE org_id = $1 AND user_id = $2`,
		orgID, userID,
	); err != nil {
		return fmt.Errorf("remove org member: %w", err)
	}
	return nil
}
