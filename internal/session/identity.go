// ABOUTME: RawSession-to-Identity projection and profile completeness checks.
// ABOUTME: Pure transforms; no I/O happens anywhere in this package.
package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/roles"
)

// RawSession is the loosely-typed payload handed over by the identity
// collaborator. Optional fields may be empty; Role is free-form. Read-only
// input to ProjectIdentity, never mutated.
type RawSession struct {
	UserID       uuid.UUID
	Email        string
	Username     string
	Name         string
	Role         string
	Capabilities []string
}

// Identity is the normalized, request-scoped shape the authorization engine
// operates on. Built fresh from the raw session on every request and owned by
// that request; never persisted or shared.
type Identity struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	Role         roles.Role
	Capabilities roles.CapabilitySet
}

// present reports whether a string attribute counts as populated: non-empty
// after trimming. A pure-whitespace value is absent; "0" is present. Naive
// falsy checks get both of those wrong.
func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ProjectIdentity converts a raw session into an Identity. The display name
// uses a fixed precedence (username, then name, then the primary email) where
// each candidate must be present (non-whitespace), not merely non-empty.
// The session role string goes through the normalizer; absent maps to
// RoleNone. nil input (no session) projects to the zero Identity; callers
// distinguish "no session" by the nil RawSession, not by inspecting fields.
func ProjectIdentity(s *RawSession) Identity {
	if s == nil {
		return Identity{}
	}
	display := s.Email
	switch {
	case present(s.Username):
		display = strings.TrimSpace(s.Username)
	case present(s.Name):
		display = strings.TrimSpace(s.Name)
	}
	return Identity{
		ID:           s.UserID,
		Email:        s.Email,
		DisplayName:  display,
		Role:         roles.Normalize(s.Role),
		Capabilities: roles.NewCapabilitySet(s.Capabilities...),
	}
}

// Profile holds the roster attributes a DJ must fill in before going on air.
type Profile struct {
	RealName string
	DjName   string
}

// MissingAttributes returns the names of required attributes that are absent
// (empty or whitespace-only after trimming). Only genuinely missing fields
// are reported; a present field never piggybacks onto the list.
func (p Profile) MissingAttributes() []string {
	var missing []string
	if !present(p.RealName) {
		missing = append(missing, "realName")
	}
	if !present(p.DjName) {
		missing = append(missing, "djName")
	}
	return missing
}

// Complete reports whether every required profile attribute is present.
func (p Profile) Complete() bool {
	return len(p.MissingAttributes()) == 0
}
