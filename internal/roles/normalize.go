// ABOUTME: Normalization of externally-sourced role strings onto the Role ladder.
// ABOUTME: Two mapping tables exist on purpose; see the note on the "admin" token.
package roles

import "strings"

// canonicalToken lower-cases s and strips whitespace and the separators that
// show up in externally-sourced role strings, so "STATION_MANAGER",
// "station-manager", and "stationManager" all collapse to "stationmanager".
func canonicalToken(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// sessionRoleTokens maps canonical tokens from session and org-membership
// role strings onto the Role ladder.
//
// NOTE: "admin" deliberately maps to RoleStationManager here; it is a legacy
// alias from the organization directory, where "admin" and "owner" both meant
// the person running the station. authorityTokens below maps the same string
// to RoleAdmin. The two tables disagree on purpose: they mirror two
// independent legacy mappings, and unifying them needs a product decision,
// not a code change. Do not merge them.
var sessionRoleTokens = map[string]Role{
	"stationmanager": RoleStationManager,
	"owner":          RoleStationManager,
	"admin":          RoleStationManager,
	"musicdirector":  RoleMusicDirector,
	"dj":             RoleDj,
	"member":         RoleNone,
	"user":           RoleNone,
}

// authorityTokens maps the legacy flat authority column on the user record.
// Here "admin" is the separate, higher site-administration tier.
var authorityTokens = map[string]Role{
	"admin":          RoleAdmin,
	"stationmanager": RoleStationManager,
	"sm":             RoleStationManager,
	"musicdirector":  RoleMusicDirector,
	"md":             RoleMusicDirector,
	"dj":             RoleDj,
	"no":             RoleNone,
}

// Normalize maps an arbitrary session or membership role string to a Role.
// It is pure and total: empty, whitespace-only, and unrecognized input all
// map to RoleNone, and it never errors.
func Normalize(s string) Role {
	return sessionRoleTokens[canonicalToken(s)]
}

// NormalizeAuthority maps a legacy user-record authority string to a Role
// using the authority table. Same totality contract as Normalize.
func NormalizeAuthority(s string) Role {
	return authorityTokens[canonicalToken(s)]
}
