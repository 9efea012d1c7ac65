// ABOUTME: The authorization decision engine: Authorize(identity, requirement) Verdict.
// ABOUTME: Verdict's fields are unexported so only this package can mint an authorized one.
package authz

import (
	"github.com/WXYC/dj-site-sub004/internal/roles"
	"github.com/WXYC/dj-site-sub004/internal/session"
)

// Requirement is what a route demands: a minimum role, and optionally a
// capability. Both must hold; there is no either/or mode. The zero value
// (RoleNone, no capability) admits every authenticated identity.
type Requirement struct {
	Role roles.Role
	// Capability, when non-empty, must be held in addition to the role.
	Capability roles.Capability
}

// Reason classifies why a verdict is unauthorized.
type Reason int

const (
	ReasonNotAuthenticated Reason = iota + 1
	ReasonInsufficientRole
	ReasonMissingCapability
)

// String returns the reason as a stable token for logs and API bodies.
func (r Reason) String() string {
	switch r {
	case ReasonNotAuthenticated:
		return "not_authenticated"
	case ReasonInsufficientRole:
		return "insufficient_role"
	case ReasonMissingCapability:
		return "missing_capability"
	default:
		return "unknown"
	}
}

// Verdict is the result of one authorization decision. The zero value is
// unauthorized with no reason; the only way to obtain an authorized Verdict
// (and through it a verdict-proven Identity) is Authorize. Callers outside
// this package cannot fabricate one: the fields are unexported.
type Verdict struct {
	authorized bool
	identity   session.Identity
	reason     Reason
}

// Authorized reports whether the decision succeeded.
func (v Verdict) Authorized() bool { return v.authorized }

// Reason returns why the decision failed. Meaningless when Authorized.
func (v Verdict) Reason() Reason { return v.reason }

// Identity returns the identity proven to satisfy the requirement. ok is
// false on an unauthorized verdict, in which case the identity is zero.
func (v Verdict) Identity() (session.Identity, bool) {
	if !v.authorized {
		return session.Identity{}, false
	}
	return v.identity, true
}

// Authorize decides whether id satisfies req. id == nil means the upstream
// collaborator reported no session at all; that fails before any role
// comparison, so even a RoleNone requirement rejects the anonymous caller.
// Pure: no I/O, no side effects, deterministic for a given (id, req) pair.
func Authorize(id *session.Identity, req Requirement) Verdict {
	if id == nil {
		return Verdict{reason: ReasonNotAuthenticated}
	}
	if !roles.AtLeast(id.Role, req.Role) {
		return Verdict{reason: ReasonInsufficientRole}
	}
	if req.Capability != "" && !id.Capabilities.Has(req.Capability) {
		return Verdict{reason: ReasonMissingCapability}
	}
	return Verdict{authorized: true, identity: *id}
}
