// ABOUTME: Capability grants that are orthogonal to the Role hierarchy.
// ABOUTME: Holding a capability never implies a role level, and vice versa.
package roles

// Capability is an independent boolean grant layered on top of Role.
// The set is closed and unordered: a user either holds a capability or does
// not, and no capability compares to another.
type Capability string

const (
	CapabilityEditor    Capability = "editor"    // can edit site content
	CapabilityWebmaster Capability = "webmaster" // can administer the site itself
)

// ParseCapability maps an externally-sourced capability string onto the
// closed set. ok is false for anything unrecognized; unknown grants are
// dropped, never invented.
func ParseCapability(s string) (Capability, bool) {
	switch Capability(canonicalToken(s)) {
	case CapabilityEditor:
		return CapabilityEditor, true
	case CapabilityWebmaster:
		return CapabilityWebmaster, true
	default:
		return "", false
	}
}

// CapabilitySet is an unordered membership set of capabilities.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from externally-sourced capability strings,
// silently dropping unrecognized values.
func NewCapabilitySet(raw ...string) CapabilitySet {
	set := make(CapabilitySet, len(raw))
	for _, s := range raw {
		if c, ok := ParseCapability(s); ok {
			set[c] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set contains c.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Strings returns the capabilities as canonical tokens, for persistence and
// API responses. Order is not defined.
func (s CapabilitySet) Strings() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	return out
}
