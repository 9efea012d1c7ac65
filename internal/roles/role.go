// ABOUTME: Ordered Role hierarchy with AtLeast comparison for authorization checks.
// ABOUTME: RoleNone < RoleDj < RoleMusicDirector < RoleStationManager < RoleAdmin.
package roles

// Role represents a point on the station's privilege ladder. Higher integer
// values grant more permissions, so satisfaction checks are a single integer
// comparison. This ordering is the only place role precedence is defined;
// every caller compares through AtLeast rather than re-implementing it.
type Role int

// Role permission level constants, ordered from least to most privileged.
const (
	RoleNone           Role = 0 // authenticated but no station privileges
	RoleDj             Role = 1 // can log flowsheet entries
	RoleMusicDirector  Role = 2 // can curate the catalog and flowsheet
	RoleStationManager Role = 3 // can manage the DJ roster and org members
	RoleAdmin          Role = 4 // site administration
)

// AtLeast reports whether candidate satisfies a minimum role requirement.
// Exact matches satisfy: the comparison is >=, not >.
func AtLeast(candidate, required Role) bool {
	return candidate >= required
}

// String returns the canonical lower-case token for the role.
func (r Role) String() string {
	switch r {
	case RoleDj:
		return "dj"
	case RoleMusicDirector:
		return "musicdirector"
	case RoleStationManager:
		return "stationmanager"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}
