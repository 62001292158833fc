package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	// RoleOwner administers a tenant: switch servers and reports.
	RoleOwner = "owner"
	// RoleAgent places calls.
	RoleAgent = "agent"
	// RoleAnalyst reads reports.
	RoleAnalyst    = "analyst"
	RoleSuperAdmin = "super_admin"
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

// IsKnown reports whether role is one of the roles above.
func IsKnown(role string) bool {
	switch role {
	case RoleOwner, RoleAgent, RoleAnalyst, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
