package models

// User roles, strictly ordered. The hierarchy is used for authorization on
// management endpoints; the notification lifecycle itself never looks at it.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleModerator  = "moderator"
	RoleUser       = "user"
)

// roleRank maps each role to its position in the hierarchy; higher is more
// privileged. Unknown roles rank below everything.
var roleRank = map[string]int{
	RoleSuperAdmin: 5,
	RoleAdmin:      4,
	RoleManager:    3,
	RoleModerator:  2,
	RoleUser:       1,
}

// ValidRole reports whether s names one of the five roles.
func ValidRole(s string) bool {
	_, ok := roleRank[s]
	return ok
}

// RoleAtLeast reports whether role sits at or above min in the hierarchy.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}
