package entities

import "fmt"

// Role is a fixed category of actor, the key dimension for authorization.
// The set is closed: roles are not user-extensible.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDirection    Role = "direction"
	RoleStandardUser Role = "standard-user"
)

// AllRoles lists every valid role, in display order.
var AllRoles = []Role{RoleAdmin, RoleDirection, RoleStandardUser}

// ParseRole validates a role literal received at a boundary.
// Unknown literals are rejected with an error rather than silently
// failing closed downstream.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDirection, RoleStandardUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}
