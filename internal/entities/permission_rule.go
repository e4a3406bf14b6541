package entities

import (
	"fmt"
	"time"
)

// PermissionRule is one row of the permission table: whether a role may
// perform an action on a resource category.
// Example: direction/vehicles#edit = true
// The (role, resource, action) triple is the unique key; rows are created
// on first explicit toggle and mutated in place, never deleted.
type PermissionRule struct {
	Role      Role
	Resource  Resource
	Action    Action
	Allowed   bool
	UpdatedAt time.Time
}

// PermissionKey identifies a permission rule row.
type PermissionKey struct {
	Role     Role
	Resource Resource
	Action   Action
}

// String returns a string representation of the key.
// Format: role/resource#action
func (k PermissionKey) String() string {
	return fmt.Sprintf("%s/%s#%s", k.Role, k.Resource, k.Action)
}

// Key returns the unique key of the rule.
func (r *PermissionRule) Key() PermissionKey {
	return PermissionKey{Role: r.Role, Resource: r.Resource, Action: r.Action}
}

// Validate checks that every dimension of the rule is a known enum value.
func (r *PermissionRule) Validate() error {
	if _, err := ParseRole(string(r.Role)); err != nil {
		return err
	}
	if _, err := ParseResource(string(r.Resource)); err != nil {
		return err
	}
	if _, err := ParseAction(string(r.Action)); err != nil {
		return err
	}
	return nil
}
