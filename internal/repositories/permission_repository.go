package repositories

import (
	"context"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
)

// PermissionRepository defines the interface for the permission store.
type PermissionRepository interface {
	// ListAll retrieves every permission rule row. There are no filter
	// parameters: the table is small and is mirrored wholesale into memory.
	ListAll(ctx context.Context) ([]*entities.PermissionRule, error)

	// Upsert writes a single rule keyed by (role, resource, action),
	// replacing any existing row for the same key, and returns the row
	// as the store actually persisted it. Concurrent writers racing on
	// the same key resolve by last-write-wins at the store.
	Upsert(ctx context.Context, rule *entities.PermissionRule) (*entities.PermissionRule, error)
}
