package repositories

import (
	"context"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
)

// FleetRepository defines read-only access to the fleet dataset.
// Implementations must tolerate empty collections.
type FleetRepository interface {
	// Vehicles retrieves all vehicles.
	Vehicles(ctx context.Context) ([]*entities.Vehicle, error)

	// Documents retrieves all vehicle documents.
	Documents(ctx context.Context) ([]*entities.Document, error)

	// Checklists retrieves all pre-departure checklists.
	Checklists(ctx context.Context) ([]*entities.Checklist, error)

	// Drivers retrieves all drivers. Used for display joins only;
	// alert derivation never reads driver data.
	Drivers(ctx context.Context) ([]*entities.Driver, error)

	// Snapshot bundles the collections consumed by alert derivation.
	Snapshot(ctx context.Context) (*entities.FleetSnapshot, error)
}
