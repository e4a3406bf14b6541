package entities

import "fmt"

// Resource is a protected category of fleet data subject to
// action-level permission checks.
type Resource string

const (
	ResourceVehicles           Resource = "vehicles"
	ResourceDrivers            Resource = "drivers"
	ResourceTours              Resource = "tours"
	ResourceFuelEntries        Resource = "fuel-entries"
	ResourceDocuments          Resource = "documents"
	ResourceMaintenanceEntries Resource = "maintenance-entries"
	ResourceChecklists         Resource = "pre-departure-checklists"
	ResourceUsers              Resource = "users"
	ResourceOwnProfile         Resource = "own-profile"
	// ResourcePermissions protects the permission table itself.
	ResourcePermissions Resource = "permissions"
)

// AllResources lists every protected resource category.
var AllResources = []Resource{
	ResourceVehicles,
	ResourceDrivers,
	ResourceTours,
	ResourceFuelEntries,
	ResourceDocuments,
	ResourceMaintenanceEntries,
	ResourceChecklists,
	ResourceUsers,
	ResourceOwnProfile,
	ResourcePermissions,
}

// ParseResource validates a resource literal received at a boundary.
func ParseResource(s string) (Resource, error) {
	for _, r := range AllResources {
		if Resource(s) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource: %q", s)
}
