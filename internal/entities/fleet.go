package entities

import "time"

// Vehicle is the subset of the vehicle record consumed by alert rules.
type Vehicle struct {
	ID      string
	Name    string
	Mileage int // Current odometer reading in km, never negative
	// LastServiceMileage is the odometer reading at the last recorded
	// service; nil until the vehicle has been serviced once.
	LastServiceMileage *int
}

// Document is a compliance document attached to a vehicle
// (insurance, inspection certificate, ...).
type Document struct {
	ID         string
	VehicleID  string
	Name       string
	Expiration time.Time
}

// Checklist is a pre-departure checklist filed by a driver.
type Checklist struct {
	ID        string
	VehicleID string
	DriverID  *string
	Date      time.Time
	// IssuesToAddress holds free-text problems noted during the check;
	// nil or blank means nothing to address.
	IssuesToAddress *string
	CreatedAt       time.Time
}

// Driver is referenced by checklists for display joins only;
// alert rules never read driver data.
type Driver struct {
	ID   string
	Name string
}

// FleetSnapshot is a read-only view of the fleet dataset at one point in
// time, supplied by the data-loading layer. Alert derivation consumes it
// as-is and never triggers fetches of its own.
type FleetSnapshot struct {
	Vehicles   []*Vehicle
	Documents  []*Document
	Checklists []*Checklist
}
