package alerts

// Thresholds holds the alert policy numbers in one place so policy changes
// never touch rule logic.
type Thresholds struct {
	// ServiceIntervalKm is the mileage distance between scheduled services.
	ServiceIntervalKm int
	// ServiceWarningKm is the remaining distance under which a vehicle is
	// flagged as approaching its next service.
	ServiceWarningKm int
	// DocumentHighDays is the days-to-expiry window for high alerts.
	DocumentHighDays int
	// DocumentMediumDays is the days-to-expiry window for medium alerts.
	DocumentMediumDays int
}

// DefaultThresholds returns the standing fleet policy: a 10,000 km service
// interval with a 1,000 km warning window, and 30/60 day document windows.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ServiceIntervalKm:  10000,
		ServiceWarningKm:   1000,
		DocumentHighDays:   30,
		DocumentMediumDays: 60,
	}
}
