package alerts

import (
	"strings"
	"testing"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
)

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestRuleset_MaintenanceAlert(t *testing.T) {
	rs := NewRuleset(DefaultThresholds())

	tests := []struct {
		name         string
		vehicle      entities.Vehicle
		wantSeverity entities.Severity
		wantNone     bool
	}{
		{
			name:         "exactly at due mileage is urgent",
			vehicle:      entities.Vehicle{ID: "v1", Mileage: 52000, LastServiceMileage: intPtr(42000)},
			wantSeverity: entities.SeverityUrgent,
		},
		{
			name:         "past due mileage is urgent",
			vehicle:      entities.Vehicle{ID: "v1", Mileage: 53500, LastServiceMileage: intPtr(42000)},
			wantSeverity: entities.SeverityUrgent,
		},
		{
			name:         "exactly warning distance remaining is high",
			vehicle:      entities.Vehicle{ID: "v1", Mileage: 51000, LastServiceMileage: intPtr(42000)},
			wantSeverity: entities.SeverityHigh,
		},
		{
			name:     "one km beyond warning distance is clean",
			vehicle:  entities.Vehicle{ID: "v1", Mileage: 50999, LastServiceMileage: intPtr(42000)},
			wantNone: true,
		},
		{
			name:         "never-serviced vehicle counts from zero",
			vehicle:      entities.Vehicle{ID: "v2", Mileage: 10000, LastServiceMileage: nil},
			wantSeverity: entities.SeverityUrgent,
		},
		{
			name:     "fresh vehicle has no alert",
			vehicle:  entities.Vehicle{ID: "v2", Mileage: 500, LastServiceMileage: nil},
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := rs.MaintenanceAlert(&tt.vehicle, testNow)
			if tt.wantNone {
				if alert != nil {
					t.Fatalf("MaintenanceAlert() = %+v, want nil", alert)
				}
				return
			}
			if alert == nil {
				t.Fatal("MaintenanceAlert() = nil, want alert")
			}
			if alert.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", alert.Severity, tt.wantSeverity)
			}
			if alert.Kind != entities.AlertMaintenance {
				t.Errorf("kind = %s, want maintenance", alert.Kind)
			}
			if alert.ResourceID != tt.vehicle.ID {
				t.Errorf("resource = %s, want %s", alert.ResourceID, tt.vehicle.ID)
			}
			if !alert.CreatedAt.Equal(testNow) {
				t.Errorf("createdAt = %v, want derivation time", alert.CreatedAt)
			}
		})
	}
}

func TestRuleset_MaintenanceAlert_OverdueDistanceInMessage(t *testing.T) {
	rs := NewRuleset(DefaultThresholds())
	vehicle := &entities.Vehicle{ID: "v1", Name: "Truck 7", Mileage: 53500, LastServiceMileage: intPtr(42000)}

	alert := rs.MaintenanceAlert(vehicle, testNow)
	if alert == nil {
		t.Fatal("expected alert")
	}
	if !strings.Contains(alert.Message, "1500 km") {
		t.Errorf("message %q should carry the overdue distance 1500 km", alert.Message)
	}
	if !strings.Contains(alert.Message, "Truck 7") {
		t.Errorf("message %q should carry the vehicle name", alert.Message)
	}
}

func TestRuleset_DocumentAlert(t *testing.T) {
	rs := NewRuleset(DefaultThresholds())

	tests := []struct {
		name         string
		expiration   time.Time
		wantSeverity entities.Severity
		wantNone     bool
	}{
		{name: "expires today is high", expiration: testNow, wantSeverity: entities.SeverityHigh},
		{name: "30 days left is high", expiration: testNow.AddDate(0, 0, 30), wantSeverity: entities.SeverityHigh},
		{name: "31 days left is medium", expiration: testNow.AddDate(0, 0, 31), wantSeverity: entities.SeverityMedium},
		{name: "60 days left is medium", expiration: testNow.AddDate(0, 0, 60), wantSeverity: entities.SeverityMedium},
		{name: "61 days left is clean", expiration: testNow.AddDate(0, 0, 61), wantNone: true},
		{name: "expired yesterday is urgent", expiration: testNow.AddDate(0, 0, -1), wantSeverity: entities.SeverityUrgent},
		{name: "partial day counts as a full day", expiration: testNow.Add(2 * time.Hour).AddDate(0, 0, 30), wantSeverity: entities.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &entities.Document{ID: "doc1", VehicleID: "v1", Expiration: tt.expiration}
			alert := rs.DocumentAlert(doc, testNow)
			if tt.wantNone {
				if alert != nil {
					t.Fatalf("DocumentAlert() = %+v, want nil", alert)
				}
				return
			}
			if alert == nil {
				t.Fatal("DocumentAlert() = nil, want alert")
			}
			if alert.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", alert.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestRuleset_DocumentAlert_ExpiredIsBackdated(t *testing.T) {
	rs := NewRuleset(DefaultThresholds())
	expiration := testNow.AddDate(0, 0, -14)
	doc := &entities.Document{ID: "doc1", VehicleID: "v1", Expiration: expiration}

	alert := rs.DocumentAlert(doc, testNow)
	if alert == nil {
		t.Fatal("expected alert for expired document")
	}
	if !alert.CreatedAt.Equal(expiration) {
		t.Errorf("createdAt = %v, want the expiration instant %v", alert.CreatedAt, expiration)
	}
	if !strings.Contains(alert.Message, "14 days ago") {
		t.Errorf("message %q should carry the days since expiry", alert.Message)
	}
}

func TestRuleset_ChecklistAlert(t *testing.T) {
	rs := NewRuleset(DefaultThresholds())

	tests := []struct {
		name      string
		issues    *string
		wantAlert bool
	}{
		{name: "nil issues means no alert", issues: nil},
		{name: "blank issues means no alert", issues: strPtr("   ")},
		{name: "real issue raises a high alert", issues: strPtr(" leak "), wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := &entities.Checklist{ID: "cl1", VehicleID: "v1", Date: testNow, IssuesToAddress: tt.issues}
			alert := rs.ChecklistAlert(cl, testNow)
			if !tt.wantAlert {
				if alert != nil {
					t.Fatalf("ChecklistAlert() = %+v, want nil", alert)
				}
				return
			}
			if alert == nil {
				t.Fatal("ChecklistAlert() = nil, want alert")
			}
			if alert.Severity != entities.SeverityHigh {
				t.Errorf("severity = %s, want high", alert.Severity)
			}
			if alert.Details == nil || *alert.Details != "leak" {
				t.Errorf("details should carry the trimmed issue text, got %v", alert.Details)
			}
		})
	}
}

func TestRuleset_ChecklistAlert_CreatedAt(t *testing.T) {
	rs := NewRuleset(DefaultThresholds())
	filed := testNow.AddDate(0, 0, -3)

	cl := &entities.Checklist{ID: "cl1", VehicleID: "v1", IssuesToAddress: strPtr("worn tire"), CreatedAt: filed}
	alert := rs.ChecklistAlert(cl, testNow)
	if alert == nil {
		t.Fatal("expected alert")
	}
	if !alert.CreatedAt.Equal(filed) {
		t.Errorf("createdAt = %v, want the checklist's own creation time %v", alert.CreatedAt, filed)
	}

	// Missing creation time falls back to the derivation time
	cl = &entities.Checklist{ID: "cl2", VehicleID: "v1", IssuesToAddress: strPtr("worn tire")}
	alert = rs.ChecklistAlert(cl, testNow)
	if alert == nil {
		t.Fatal("expected alert")
	}
	if !alert.CreatedAt.Equal(testNow) {
		t.Errorf("createdAt = %v, want derivation time fallback", alert.CreatedAt)
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		t    time.Time
		want int
	}{
		{name: "same day", now: testNow, t: testNow.Add(4 * time.Hour), want: 0},
		{name: "two hours into tomorrow", now: testNow, t: testNow.Add(10 * time.Hour), want: 1},
		{name: "yesterday", now: testNow, t: testNow.AddDate(0, 0, -1), want: -1},
		{name: "day boundary across timezones", now: testNow, t: testNow.AddDate(0, 0, 7).In(time.FixedZone("CET", 3600)), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t2 *testing.T) {
			if got := daysUntil(tt.now, tt.t); got != tt.want {
				t2.Errorf("daysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}
