package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

// TestScenario_FleetAlerts seeds a fleet into the database and checks
// that the alert endpoint derives the expected alerts from it.
func TestScenario_FleetAlerts(t *testing.T) {
	testServer := SetupE2ETest(t)
	defer testServer.Teardown(t)

	client := testServer.Server.Client()
	baseURL := testServer.Server.URL

	t.Log("Step 1: Seed a vehicle past its service interval")
	_, err := testServer.DB.Exec(
		`INSERT INTO vehicles (id, name, mileage, last_service_mileage) VALUES ($1, $2, $3, $4)`,
		"veh-1", "Kangoo", 52000, 40000,
	)
	if err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}

	t.Log("Step 2: Seed a document expiring within thirty days")
	_, err = testServer.DB.Exec(
		`INSERT INTO documents (id, vehicle_id, name, expiration) VALUES ($1, $2, $3, $4)`,
		"doc-1", "veh-1", "Insurance", time.Now().AddDate(0, 0, 10),
	)
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}

	t.Log("Step 3: Seed a checklist with an open issue")
	_, err = testServer.DB.Exec(
		`INSERT INTO checklists (id, vehicle_id, date, issues_to_address, created_at) VALUES ($1, $2, $3, $4, $5)`,
		"chk-1", "veh-1", time.Now(), "worn rear tire", time.Now(),
	)
	if err != nil {
		t.Fatalf("failed to seed checklist: %v", err)
	}

	t.Log("Step 4: Derive alerts over HTTP")
	resp, err := client.Get(baseURL + "/v1/alerts")
	if err != nil {
		t.Fatalf("alerts request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("alerts status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var alerts []struct {
		ID         string `json:"id"`
		Kind       string `json:"kind"`
		Severity   string `json:"severity"`
		ResourceID string `json:"resource_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&alerts); err != nil {
		t.Fatalf("failed to decode alerts: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("len(alerts) = %d, want 3", len(alerts))
	}

	byKind := make(map[string]string)
	for _, alert := range alerts {
		byKind[alert.Kind] = alert.Severity
	}
	if byKind["maintenance"] != "urgent" {
		t.Errorf("maintenance severity = %q, want urgent", byKind["maintenance"])
	}
	if byKind["document"] != "high" {
		t.Errorf("document severity = %q, want high", byKind["document"])
	}
	if byKind["checklist-issue"] != "high" {
		t.Errorf("checklist severity = %q, want high", byKind["checklist-issue"])
	}

	t.Log("Step 5: A second derivation yields the same alert ids")
	resp2, err := client.Get(baseURL + "/v1/alerts")
	if err != nil {
		t.Fatalf("second alerts request failed: %v", err)
	}
	defer resp2.Body.Close()

	var again []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&again); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}
	if len(again) != len(alerts) {
		t.Fatalf("second derivation returned %d alerts, want %d", len(again), len(alerts))
	}
	for i := range alerts {
		if alerts[i].ID != again[i].ID {
			t.Errorf("alert %d id changed between derivations: %q vs %q", i, alerts[i].ID, again[i].ID)
		}
	}
}
