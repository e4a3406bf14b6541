package entities

import "testing"

func TestAlertID_Deterministic(t *testing.T) {
	a := AlertID(AlertMaintenance, "vehicle-1", SeverityUrgent)
	b := AlertID(AlertMaintenance, "vehicle-1", SeverityUrgent)
	if a != b {
		t.Errorf("AlertID not deterministic: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("AlertID length = %d, want 16", len(a))
	}
}

func TestAlertID_DistinguishesInputs(t *testing.T) {
	base := AlertID(AlertDocument, "doc-1", SeverityHigh)

	if got := AlertID(AlertMaintenance, "doc-1", SeverityHigh); got == base {
		t.Error("AlertID should differ when kind differs")
	}
	if got := AlertID(AlertDocument, "doc-2", SeverityHigh); got == base {
		t.Error("AlertID should differ when resource differs")
	}
	if got := AlertID(AlertDocument, "doc-1", SeverityMedium); got == base {
		t.Error("AlertID should differ when severity differs")
	}
}
