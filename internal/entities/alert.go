package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// AlertKind classifies the rule that produced an alert.
type AlertKind string

const (
	AlertMaintenance    AlertKind = "maintenance"
	AlertDocument       AlertKind = "document"
	AlertChecklistIssue AlertKind = "checklist-issue"
)

// Severity classifies an alert as urgent, high or medium; it drives
// sort order and visual treatment in consumers.
type Severity string

const (
	SeverityUrgent Severity = "urgent"
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Alert is a derived operational warning. Alerts are ephemeral: they are
// rebuilt in full on every derivation and never persisted.
type Alert struct {
	ID         string
	Kind       AlertKind
	Severity   Severity
	Message    string
	Details    *string
	ResourceID string
	CreatedAt  time.Time
}

// AlertID derives the identity of an alert from its source entity and
// rule outcome, so recomputing from an unchanged snapshot yields
// byte-identical alerts.
func AlertID(kind AlertKind, resourceID string, severity Severity) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", kind, resourceID, severity)))
	return hex.EncodeToString(sum[:8])
}
