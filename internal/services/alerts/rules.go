package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
)

// Ruleset maps single fleet entities to alerts under a fixed policy.
// Each rule is pure: one entity in, zero or one alert out, no I/O.
type Ruleset struct {
	thresholds Thresholds
}

// NewRuleset creates a Ruleset with the given policy thresholds.
func NewRuleset(thresholds Thresholds) *Ruleset {
	return &Ruleset{thresholds: thresholds}
}

// MaintenanceAlert flags a vehicle that is past or approaching its next
// service. A vehicle with no recorded service counts from mileage 0.
// Boundaries are inclusive: exactly 0 km remaining is urgent, exactly the
// warning distance is high, one km beyond is clean.
func (rs *Ruleset) MaintenanceAlert(v *entities.Vehicle, now time.Time) *entities.Alert {
	lastService := 0
	if v.LastServiceMileage != nil {
		lastService = *v.LastServiceMileage
	}
	nextService := lastService + rs.thresholds.ServiceIntervalKm
	remaining := nextService - v.Mileage

	switch {
	case remaining <= 0:
		details := fmt.Sprintf("next service was due at %d km, odometer reads %d km", nextService, v.Mileage)
		return &entities.Alert{
			ID:         entities.AlertID(entities.AlertMaintenance, v.ID, entities.SeverityUrgent),
			Kind:       entities.AlertMaintenance,
			Severity:   entities.SeverityUrgent,
			Message:    fmt.Sprintf("%s is overdue for service by %d km", vehicleLabel(v), -remaining),
			Details:    &details,
			ResourceID: v.ID,
			CreatedAt:  now,
		}
	case remaining <= rs.thresholds.ServiceWarningKm:
		details := fmt.Sprintf("next service due at %d km, odometer reads %d km", nextService, v.Mileage)
		return &entities.Alert{
			ID:         entities.AlertID(entities.AlertMaintenance, v.ID, entities.SeverityHigh),
			Kind:       entities.AlertMaintenance,
			Severity:   entities.SeverityHigh,
			Message:    fmt.Sprintf("%s is due for service in %d km", vehicleLabel(v), remaining),
			Details:    &details,
			ResourceID: v.ID,
			CreatedAt:  now,
		}
	}
	return nil
}

// DocumentAlert flags a document that has expired or is about to.
// An expired document's alert is backdated to the expiration instant so
// aging expired documents do not appear artificially new.
func (rs *Ruleset) DocumentAlert(d *entities.Document, now time.Time) *entities.Alert {
	daysLeft := daysUntil(now, d.Expiration)

	switch {
	case daysLeft < 0:
		details := fmt.Sprintf("expired on %s", d.Expiration.UTC().Format("2006-01-02"))
		return &entities.Alert{
			ID:         entities.AlertID(entities.AlertDocument, d.ID, entities.SeverityUrgent),
			Kind:       entities.AlertDocument,
			Severity:   entities.SeverityUrgent,
			Message:    fmt.Sprintf("%s expired %d days ago", documentLabel(d), -daysLeft),
			Details:    &details,
			ResourceID: d.ID,
			CreatedAt:  d.Expiration,
		}
	case daysLeft <= rs.thresholds.DocumentHighDays:
		return &entities.Alert{
			ID:         entities.AlertID(entities.AlertDocument, d.ID, entities.SeverityHigh),
			Kind:       entities.AlertDocument,
			Severity:   entities.SeverityHigh,
			Message:    fmt.Sprintf("%s expires in %d days", documentLabel(d), daysLeft),
			ResourceID: d.ID,
			CreatedAt:  now,
		}
	case daysLeft <= rs.thresholds.DocumentMediumDays:
		return &entities.Alert{
			ID:         entities.AlertID(entities.AlertDocument, d.ID, entities.SeverityMedium),
			Kind:       entities.AlertDocument,
			Severity:   entities.SeverityMedium,
			Message:    fmt.Sprintf("%s expires in %d days", documentLabel(d), daysLeft),
			ResourceID: d.ID,
			CreatedAt:  now,
		}
	}
	return nil
}

// ChecklistAlert flags a pre-departure checklist that noted issues.
// A nil or blank issues field means nothing to address. The alert keeps
// the checklist's own creation time when it has one.
func (rs *Ruleset) ChecklistAlert(cl *entities.Checklist, now time.Time) *entities.Alert {
	if cl.IssuesToAddress == nil {
		return nil
	}
	issues := strings.TrimSpace(*cl.IssuesToAddress)
	if issues == "" {
		return nil
	}

	createdAt := cl.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &entities.Alert{
		ID:         entities.AlertID(entities.AlertChecklistIssue, cl.ID, entities.SeverityHigh),
		Kind:       entities.AlertChecklistIssue,
		Severity:   entities.SeverityHigh,
		Message:    fmt.Sprintf("pre-departure checklist for vehicle %s reported issues", cl.VehicleID),
		Details:    &issues,
		ResourceID: cl.ID,
		CreatedAt:  createdAt,
	}
}

// daysUntil counts whole calendar days from now until t on UTC day
// boundaries, so a partial day remaining counts as a full day. Negative
// when t's day is already past.
func daysUntil(now, t time.Time) int {
	return int(truncateToDay(t).Sub(truncateToDay(now)) / (24 * time.Hour))
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func vehicleLabel(v *entities.Vehicle) string {
	if v.Name != "" {
		return v.Name
	}
	return "vehicle " + v.ID
}

func documentLabel(d *entities.Document) string {
	if d.Name != "" {
		return fmt.Sprintf("document %q for vehicle %s", d.Name, d.VehicleID)
	}
	return fmt.Sprintf("document %s for vehicle %s", d.ID, d.VehicleID)
}
