package alerts

import (
	"sort"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
)

// Engine derives the ranked alert list from a fleet snapshot.
// Every Derive call is a full, independent recomputation: the engine keeps
// no state between calls, never mutates its input, and performs no I/O.
type Engine struct {
	rules *Ruleset
	now   func() time.Time
}

// NewEngine creates an Engine evaluating the given policy thresholds.
func NewEngine(thresholds Thresholds) *Engine {
	return &Engine{
		rules: NewRuleset(thresholds),
		now:   time.Now,
	}
}

// newEngineAt pins the engine's clock; used in tests.
func newEngineAt(thresholds Thresholds, now time.Time) *Engine {
	return &Engine{
		rules: NewRuleset(thresholds),
		now:   func() time.Time { return now },
	}
}

// Derive applies the maintenance rule to every vehicle, the document rule
// to every document and the checklist rule to every checklist, in that
// emission order, and returns the combined alerts sorted by CreatedAt
// descending. The sort is stable, so alerts with equal timestamps keep the
// emission order, making the result deterministic for identical inputs.
func (e *Engine) Derive(snapshot *entities.FleetSnapshot) []*entities.Alert {
	if snapshot == nil {
		return nil
	}

	now := e.now()
	var alerts []*entities.Alert

	for _, v := range snapshot.Vehicles {
		if a := e.rules.MaintenanceAlert(v, now); a != nil {
			alerts = append(alerts, a)
		}
	}
	for _, d := range snapshot.Documents {
		if a := e.rules.DocumentAlert(d, now); a != nil {
			alerts = append(alerts, a)
		}
	}
	for _, cl := range snapshot.Checklists {
		if a := e.rules.ChecklistAlert(cl, now); a != nil {
			alerts = append(alerts, a)
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	return alerts
}

// SeverityCounts tallies alerts per severity, for metrics and display
// grouping.
func SeverityCounts(alerts []*entities.Alert) map[string]int {
	counts := map[string]int{
		string(entities.SeverityUrgent): 0,
		string(entities.SeverityHigh):   0,
		string(entities.SeverityMedium): 0,
	}
	for _, a := range alerts {
		counts[string(a.Severity)]++
	}
	return counts
}
