package handlers

import (
	"net/http"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/metrics"
	"github.com/fleetkeeper/fleetkeeper/internal/services"
	"github.com/fleetkeeper/fleetkeeper/internal/services/alerts"
	"go.uber.org/zap"
)

// AlertHandler derives alerts from the current fleet snapshot on demand
type AlertHandler struct {
	fleet     services.FleetServiceInterface
	engine    *alerts.Engine
	collector *metrics.Collector
	exporter  *metrics.PrometheusExporter
	logger    *zap.Logger
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(
	fleet services.FleetServiceInterface,
	engine *alerts.Engine,
	collector *metrics.Collector,
	exporter *metrics.PrometheusExporter,
	logger *zap.Logger,
) *AlertHandler {
	return &AlertHandler{
		fleet:     fleet,
		engine:    engine,
		collector: collector,
		exporter:  exporter,
		logger:    logger,
	}
}

type alertResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	ResourceID string    `json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func alertToResponse(alert *entities.Alert) alertResponse {
	resp := alertResponse{
		ID:         alert.ID,
		Kind:       string(alert.Kind),
		Severity:   string(alert.Severity),
		Message:    alert.Message,
		ResourceID: alert.ResourceID,
		CreatedAt:  alert.CreatedAt,
	}
	if alert.Details != nil {
		resp.Details = *alert.Details
	}
	return resp
}

// List handles GET /v1/alerts: fetch the fleet snapshot and run every
// rule over it. Alerts are never stored; each call re-derives.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.fleet.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to load fleet snapshot", zap.Error(err))
		writeError(w, http.StatusBadGateway, "fleet data unavailable")
		return
	}

	derived := h.engine.Derive(snapshot)

	h.collector.RecordDerivation()
	if h.exporter != nil {
		h.exporter.RecordDerivation(alerts.SeverityCounts(derived))
	}

	resp := make([]alertResponse, 0, len(derived))
	for _, alert := range derived {
		resp = append(resp, alertToResponse(alert))
	}
	writeJSON(w, http.StatusOK, resp)
}
