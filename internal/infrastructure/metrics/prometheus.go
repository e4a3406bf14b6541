package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector

	// Prometheus metrics
	permissionChecks  *prometheus.CounterVec
	permissionUpdates *prometheus.CounterVec
	alertDerivations  prometheus.Counter
	alertsDerived     *prometheus.GaugeVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	cacheHitRate      prometheus.Gauge
	cacheKeys         prometheus.Gauge
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	httpErrors        *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter.
func NewPrometheusExporter(collector *Collector) *PrometheusExporter {
	return &PrometheusExporter{
		collector: collector,
		permissionChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_permission_checks_total",
				Help: "Total number of permission checks by outcome",
			},
			[]string{"result"},
		),
		permissionUpdates: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_permission_updates_total",
				Help: "Total number of permission table updates by status",
			},
			[]string{"status"},
		),
		alertDerivations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetkeeper_alert_derivations_total",
			Help: "Total number of full alert derivation passes",
		}),
		alertsDerived: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fleetkeeper_alerts_last_derivation",
				Help: "Number of alerts produced by the most recent derivation, by severity",
			},
			[]string{"severity"},
		),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetkeeper_snapshot_cache_hits_total",
			Help: "Total number of fleet snapshot cache hits",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetkeeper_snapshot_cache_misses_total",
			Help: "Total number of fleet snapshot cache misses",
		}),
		cacheHitRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fleetkeeper_snapshot_cache_hit_rate",
			Help: "Current snapshot cache hit rate (0.0 to 1.0)",
		}),
		cacheKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fleetkeeper_snapshot_cache_keys_current",
			Help: "Current number of keys in the snapshot cache",
		}),
		httpRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route"},
		),
		httpDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetkeeper_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"route"},
		),
		httpErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_http_errors_total",
				Help: "Total number of HTTP server errors",
			},
			[]string{"route"},
		),
	}
}

// Update updates Gauge metrics from the collector.
// Counters are updated at the call sites, so only gauges are refreshed here.
// This should be called periodically (e.g., every 10 seconds).
func (e *PrometheusExporter) Update() {
	cacheMetrics := e.collector.GetCacheMetrics()
	e.cacheHitRate.Set(cacheMetrics.HitRate)
	e.cacheKeys.Set(float64(cacheMetrics.KeysCurrent))
}

// RecordRequest records a request in Prometheus.
func (e *PrometheusExporter) RecordRequest(route string) {
	e.httpRequests.WithLabelValues(route).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(route string, durationSeconds float64) {
	e.httpDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordError records a server error in Prometheus.
func (e *PrometheusExporter) RecordError(route string) {
	e.httpErrors.WithLabelValues(route).Inc()
}

// RecordPermissionCheck records a permission check outcome.
func (e *PrometheusExporter) RecordPermissionCheck(allowed bool) {
	if allowed {
		e.permissionChecks.WithLabelValues("allowed").Inc()
	} else {
		e.permissionChecks.WithLabelValues("denied").Inc()
	}
}

// RecordPermissionUpdate records a permission update attempt.
func (e *PrometheusExporter) RecordPermissionUpdate(ok bool) {
	if ok {
		e.permissionUpdates.WithLabelValues("ok").Inc()
	} else {
		e.permissionUpdates.WithLabelValues("failed").Inc()
	}
}

// RecordDerivation records one derivation pass and its per-severity counts.
func (e *PrometheusExporter) RecordDerivation(counts map[string]int) {
	e.alertDerivations.Inc()
	for severity, n := range counts {
		e.alertsDerived.WithLabelValues(severity).Set(float64(n))
	}
}

// RecordCacheHit records a snapshot cache hit.
func (e *PrometheusExporter) RecordCacheHit() {
	e.cacheHits.Inc()
}

// RecordCacheMiss records a snapshot cache miss.
func (e *PrometheusExporter) RecordCacheMiss() {
	e.cacheMisses.Inc()
}
