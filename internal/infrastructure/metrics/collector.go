package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/fleetkeeper/fleetkeeper/pkg/cache"
	"github.com/fleetkeeper/fleetkeeper/pkg/cache/memorycache"
)

// Collector collects and aggregates metrics for the application.
type Collector struct {
	// HTTP metrics
	httpRequests sync.Map // map[string]*uint64 - route -> count
	httpErrors   sync.Map // map[string]*uint64 - route -> error count
	httpDuration sync.Map // map[string]*durationValue - route -> total duration in seconds

	// Rule engine metrics
	checksAllowed        uint64
	checksDenied         uint64
	permissionWrites     uint64
	permissionWriteFails uint64
	derivations          uint64

	// Snapshot cache reference (optional)
	cache cache.Cache
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// CacheMetrics holds snapshot cache performance metrics.
type CacheMetrics struct {
	Hits        uint64
	Misses      uint64
	HitRate     float64
	KeysCurrent int64
	Evictions   uint64
}

// APIMetrics holds HTTP request metrics.
type APIMetrics struct {
	RequestCounts        map[string]uint64
	ErrorCounts          map[string]uint64
	TotalDurationSeconds map[string]float64
}

// EngineMetrics holds permission and alert engine metrics.
type EngineMetrics struct {
	ChecksAllowed        uint64
	ChecksDenied         uint64
	PermissionWrites     uint64
	PermissionWriteFails uint64
	Derivations          uint64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetCache sets the snapshot cache instance for collecting cache metrics.
func (c *Collector) SetCache(cache cache.Cache) {
	c.cache = cache
}

// RecordRequest records an HTTP request.
func (c *Collector) RecordRequest(route string) {
	counter := c.getOrCreateCounter(&c.httpRequests, route)
	atomic.AddUint64(counter, 1)
}

// RecordError records an HTTP server error.
func (c *Collector) RecordError(route string) {
	counter := c.getOrCreateCounter(&c.httpErrors, route)
	atomic.AddUint64(counter, 1)
}

// RecordDuration records the duration of an HTTP request in seconds.
func (c *Collector) RecordDuration(route string, durationSeconds float64) {
	val, _ := c.httpDuration.LoadOrStore(route, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// RecordPermissionCheck records the outcome of a canAccess evaluation.
func (c *Collector) RecordPermissionCheck(allowed bool) {
	if allowed {
		atomic.AddUint64(&c.checksAllowed, 1)
	} else {
		atomic.AddUint64(&c.checksDenied, 1)
	}
}

// RecordPermissionWrite records an attempted permission update.
func (c *Collector) RecordPermissionWrite(ok bool) {
	if ok {
		atomic.AddUint64(&c.permissionWrites, 1)
	} else {
		atomic.AddUint64(&c.permissionWriteFails, 1)
	}
}

// RecordDerivation records one full alert derivation pass.
func (c *Collector) RecordDerivation() {
	atomic.AddUint64(&c.derivations, 1)
}

// GetEngineMetrics returns current rule engine metrics.
func (c *Collector) GetEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		ChecksAllowed:        atomic.LoadUint64(&c.checksAllowed),
		ChecksDenied:         atomic.LoadUint64(&c.checksDenied),
		PermissionWrites:     atomic.LoadUint64(&c.permissionWrites),
		PermissionWriteFails: atomic.LoadUint64(&c.permissionWriteFails),
		Derivations:          atomic.LoadUint64(&c.derivations),
	}
}

// GetCacheMetrics returns current snapshot cache metrics.
func (c *Collector) GetCacheMetrics() *CacheMetrics {
	if c.cache == nil {
		return &CacheMetrics{}
	}

	metrics := c.cache.Metrics()
	if metrics == nil {
		return &CacheMetrics{}
	}

	result := &CacheMetrics{
		Hits:      metrics.Hits,
		Misses:    metrics.Misses,
		HitRate:   metrics.HitRate(),
		Evictions: metrics.Evictions,
	}

	if memCache, ok := c.cache.(*memorycache.Cache); ok {
		result.KeysCurrent = int64(memCache.Len())
	}

	return result
}

// GetAPIMetrics returns current HTTP metrics.
func (c *Collector) GetAPIMetrics() *APIMetrics {
	result := &APIMetrics{
		RequestCounts:        make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
	}

	c.httpRequests.Range(func(key, value interface{}) bool {
		route := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.RequestCounts[route] = count
		return true
	})

	c.httpErrors.Range(func(key, value interface{}) bool {
		route := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.ErrorCounts[route] = count
		return true
	})

	c.httpDuration.Range(func(key, value interface{}) bool {
		route := key.(string)
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[route] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
