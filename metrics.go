package goSession

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by goSession APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the session store.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the session store.
	MetricLoginFailure
	// MetricLoginRateLimited is an exported constant or variable used by the session store.
	MetricLoginRateLimited
	// MetricLoginNetworkError is an exported constant or variable used by the session store.
	MetricLoginNetworkError
	// MetricLoginMalformed is an exported constant or variable used by the session store.
	MetricLoginMalformed
	// MetricRefreshSuccess is an exported constant or variable used by the session store.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the session store.
	MetricRefreshFailure
	// MetricLogout is an exported constant or variable used by the session store.
	MetricLogout
	// MetricHydrateRestored is an exported constant or variable used by the session store.
	MetricHydrateRestored
	// MetricHydrateEmpty is an exported constant or variable used by the session store.
	MetricHydrateEmpty
	// MetricHydrateCorrupt is an exported constant or variable used by the session store.
	MetricHydrateCorrupt
	// MetricPeriodicLogout is an exported constant or variable used by the session store.
	MetricPeriodicLogout
	// MetricUnauthorizedLogout is an exported constant or variable used by the session store.
	MetricUnauthorizedLogout
	// MetricGateRender is an exported constant or variable used by the session store.
	MetricGateRender
	// MetricGateLoading is an exported constant or variable used by the session store.
	MetricGateLoading
	// MetricGateLoginRedirect is an exported constant or variable used by the session store.
	MetricGateLoginRedirect
	// MetricGateLandingRedirect is an exported constant or variable used by the session store.
	MetricGateLandingRedirect
	// MetricLoginLatency is an exported constant or variable used by the session store.
	MetricLoginLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by goSession APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by goSession APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics builds a metrics registry honoring the given config.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counter collection is active.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the login latency histogram is active.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc increments the counter for id. It is a no-op when metrics are
// disabled or id is out of range.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one latency sample into the histogram for id.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricLoginLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value reads the current counter value for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters and histograms into a point-in-time view.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricLoginLatency].buckets[i])
		}
		s.Histograms[MetricLoginLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}

func (s *Store) metricInc(id MetricID) {
	if s == nil {
		return
	}
	s.metrics.Inc(id)
}

func (s *Store) metricObserve(id MetricID, d time.Duration) {
	if s == nil {
		return
	}
	s.metrics.Observe(id, d)
}

// MetricsSnapshot exposes the current counters and histograms of the store.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

// MetricValue reads one counter off the store's metrics registry.
func (s *Store) MetricValue(id MetricID) uint64 {
	if s == nil {
		return 0
	}
	return s.metrics.Value(id)
}
