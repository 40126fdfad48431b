package infrastructure

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weatherwidget.app/internal/ports"
)

// MetricsCollector implements the LookupMetrics and SessionMetrics ports on
// Prometheus collectors and keeps running totals for the health endpoint.
type MetricsCollector struct {
	lookups        *prometheus.CounterVec
	lookupLatency  prometheus.Histogram
	sessionsActive prometheus.Gauge
	discarded      prometheus.Counter

	mu        sync.RWMutex
	outcomes  map[string]int64
	sessions  int64
	discards  int64
	lastReady time.Time
}

// NewMetricsCollector registers the widget collectors on reg
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_lookups_total",
				Help: "The total number of weather lookups by outcome",
			},
			[]string{"outcome"},
		),
		lookupLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "weather_lookup_duration_seconds",
				Help:    "Weather lookup duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		sessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "widget_sessions_active",
				Help: "Number of connected live widget sessions",
			},
		),
		discarded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "widget_submits_discarded_total",
				Help: "Submits whose response arrived after a newer submit",
			},
		),
		outcomes: make(map[string]int64),
	}
}

// ObserveLookup records one lookup outcome and its latency
func (m *MetricsCollector) ObserveLookup(outcome string, duration time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.lookupLatency.Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
	if outcome == ports.OutcomeReady {
		m.lastReady = time.Now()
	}
}

func (m *MetricsCollector) SessionOpened() {
	m.sessionsActive.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions++
}

func (m *MetricsCollector) SessionClosed() {
	m.sessionsActive.Dec()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions--
}

func (m *MetricsCollector) SubmitDiscarded() {
	m.discarded.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.discards++
}

// GetStats returns the running totals
func (m *MetricsCollector) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lookups := make(map[string]int64, len(m.outcomes))
	for outcome, n := range m.outcomes {
		lookups[outcome] = n
	}

	stats := map[string]interface{}{
		"lookups":           lookups,
		"sessions_active":   m.sessions,
		"submits_discarded": m.discards,
	}
	if !m.lastReady.IsZero() {
		stats["last_success"] = m.lastReady.UTC().Format(time.RFC3339)
	}
	return stats
}
