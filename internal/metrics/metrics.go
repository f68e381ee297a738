package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes.
const (
	OutcomeLoaded = "loaded"
	OutcomeFailed = "failed"
)

// Metrics holds the collectors exported on /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	lookups        *prometheus.CounterVec
	lookupDuration prometheus.Histogram
	sessions       prometheus.Gauge
	sessionsPurged prometheus.Counter
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "lookups_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent waiting for the weather provider.",
			Buckets:   prometheus.DefBuckets,
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_dashboard",
			Name:      "sessions_active",
			Help:      "Dashboard sessions currently held in memory.",
		}),
		sessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "sessions_purged_total",
			Help:      "Dashboard sessions evicted by the janitor.",
		}),
	}

	reg.MustRegister(
		m.lookups,
		m.lookupDuration,
		m.sessions,
		m.sessionsPurged,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveLookup records one finished lookup.
func (m *Metrics) ObserveLookup(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(outcome).Inc()
	m.lookupDuration.Observe(d.Seconds())
}

// SetSessions sets the active-sessions gauge.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// AddPurged counts sessions removed by a sweep.
func (m *Metrics) AddPurged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sessionsPurged.Add(float64(n))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
