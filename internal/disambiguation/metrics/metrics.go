package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for candidate fetching.
type Metrics struct {
	// Provider round-trip latency by search kind
	FetchLatency *prometheus.HistogramVec

	// Fetches that ended with only the fallback candidate, by kind and reason
	Fallbacks *prometheus.CounterVec

	// Per-state land-title lookups that failed
	StateFailures *prometheus.CounterVec
}

// New registers disambiguation metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "searchorder_disambiguation_fetch_duration_seconds",
			Help:    "Duration of candidate fetches by search kind",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),

		Fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_disambiguation_fallbacks_total",
			Help: "Fetches resolved with only the typed-name fallback candidate",
		}, []string{"kind", "reason"}), // reason: "empty", "error"

		StateFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_land_title_state_failures_total",
			Help: "Failed per-state land-title lookups",
		}, []string{"state"}),
	}
}

// ObserveFetchLatency records one fetch.
func (m *Metrics) ObserveFetchLatency(kind string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// IncrementFallback records a fallback-only result.
func (m *Metrics) IncrementFallback(kind, reason string) {
	if m != nil {
		m.Fallbacks.WithLabelValues(kind, reason).Inc()
	}
}

// IncrementStateFailure records a failed state lookup.
func (m *Metrics) IncrementStateFailure(state string) {
	if m != nil {
		m.StateFailures.WithLabelValues(state).Inc()
	}
}
