package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics provides observability for order wizards.
type Metrics struct {
	// Orders handed to the dispatcher
	OrdersSubmitted prometheus.Counter

	// Total price of submitted orders in AUD
	OrderValue prometheus.Histogram

	// Land-title counts lookups that kept the placeholder
	CountLookupFailures *prometheus.CounterVec

	// Organisation selections whose director extract could not be loaded
	DirectorSeedFailures prometheus.Counter
}

// New registers order metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OrdersSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "searchorder_orders_submitted_total",
			Help: "Orders submitted for dispatch",
		}),
		OrderValue: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "searchorder_order_value_aud",
			Help:    "Total price of submitted orders",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600},
		}),
		CountLookupFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_land_title_count_failures_total",
			Help: "Failed land-title counts lookups",
		}, []string{"state"}),
		DirectorSeedFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "searchorder_director_seed_failures_total",
			Help: "Organisation director extracts that failed to load",
		}),
	}
}

// ObserveSubmitted records a submitted order and its total.
func (m *Metrics) ObserveSubmitted(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.OrdersSubmitted.Inc()
	m.OrderValue.Observe(total.InexactFloat64())
}

// IncrementCountLookupFailure records a failed counts lookup.
func (m *Metrics) IncrementCountLookupFailure(state string) {
	if m != nil {
		m.CountLookupFailures.WithLabelValues(state).Inc()
	}
}

// IncrementDirectorSeedFailure records a failed director extract.
func (m *Metrics) IncrementDirectorSeedFailure() {
	if m != nil {
		m.DirectorSeedFailures.Inc()
	}
}
