package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process-wide Prometheus metrics and the registry the
// per-package metric structs register into.
type Metrics struct {
	Registry      *prometheus.Registry
	OrdersCreated prometheus.Counter
	OrdersActive  prometheus.Gauge
	HTTPRequests  *prometheus.CounterVec
}

// New creates a fresh registry with Go and process collectors plus the
// application level counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		OrdersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "searchorder_orders_created_total",
			Help: "Total number of search orders created",
		}),
		OrdersActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "searchorder_orders_active",
			Help: "Number of orders currently held in memory",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_http_requests_total",
			Help: "HTTP requests by route pattern and status class",
		}, []string{"route", "status"}),
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// IncrementOrdersCreated increments the orders created counter by 1.
func (m *Metrics) IncrementOrdersCreated() {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
	m.OrdersActive.Inc()
}

// DecrementOrdersActive records an order leaving the store.
func (m *Metrics) DecrementOrdersActive() {
	if m == nil {
		return
	}
	m.OrdersActive.Dec()
}

// ObserveHTTPRequest counts one served request.
func (m *Metrics) ObserveHTTPRequest(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
