package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for report dispatch.
type Metrics struct {
	// Jobs finished, by catalog code and final status
	Jobs *prometheus.CounterVec

	// Report job creation latency
	JobDuration prometheus.Histogram

	// Batches currently dispatching
	BatchesInFlight prometheus.Gauge
}

// New registers dispatch metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Jobs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_dispatch_jobs_total",
			Help: "Report jobs dispatched by type and final status",
		}, []string{"type", "status"}),

		JobDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "searchorder_dispatch_job_duration_seconds",
			Help:    "Duration of report job creation calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		BatchesInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "searchorder_dispatch_batches_in_flight",
			Help: "Order batches still dispatching",
		}),
	}
}

// ObserveJob records a finished job.
func (m *Metrics) ObserveJob(jobType, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.Jobs.WithLabelValues(jobType, status).Inc()
	m.JobDuration.Observe(d.Seconds())
}

// BatchStarted increments the in-flight gauge.
func (m *Metrics) BatchStarted() {
	if m != nil {
		m.BatchesInFlight.Inc()
	}
}

// BatchFinished decrements the in-flight gauge.
func (m *Metrics) BatchFinished() {
	if m != nil {
		m.BatchesInFlight.Dec()
	}
}
