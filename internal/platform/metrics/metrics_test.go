package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderCounters(t *testing.T) {
	m := New()

	m.IncrementOrdersCreated()
	m.IncrementOrdersCreated()
	m.DecrementOrdersActive()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersActive))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementOrdersCreated()
		m.DecrementOrdersActive()
		m.ObserveHTTPRequest("/orders", 200)
	})
}

func TestObserveHTTPRequestStatusClass(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest("/orders", 404)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/orders", "4xx")))
}
