package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the modal sequence.
type Metrics struct {
	// Sessions opened, by stage
	StageEntries *prometheus.CounterVec

	// User decisions, by stage and outcome ("confirmed", "cancelled")
	Decisions *prometheus.CounterVec

	// Fetch results dropped because the session moved on
	StaleResults prometheus.Counter

	// Confirm or cancel against a session that is not active
	SequenceErrors prometheus.Counter
}

// New registers sequencer metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StageEntries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_sequencer_stage_entries_total",
			Help: "Disambiguation sessions opened by stage",
		}, []string{"stage"}),

		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_sequencer_decisions_total",
			Help: "Disambiguation sessions decided by the user",
		}, []string{"stage", "outcome"}),

		StaleResults: f.NewCounter(prometheus.CounterOpts{
			Name: "searchorder_sequencer_stale_results_total",
			Help: "Candidate fetch results discarded as stale",
		}),

		SequenceErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "searchorder_sequencer_sequence_errors_total",
			Help: "Decisions addressed to a session that is not active",
		}),
	}
}

// IncrementStageEntry records an opened session.
func (m *Metrics) IncrementStageEntry(stage string) {
	if m != nil {
		m.StageEntries.WithLabelValues(stage).Inc()
	}
}

// IncrementDecision records a confirm or cancel.
func (m *Metrics) IncrementDecision(stage, outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(stage, outcome).Inc()
	}
}

// IncrementStaleResult records a discarded fetch result.
func (m *Metrics) IncrementStaleResult() {
	if m != nil {
		m.StaleResults.Inc()
	}
}

// IncrementSequenceError records a decision for an inactive session.
func (m *Metrics) IncrementSequenceError() {
	if m != nil {
		m.SequenceErrors.Inc()
	}
}
