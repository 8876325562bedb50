package order

import (
	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/pricing"
	"searchorder/internal/selection"
	"searchorder/internal/sequencer"
	"searchorder/internal/subject"
)

// WizardState is what the order screen shows. It is one of Idle,
// SelectingSearches, AwaitingDisambiguation, Pricing or Submitting.
type WizardState interface {
	Name() string
}

// Idle has no subject yet.
type Idle struct{}

// SelectingSearches has a subject and no active searches.
type SelectingSearches struct {
	Subject subject.Subject
}

// AwaitingDisambiguation has a disambiguation dialog open.
type AwaitingDisambiguation struct {
	Session disambiguation.Session
}

// Pricing has active searches and a running total.
type Pricing struct {
	Breakdown pricing.Breakdown
}

// Submitting has handed the order to the dispatcher.
type Submitting struct {
	Batch *dispatch.Batch
}

func (Idle) Name() string                   { return "idle" }
func (SelectingSearches) Name() string      { return "selecting_searches" }
func (AwaitingDisambiguation) Name() string { return "awaiting_disambiguation" }
func (Pricing) Name() string                { return "pricing" }
func (Submitting) Name() string             { return "submitting" }

// Summary is a consistent read of a whole wizard.
type Summary struct {
	ID        string
	Category  catalog.SubjectKind
	State     WizardState
	Stage     sequencer.Stage
	Subject   subject.Subject
	Selection selection.Snapshot
	Directors []director.Director
	Sessions  []disambiguation.Session
	Active    *disambiguation.Session
	Price     pricing.Breakdown
	Submitted bool
}
