// Package resolution is the read model of everything disambiguation and
// count lookups decided for an order. Pricing and dispatch consume it.
package resolution

import (
	"maps"
	"slices"

	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/providers"
)

// Outcome is the terminal result of a subject session.
type Outcome struct {
	Kind     catalog.SearchKind
	Status   disambiguation.Status
	Selected []disambiguation.Candidate
	Offered  int
}

// APISelected counts chosen registry candidates, ignoring the fallback.
func (o Outcome) APISelected() int {
	return disambiguation.CountAPI(o.Selected)
}

// Resolved reports whether the user confirmed the session.
func (o Outcome) Resolved() bool {
	return o.Status == disambiguation.StatusResolved
}

// CountKey addresses title counts for one entry in one state.
type CountKey struct {
	Code  catalog.Code
	State catalog.State
}

// TitleCounts are the known title counts of a search. Unknown counts are
// placeholders until a counts lookup succeeds.
type TitleCounts struct {
	Known           bool
	Current         int
	Historical      int
	TitleReferences []providers.TitleReference
}

// Snapshot is an immutable resolution view.
type Snapshot struct {
	subject   map[catalog.SearchKind]Outcome
	directors []director.Director
	slots     map[catalog.Code][]director.Slot
	recorded  map[catalog.Code]bool
	counts    map[CountKey]TitleCounts
}

// Builder assembles a snapshot.
type Builder struct {
	s Snapshot
}

// NewBuilder starts an empty snapshot.
func NewBuilder() *Builder {
	return &Builder{s: Snapshot{
		subject:  make(map[catalog.SearchKind]Outcome),
		slots:    make(map[catalog.Code][]director.Slot),
		recorded: make(map[catalog.Code]bool),
		counts:   make(map[CountKey]TitleCounts),
	}}
}

// Outcome records a subject session outcome.
func (b *Builder) Outcome(o Outcome) *Builder {
	o.Selected = slices.Clone(o.Selected)
	b.s.subject[o.Kind] = o
	return b
}

// Directors records the director list.
func (b *Builder) Directors(ds []director.Director) *Builder {
	b.s.directors = slices.Clone(ds)
	return b
}

// Slots records the completed director walk of an entry.
func (b *Builder) Slots(code catalog.Code, slots []director.Slot) *Builder {
	b.s.slots[code] = slices.Clone(slots)
	return b
}

// Recorded marks a no-friction entry as resolved.
func (b *Builder) Recorded(code catalog.Code) *Builder {
	b.s.recorded[code] = true
	return b
}

// Counts records title counts for an entry and state.
func (b *Builder) Counts(key CountKey, c TitleCounts) *Builder {
	c.TitleReferences = slices.Clone(c.TitleReferences)
	b.s.counts[key] = c
	return b
}

// Build returns the snapshot. The builder must not be used afterwards.
func (b *Builder) Build() Snapshot {
	return b.s
}

// Outcome returns the subject outcome for a kind.
func (s Snapshot) Outcome(kind catalog.SearchKind) (Outcome, bool) {
	o, ok := s.subject[kind]
	return o, ok
}

// Directors returns the director list.
func (s Snapshot) Directors() []director.Director {
	return slices.Clone(s.directors)
}

// Slots returns the completed director slots of an entry, nil when the walk
// has not completed.
func (s Snapshot) Slots(code catalog.Code) []director.Slot {
	return slices.Clone(s.slots[code])
}

// IsRecorded reports whether a no-friction entry was recorded.
func (s Snapshot) IsRecorded(code catalog.Code) bool {
	return s.recorded[code]
}

// Counts returns title counts for an entry and state; the zero value (not
// Known) when no lookup has succeeded.
func (s Snapshot) Counts(code catalog.Code, state catalog.State) TitleCounts {
	return s.counts[CountKey{Code: code, State: state}]
}

// WithCounts returns a copy of s with the given counts merged in.
func (s Snapshot) WithCounts(counts map[CountKey]TitleCounts) Snapshot {
	out := s
	out.counts = maps.Clone(s.counts)
	if out.counts == nil {
		out.counts = make(map[CountKey]TitleCounts, len(counts))
	}
	for k, v := range counts {
		out.counts[k] = v
	}
	return out
}
