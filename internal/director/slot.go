package director

import (
	"slices"

	"searchorder/internal/disambiguation"
)

// SlotStatus is how a director was processed for one search kind.
type SlotStatus string

const (
	SlotResolved SlotStatus = "resolved"
	SlotSkipped  SlotStatus = "skipped"
	// SlotAutoSkipped marks a director without a usable name.
	SlotAutoSkipped SlotStatus = "auto_skipped"
	// SlotRecorded marks a director searched without disambiguation (PPSR).
	SlotRecorded SlotStatus = "recorded"
)

// Slot is an immutable snapshot of one director's outcome for one kind.
// A nil Matches is a null match.
type Slot struct {
	DirectorIndex int                        `json:"director_index"`
	Status        SlotStatus                 `json:"status"`
	Matches       []disambiguation.Candidate `json:"matches"`
	// Offered counts registry candidates the lookup returned.
	Offered int `json:"offered"`
}

// Billable reports whether the slot produces a report.
func (s Slot) Billable() bool {
	return s.Status == SlotResolved || s.Status == SlotRecorded
}

// WithSlot returns a new slot list with slot replacing any slot of the same
// director, or appended. The input is never modified.
func WithSlot(slots []Slot, slot Slot) []Slot {
	slot.Matches = slices.Clone(slot.Matches)
	out := make([]Slot, 0, len(slots)+1)
	replaced := false
	for _, s := range slots {
		if s.DirectorIndex == slot.DirectorIndex {
			out = append(out, slot)
			replaced = true
			continue
		}
		out = append(out, s)
	}
	if !replaced {
		out = append(out, slot)
	}
	return out
}

// RecordAll writes a recorded null slot for every director. Used for kinds
// that have no registry disambiguation.
func RecordAll(directors []Director) []Slot {
	var out []Slot
	for _, d := range directors {
		out = WithSlot(out, Slot{DirectorIndex: d.Index, Status: SlotRecorded})
	}
	return out
}
