package director

import (
	"slices"

	"searchorder/internal/catalog"
)

// Iterator walks directors in index order for one entry. It is a value:
// Advance returns the next iterator and leaves the receiver unchanged.
type Iterator struct {
	code      catalog.Code
	kind      catalog.SearchKind
	directors []Director
	cursor    int
	slots     []Slot
}

// Start positions a new iterator on the first director that can be searched,
// auto-skipping any without a usable last name.
func Start(code catalog.Code, kind catalog.SearchKind, directors []Director) Iterator {
	it := Iterator{code: code, kind: kind, directors: slices.Clone(directors)}
	return it.skipUnusable()
}

// Code is the catalog entry the iterator enriches.
func (it Iterator) Code() catalog.Code { return it.code }

// Kind is the search kind each director session runs.
func (it Iterator) Kind() catalog.SearchKind { return it.kind }

// Cursor is the position of the current director.
func (it Iterator) Cursor() int { return it.cursor }

// Len is the number of directors in scope.
func (it Iterator) Len() int { return len(it.directors) }

// Done reports whether every director has a slot.
func (it Iterator) Done() bool {
	return it.cursor >= len(it.directors)
}

// Current returns the director awaiting a session.
func (it Iterator) Current() (Director, bool) {
	if it.Done() {
		return Director{}, false
	}
	return it.directors[it.cursor], true
}

// Slots returns the slots recorded so far in visit order.
func (it Iterator) Slots() []Slot {
	return slices.Clone(it.slots)
}

// Advance records slot for the current director and moves to the next one.
// The slot's DirectorIndex is forced to the current director.
func (it Iterator) Advance(slot Slot) Iterator {
	d, ok := it.Current()
	if !ok {
		return it
	}
	slot.DirectorIndex = d.Index
	next := it
	next.slots = WithSlot(it.slots, slot)
	next.cursor++
	return next.skipUnusable()
}

func (it Iterator) skipUnusable() Iterator {
	for !it.Done() && !it.directors[it.cursor].Usable() {
		d := it.directors[it.cursor]
		it.slots = WithSlot(it.slots, Slot{DirectorIndex: d.Index, Status: SlotAutoSkipped})
		it.cursor++
	}
	return it
}
