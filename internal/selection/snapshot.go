package selection

import (
	"slices"

	"searchorder/internal/catalog"
)

// Snapshot is an immutable view of a selection. Pricing and dispatch read
// snapshots only.
type Snapshot struct {
	SubjectKind   catalog.SubjectKind
	Active        []catalog.Code
	Pending       []catalog.Code
	SelectAll     []catalog.Category
	AsicTypes     []catalog.AsicType
	CourtType     catalog.CourtType
	LandTitle     LandTitleOptions
	DirectorScope catalog.DirectorScope
}

// Snapshot copies the current selection.
func (m *Model) Snapshot() Snapshot {
	var all []catalog.Category
	for _, cat := range catalog.Categories() {
		if m.selectAll[cat] {
			all = append(all, cat)
		}
	}
	return Snapshot{
		SubjectKind:   m.subjectKind,
		Active:        m.Active(),
		Pending:       m.Pending(),
		SelectAll:     all,
		AsicTypes:     m.AsicTypes(),
		CourtType:     m.courtType,
		LandTitle:     m.landTitle.clone(),
		DirectorScope: m.directorScope,
	}
}

// IsActive reports whether the snapshot has an entry active.
func (s Snapshot) IsActive(code catalog.Code) bool {
	return slices.Contains(s.Active, code)
}
