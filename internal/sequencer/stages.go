package sequencer

import (
	"slices"

	"searchorder/internal/catalog"
)

// Stage is a state of the modal sequence.
type Stage string

const (
	StageIdle          Stage = "IDLE"
	StageBankruptcy    Stage = "BANKRUPTCY"
	StageRelated       Stage = "RELATED"
	StageCourtCriminal Stage = "COURT_CRIMINAL"
	StageCourtCivil    Stage = "COURT_CIVIL"
	StageLandTitle     Stage = "LAND_TITLE"
	StageDone          Stage = "DONE"
)

// stageDef binds a stage to the catalog entries it serves and the session
// kind it opens.
type stageDef struct {
	stage   Stage
	entries catalog.SearchKind
	session catalog.SearchKind
	court   catalog.CourtType
}

var priority = []stageDef{
	{stage: StageBankruptcy, entries: catalog.KindBankruptcy, session: catalog.KindBankruptcy},
	{stage: StageRelated, entries: catalog.KindRelatedEntities, session: catalog.KindRelatedEntities},
	{stage: StageCourtCriminal, entries: catalog.KindCourt, session: catalog.KindCourtCriminal, court: catalog.CourtCriminal},
	{stage: StageCourtCivil, entries: catalog.KindCourt, session: catalog.KindCourtCivil, court: catalog.CourtCivil},
	{stage: StageLandTitle, entries: catalog.KindLandTitlePerson, session: catalog.KindLandTitlePerson},
}

// Stages returns the disambiguation stages in the order they are visited.
func Stages() []Stage {
	out := make([]Stage, 0, len(priority))
	for _, d := range priority {
		out = append(out, d.stage)
	}
	return out
}

// applies reports whether the stage runs under the chosen court type.
func (d stageDef) applies(courtType catalog.CourtType) bool {
	return d.court == "" || slices.Contains(courtType.Covers(), d.court)
}

func courtSessionKind(t catalog.CourtType) catalog.SearchKind {
	if t == catalog.CourtCivil {
		return catalog.KindCourtCivil
	}
	return catalog.KindCourtCriminal
}

// sessionKinds lists the session kinds an entry needs resolved before it
// can activate. A court entry needs one per covered court type.
func sessionKinds(e catalog.Entry, courtType catalog.CourtType) []catalog.SearchKind {
	if e.Kind != catalog.KindCourt {
		return []catalog.SearchKind{e.Kind}
	}
	var out []catalog.SearchKind
	for _, t := range courtType.Covers() {
		out = append(out, courtSessionKind(t))
	}
	return out
}
