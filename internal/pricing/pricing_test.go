package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/providers"
	"searchorder/internal/resolution"
	"searchorder/internal/selection"
)

var cat = catalog.Default()

func api(keys ...string) []disambiguation.Candidate {
	out := make([]disambiguation.Candidate, 0, len(keys))
	for _, k := range keys {
		out = append(out, disambiguation.Candidate{Provider: "registry", IdentityKey: k})
	}
	return out
}

var fallback = disambiguation.Candidate{Provider: disambiguation.FallbackProvider, IdentityKey: "fallback:JANE CITIZEN", Fallback: true}

func orgSnapshot(active ...catalog.Code) selection.Snapshot {
	return selection.Snapshot{
		SubjectKind:   catalog.SubjectOrganisation,
		Active:        active,
		AsicTypes:     []catalog.AsicType{catalog.AsicCurrent},
		CourtType:     catalog.CourtAll,
		LandTitle:     selection.LandTitleOptions{Detail: catalog.DetailCurrent},
		DirectorScope: catalog.DirectorsCurrent,
	}
}

func individualSnapshot(active ...catalog.Code) selection.Snapshot {
	snap := orgSnapshot(active...)
	snap.SubjectKind = catalog.SubjectIndividual
	snap.AsicTypes = nil
	return snap
}

func total(b Breakdown) string {
	return b.Total.StringFixed(2)
}

func TestScenarios(t *testing.T) {
	empty := resolution.NewBuilder().Build()

	t.Run("ASIC current plus organisation court", func(t *testing.T) {
		snap := orgSnapshot(catalog.CodeASIC, catalog.CodeCourt)
		b := ComputeTotal(cat, snap, empty, FallbackBillsOne)
		assert.Equal(t, "39.00", total(b))
		assert.Len(t, b.Lines, 2)
	})

	t.Run("individual bankruptcy bills per match", func(t *testing.T) {
		snap := individualSnapshot(catalog.CodeIndividualBankruptcy)
		res := resolution.NewBuilder().Outcome(resolution.Outcome{
			Kind:     catalog.KindBankruptcy,
			Status:   disambiguation.StatusResolved,
			Selected: api("b:1", "b:2"),
			Offered:  3,
		}).Build()
		assert.Equal(t, "80.00", total(ComputeTotal(cat, snap, res, FallbackBillsOne)))
	})

	t.Run("fallback-only bankruptcy bills one unit", func(t *testing.T) {
		snap := individualSnapshot(catalog.CodeIndividualBankruptcy)
		res := resolution.NewBuilder().Outcome(resolution.Outcome{
			Kind:     catalog.KindBankruptcy,
			Status:   disambiguation.StatusResolved,
			Selected: []disambiguation.Candidate{fallback},
		}).Build()
		assert.Equal(t, "40.00", total(ComputeTotal(cat, snap, res, FallbackBillsOne)))
		assert.Equal(t, "40.00", total(ComputeTotal(cat, snap, res, FallbackBillsWhenOffered)))
	})

	t.Run("NSW title reference current", func(t *testing.T) {
		snap := individualSnapshot(catalog.CodeLandTitleReference)
		snap.LandTitle.States = []catalog.State{catalog.StateNSW}
		assert.Equal(t, "27.00", total(ComputeTotal(cat, snap, empty, FallbackBillsOne)))

		snap.LandTitle.AddOn = true
		assert.Equal(t, "67.00", total(ComputeTotal(cat, snap, empty, FallbackBillsOne)))
	})

	t.Run("three directors with matches, fallback and cancel", func(t *testing.T) {
		snap := orgSnapshot(catalog.CodeDirectorBankruptcy)
		res := resolution.NewBuilder().
			Directors([]director.Director{
				{Index: 0, FirstName: "Alice", LastName: "Smith"},
				{Index: 1, FirstName: "Bob", LastName: "Brown"},
				{Index: 2, FirstName: "Carol", LastName: "Jones"},
			}).
			Slots(catalog.CodeDirectorBankruptcy, []director.Slot{
				{DirectorIndex: 0, Status: director.SlotResolved, Matches: api("d:1", "d:2"), Offered: 2},
				{DirectorIndex: 1, Status: director.SlotResolved, Matches: []disambiguation.Candidate{fallback}},
				{DirectorIndex: 2, Status: director.SlotSkipped},
			}).
			Build()

		b := ComputeTotal(cat, snap, res, FallbackBillsOne)
		assert.Equal(t, "120.00", total(b))
		require.Len(t, b.Lines, 2)
		assert.Equal(t, "Director Bankruptcy • Alice Smith", b.Lines[0].Description)
		assert.Equal(t, 2, b.Lines[0].Quantity)

		assert.Equal(t, "80.00", total(ComputeTotal(cat, snap, res, FallbackBillsWhenOffered)),
			"fallback with nothing offered is free under the offered policy")
	})
}

func TestCourtAllBillsBothTypes(t *testing.T) {
	snap := individualSnapshot(catalog.CodeIndividualCourt)
	b := ComputeTotal(cat, snap, resolution.NewBuilder().Build(), FallbackBillsOne)
	assert.Equal(t, "20.00", total(b))
	require.Len(t, b.Lines, 2)

	snap.CourtType = catalog.CourtCivil
	assert.Equal(t, "10.00", total(ComputeTotal(cat, snap, resolution.NewBuilder().Build(), FallbackBillsOne)))
}

func TestLandTitleDetailTiers(t *testing.T) {
	key := resolution.CountKey{Code: catalog.CodeLandTitleAddress, State: catalog.StateNSW}
	res := resolution.NewBuilder().Counts(key, resolution.TitleCounts{Known: true, Current: 2, Historical: 1}).Build()

	tests := []struct {
		detail catalog.DetailTier
		want   string
	}{
		{catalog.DetailSummary, "15.00"},
		{catalog.DetailCurrent, "69.00"},
		{catalog.DetailPast, "50.00"},
		{catalog.DetailAll, "104.00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.detail), func(t *testing.T) {
			snap := individualSnapshot(catalog.CodeLandTitleAddress)
			snap.LandTitle = selection.LandTitleOptions{Detail: tt.detail, States: []catalog.State{catalog.StateNSW}}
			assert.Equal(t, tt.want, total(ComputeTotal(cat, snap, res, FallbackBillsOne)))
		})
	}
}

func TestUnknownCountsBillOneTitlePerState(t *testing.T) {
	snap := individualSnapshot(catalog.CodeLandTitleAddress)
	snap.LandTitle.States = []catalog.State{catalog.StateNSW, catalog.StateVIC}
	// NSW 15 + 27, VIC 12.50 + 24
	assert.Equal(t, "78.50", total(ComputeTotal(cat, snap, resolution.NewBuilder().Build(), FallbackBillsOne)))
}

func TestSatisfiedAddOnIsNotBilledTwice(t *testing.T) {
	snap := orgSnapshot(catalog.CodeLandTitleOrganisation, catalog.CodeAddLandTitleOrganisation)
	snap.LandTitle.States = []catalog.State{catalog.StateQLD}
	b := ComputeTotal(cat, snap, resolution.NewBuilder().Build(), FallbackBillsOne)
	for _, l := range b.Lines {
		assert.Equal(t, catalog.CodeLandTitleOrganisation, l.Code)
	}
	assert.Equal(t, "40.50", total(b))
}

func TestDirectorPPSRBillsRecordedDirectors(t *testing.T) {
	snap := orgSnapshot(catalog.CodeDirectorPPSR)
	res := resolution.NewBuilder().
		Slots(catalog.CodeDirectorPPSR, director.RecordAll([]director.Director{
			{Index: 0, LastName: "Smith"}, {Index: 1, LastName: "Brown"}, {Index: 2, LastName: "Jones"},
		})).
		Build()
	assert.Equal(t, "36.00", total(ComputeTotal(cat, snap, res, FallbackBillsOne)))
}

func TestComputeTotalIsPure(t *testing.T) {
	snap := orgSnapshot(catalog.CodeASIC, catalog.CodeATO)
	snap.AsicTypes = []catalog.AsicType{catalog.AsicCurrent, catalog.AsicHistorical}
	before := append([]catalog.Code(nil), snap.Active...)
	res := resolution.NewBuilder().Build()

	first := ComputeTotal(cat, snap, res, FallbackBillsOne)
	second := ComputeTotal(cat, snap, res, FallbackBillsOne)

	assert.Equal(t, first, second)
	assert.Equal(t, before, snap.Active)
	assert.Equal(t, "93.00", total(first))
}

func TestAddingEntriesNeverLowersTotal(t *testing.T) {
	snap := orgSnapshot()
	snap.LandTitle.States = []catalog.State{catalog.StateNSW, catalog.StateWA}
	res := resolution.NewBuilder().Build()

	last := ComputeTotal(cat, snap, res, FallbackBillsOne).Total
	for _, e := range cat.Entries() {
		if !e.VisibleTo(catalog.SubjectOrganisation) {
			continue
		}
		snap.Active = append(snap.Active, e.Code)
		next := ComputeTotal(cat, snap, res, FallbackBillsOne).Total
		assert.True(t, next.GreaterThanOrEqual(last), "adding %s lowered the total", e.Code)
		last = next
	}
}

func TestTitleReferences(t *testing.T) {
	counts := resolution.TitleCounts{
		Known:      true,
		Current:    2,
		Historical: 1,
		TitleReferences: []providers.TitleReference{
			{Reference: "1/SP100"},
			{Reference: "OLD/1", Historical: true},
		},
	}

	t.Run("summary retrieves no titles", func(t *testing.T) {
		assert.Equal(t, 0, TitleReferences(catalog.DetailSummary, counts).Units())
	})

	t.Run("current pads known references to the count", func(t *testing.T) {
		refs, ok := TitleReferences(catalog.DetailCurrent, counts).(Flat)
		require.True(t, ok)
		assert.False(t, refs.Historical)
		require.Len(t, refs.Items, 2)
		assert.Equal(t, "1/SP100", refs.Items[0].Reference)
		assert.Empty(t, refs.Items[1].Reference)
	})

	t.Run("all splits current and historical", func(t *testing.T) {
		refs, ok := TitleReferences(catalog.DetailAll, counts).(Split)
		require.True(t, ok)
		assert.Len(t, refs.Current, 2)
		assert.Equal(t, "OLD/1", refs.Historical[0].Reference)
	})

	t.Run("unknown counts stand in as one title", func(t *testing.T) {
		assert.Equal(t, 1, TitleReferences(catalog.DetailPast, resolution.TitleCounts{}).Units())
	})
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, FallbackBillsOne, p)

	p, err = ParsePolicy("FALLBACK_BILLS_WHEN_OFFERED")
	require.NoError(t, err)
	assert.Equal(t, FallbackBillsWhenOffered, p)

	_, err = ParsePolicy("free")
	assert.Error(t, err)
}
