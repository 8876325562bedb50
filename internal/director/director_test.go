package director

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/providers"
)

func TestFromOfficers(t *testing.T) {
	officers := []providers.Officer{
		{FirstName: "Past", LastName: "One", Role: "DIRECTOR", Status: "past"},
		{FirstName: "Cur", LastName: "One", Role: "director", Status: "current", DateOfBirth: "05/03/1980"},
		{FirstName: "Sec", LastName: "Retary", Role: "SECRETARY", Status: "current"},
		{FirstName: "Cur", LastName: "Two", Role: "DIRECTOR", Status: "current", DateOfBirth: "07-11-1975"},
	}

	got := FromOfficers(officers)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Cur One", "Cur Two", "Past One"}, []string{got[0].FullName(), got[1].FullName(), got[2].FullName()})
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Index, got[1].Index, got[2].Index})
	assert.Equal(t, "1980-03-05", got[0].DateOfBirth)
	assert.Equal(t, "1975-11-07", got[1].DateOfBirth, "dashed registry dates are kept")
	assert.Equal(t, StatusPast, got[2].Status)

	assert.Len(t, InScope(got, catalog.DirectorsCurrent), 2)
	assert.Len(t, InScope(got, catalog.DirectorsAll), 3)
}

func TestIteratorVisitsEachDirectorOnceInOrder(t *testing.T) {
	directors := []Director{
		{Index: 0, LastName: "A"},
		{Index: 1, LastName: "B"},
		{Index: 2, LastName: "C"},
	}
	it := Start(catalog.CodeDirectorBankruptcy, catalog.KindBankruptcy, directors)

	var visited []int
	for !it.Done() {
		d, ok := it.Current()
		require.True(t, ok)
		visited = append(visited, d.Index)
		status := SlotResolved
		if d.Index == 1 {
			status = SlotSkipped
		}
		it = it.Advance(Slot{Status: status})
	}

	assert.Equal(t, []int{0, 1, 2}, visited)
	slots := it.Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, SlotSkipped, slots[1].Status)
	assert.Equal(t, 1, slots[1].DirectorIndex)
}

func TestIteratorAutoSkipsUnusableDirectors(t *testing.T) {
	directors := []Director{
		{Index: 0, FirstName: "No", LastName: " "},
		{Index: 1, LastName: "B"},
		{Index: 2, FirstName: "Also"},
	}
	it := Start(catalog.CodeDirectorRelatedEntities, catalog.KindRelatedEntities, directors)

	d, ok := it.Current()
	require.True(t, ok)
	assert.Equal(t, 1, d.Index)

	it = it.Advance(Slot{Status: SlotResolved})
	assert.True(t, it.Done())

	slots := it.Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, SlotAutoSkipped, slots[0].Status)
	assert.Nil(t, slots[0].Matches)
	assert.Equal(t, SlotAutoSkipped, slots[2].Status)
}

func TestIteratorIsAValue(t *testing.T) {
	it := Start(catalog.CodeDirectorBankruptcy, catalog.KindBankruptcy, []Director{{Index: 0, LastName: "A"}, {Index: 1, LastName: "B"}})
	next := it.Advance(Slot{Status: SlotResolved})

	assert.Equal(t, 0, it.Cursor())
	assert.Empty(t, it.Slots())
	assert.Equal(t, 1, next.Cursor())
	assert.Len(t, next.Slots(), 1)
}

func TestEmptyDirectorListCompletesImmediately(t *testing.T) {
	it := Start(catalog.CodeDirectorBankruptcy, catalog.KindBankruptcy, nil)
	assert.True(t, it.Done())
	_, ok := it.Current()
	assert.False(t, ok)
}

func TestWithSlotIsPure(t *testing.T) {
	matches := []disambiguation.Candidate{{IdentityKey: "a"}}
	base := []Slot{{DirectorIndex: 0, Status: SlotResolved}}

	next := WithSlot(base, Slot{DirectorIndex: 0, Status: SlotSkipped, Matches: matches})
	matches[0].IdentityKey = "mutated"

	assert.Equal(t, SlotResolved, base[0].Status)
	assert.Equal(t, SlotSkipped, next[0].Status)
	assert.Equal(t, "a", next[0].Matches[0].IdentityKey)
}

func TestRecordAll(t *testing.T) {
	slots := RecordAll([]Director{{Index: 0, LastName: "A"}, {Index: 1}})
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Equal(t, SlotRecorded, s.Status)
		assert.Nil(t, s.Matches)
		assert.True(t, s.Billable())
	}
}
