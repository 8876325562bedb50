package pricing

import (
	"slices"

	"searchorder/internal/catalog"
	"searchorder/internal/providers"
	"searchorder/internal/resolution"
)

// TitleRefs is the set of titles a land-title search retrieves in one state.
// It is either Flat or Split.
type TitleRefs interface {
	isTitleRefs()
	// Units is the number of titles billed.
	Units() int
}

// Flat lists titles of a single tariff: current titles, or historical ones
// when Historical is set. A summary search has no items.
type Flat struct {
	Historical bool
	Items      []providers.TitleReference
}

// Split lists current and historical titles billed at their own tariffs.
type Split struct {
	Current    []providers.TitleReference
	Historical []providers.TitleReference
}

func (Flat) isTitleRefs()  {}
func (Split) isTitleRefs() {}

func (f Flat) Units() int  { return len(f.Items) }
func (s Split) Units() int { return len(s.Current) + len(s.Historical) }

// TitleReferences resolves the titles retrieved for a detail tier from the
// known counts. Unknown counts stand in as a single unreferenced title.
func TitleReferences(detail catalog.DetailTier, counts resolution.TitleCounts) TitleRefs {
	switch detail {
	case catalog.DetailSummary:
		return Flat{}
	case catalog.DetailPast:
		return Flat{Historical: true, Items: titles(counts, true)}
	case catalog.DetailAll:
		return Split{Current: titles(counts, false), Historical: titles(counts, true)}
	default:
		return Flat{Items: titles(counts, false)}
	}
}

// titles returns the known references of one kind padded to the reported
// count with empty placeholders.
func titles(counts resolution.TitleCounts, historical bool) []providers.TitleReference {
	if !counts.Known {
		return []providers.TitleReference{{Historical: historical}}
	}
	want := counts.Current
	if historical {
		want = counts.Historical
	}
	var out []providers.TitleReference
	for _, ref := range counts.TitleReferences {
		if ref.Historical == historical && len(out) < want {
			out = append(out, ref)
		}
	}
	for len(out) < want {
		out = append(out, providers.TitleReference{Historical: historical})
	}
	return slices.Clip(out)
}
