package catalog

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	dErrors "searchorder/pkg/domain-errors"
)

// Entry describes one orderable search item. Entries are immutable once the
// catalog is built.
type Entry struct {
	Code        Code
	Category    Category
	DisplayName string
	// BasePrice is the unit tariff for flat, per-match and per-director entries.
	// Per-type and per-jurisdiction entries price from the tariff tables instead.
	BasePrice              decimal.Decimal
	Pricing                PricingMode
	Kind                   SearchKind
	RequiresDisambiguation bool
	PerDirector            bool
	// SatisfiedBy names a main-category entry that already covers this add-on.
	SatisfiedBy Code
	// NoLocator drops the per-state locator fee (title reference searches
	// already know the title).
	NoLocator bool
	// VisibleFor restricts the entry to subjects of these kinds. Empty means all.
	VisibleFor []SubjectKind
}

// VisibleTo reports whether the entry is offered for a subject kind.
func (e Entry) VisibleTo(kind SubjectKind) bool {
	return len(e.VisibleFor) == 0 || slices.Contains(e.VisibleFor, kind)
}

// IsPPSR reports whether the entry resolves without registry disambiguation.
func (e Entry) IsPPSR() bool {
	return e.Kind == KindPPSR
}

// TitleSearchFull holds the per-title tariffs of a jurisdiction.
type TitleSearchFull struct {
	Title      decimal.Decimal
	Historical decimal.Decimal
}

// StateTariff prices land-title searches in one jurisdiction.
type StateTariff struct {
	Locator         decimal.Decimal
	TitleSearchFull TitleSearchFull
}

// Tariffs are the parameterised price tables used by non-flat entries.
type Tariffs struct {
	Asic           map[AsicType]decimal.Decimal
	Court          map[CourtType]decimal.Decimal
	States         map[State]StateTariff
	AddOnSurcharge decimal.Decimal
}

// Catalog is the static description of every orderable item.
type Catalog struct {
	entries []Entry
	index   map[Code]int
	tariffs Tariffs
}

// New validates entries and tariffs and builds a catalog. Codes must be unique
// and SatisfiedBy must reference an entry in the catalog.
func New(entries []Entry, tariffs Tariffs) (*Catalog, error) {
	c := &Catalog{
		entries: slices.Clone(entries),
		index:   make(map[Code]int, len(entries)),
		tariffs: tariffs,
	}
	for i, e := range c.entries {
		if e.Code == "" || e.Code.IsSelectAll() {
			return nil, fmt.Errorf("catalog entry %d: invalid code %q", i, e.Code)
		}
		if _, dup := c.index[e.Code]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate code %s", i, e.Code)
		}
		c.index[e.Code] = i
	}
	for _, e := range c.entries {
		if e.SatisfiedBy != "" {
			if _, ok := c.index[e.SatisfiedBy]; !ok {
				return nil, fmt.Errorf("catalog entry %s: satisfied by unknown code %s", e.Code, e.SatisfiedBy)
			}
		}
		if e.Pricing == PricingPerJurisdiction && len(tariffs.States) == 0 {
			return nil, fmt.Errorf("catalog entry %s: per-jurisdiction pricing without state tariffs", e.Code)
		}
	}
	return c, nil
}

// Entry looks up an entry by code.
func (c *Catalog) Entry(code Code) (Entry, bool) {
	i, ok := c.index[code]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Lookup is Entry with a validation error for unknown codes.
func (c *Catalog) Lookup(code Code) (Entry, error) {
	e, ok := c.Entry(code)
	if !ok {
		return Entry{}, dErrors.Newf(dErrors.CodeValidation, "unknown search code %q", code)
	}
	return e, nil
}

// Position returns the catalog order of a code, or -1.
func (c *Catalog) Position(code Code) int {
	if i, ok := c.index[code]; ok {
		return i
	}
	return -1
}

// Entries returns every entry in catalog order.
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// InCategory returns the entries of a category in catalog order.
func (c *Catalog) InCategory(cat Category) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Visible returns the entries of a category offered to a subject kind.
func (c *Catalog) Visible(cat Category, kind SubjectKind) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Category == cat && e.VisibleTo(kind) {
			out = append(out, e)
		}
	}
	return out
}

// ByKind returns the entries performing a search kind, in catalog order.
func (c *Catalog) ByKind(kind SearchKind) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// AsicPrice returns the tariff for one ASIC extract type.
func (c *Catalog) AsicPrice(t AsicType) (decimal.Decimal, bool) {
	p, ok := c.tariffs.Asic[t]
	return p, ok
}

// CourtPrice returns the tariff for one concrete court type.
func (c *Catalog) CourtPrice(t CourtType) (decimal.Decimal, bool) {
	p, ok := c.tariffs.Court[t]
	return p, ok
}

// StateTariff returns the land-title tariff of a jurisdiction.
func (c *Catalog) StateTariff(s State) (StateTariff, bool) {
	t, ok := c.tariffs.States[s]
	return t, ok
}

// AddOnSurcharge is the flat land-title add-on amount.
func (c *Catalog) AddOnSurcharge() decimal.Decimal {
	return c.tariffs.AddOnSurcharge
}
