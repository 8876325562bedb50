// Package selection tracks which catalog entries an order has active, which
// are staged awaiting disambiguation, and the sub-options that parameterise
// pricing and dispatch.
package selection

import (
	"slices"
	"strconv"
	"strings"

	"searchorder/internal/catalog"
	dErrors "searchorder/pkg/domain-errors"
)

// ChangeKind describes what a toggle did.
type ChangeKind string

const (
	ChangeActivated   ChangeKind = "activated"
	ChangeDeactivated ChangeKind = "deactivated"
	// ChangeStaged means the entry awaits disambiguation before it activates.
	ChangeStaged   ChangeKind = "staged"
	ChangeUnstaged ChangeKind = "unstaged"
)

// Change is one entry-level mutation.
type Change struct {
	Code catalog.Code
	Kind ChangeKind
}

// Field names a sub-option settable through SetSubOption.
type Field string

const (
	FieldAsicTypes          Field = "asic_types"
	FieldCourtType          Field = "court_type"
	FieldLandTitleDetail    Field = "land_title.detail"
	FieldLandTitleAddOn     Field = "land_title.add_on"
	FieldLandTitleStates    Field = "land_title.states"
	FieldLandTitleReference Field = "land_title.reference"
	FieldLandTitleAddress   Field = "land_title.address"
	FieldDirectorScope      Field = "director_scope"
)

// LandTitleOptions parameterise every land-title entry of the order.
type LandTitleOptions struct {
	Detail    catalog.DetailTier
	AddOn     bool
	States    []catalog.State
	Reference string
	Address   string
}

func defaultLandTitle() LandTitleOptions {
	return LandTitleOptions{Detail: catalog.DetailCurrent}
}

func (o LandTitleOptions) clone() LandTitleOptions {
	o.States = slices.Clone(o.States)
	return o
}

// Model is the mutable selection of one order. It is not safe for concurrent
// use; the owning wizard serialises access.
type Model struct {
	cat         *catalog.Catalog
	subjectKind catalog.SubjectKind

	active    map[catalog.Code]bool
	pending   map[catalog.Code]bool
	selectAll map[catalog.Category]bool

	asicTypes     map[catalog.AsicType]bool
	courtType     catalog.CourtType
	landTitle     LandTitleOptions
	directorScope catalog.DirectorScope

	frozen bool
}

// New returns an empty selection for orders about a subject kind.
func New(cat *catalog.Catalog, kind catalog.SubjectKind) *Model {
	return &Model{
		cat:           cat,
		subjectKind:   kind,
		active:        make(map[catalog.Code]bool),
		pending:       make(map[catalog.Code]bool),
		selectAll:     make(map[catalog.Category]bool),
		asicTypes:     make(map[catalog.AsicType]bool),
		courtType:     catalog.CourtAll,
		landTitle:     defaultLandTitle(),
		directorScope: catalog.DirectorsCurrent,
	}
}

// SubjectKind is the subject kind the selection was created for.
func (m *Model) SubjectKind() catalog.SubjectKind {
	return m.subjectKind
}

// Catalog returns the catalog the selection draws from.
func (m *Model) Catalog() *catalog.Catalog {
	return m.cat
}

// Freeze rejects every later mutation. Called when the order is submitted.
func (m *Model) Freeze() {
	m.frozen = true
}

// Frozen reports whether the selection has been handed to dispatch.
func (m *Model) Frozen() bool {
	return m.frozen
}

func (m *Model) checkMutable() error {
	if m.frozen {
		return dErrors.New(dErrors.CodeValidation, "order has been submitted; selection is frozen")
	}
	return nil
}

// Visible returns the entries of a category currently offered. Additional
// entries already satisfied by an active main-category entry are hidden.
func (m *Model) Visible(cat catalog.Category) []catalog.Entry {
	var out []catalog.Entry
	for _, e := range m.cat.Visible(cat, m.subjectKind) {
		if e.SatisfiedBy != "" && m.active[e.SatisfiedBy] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m *Model) lookupVisible(code catalog.Code) (catalog.Entry, error) {
	e, err := m.cat.Lookup(code)
	if err != nil {
		return catalog.Entry{}, err
	}
	if !e.VisibleTo(m.subjectKind) {
		return catalog.Entry{}, dErrors.Newf(dErrors.CodeValidation, "%s is not offered for %s searches", code, m.subjectKind)
	}
	return e, nil
}

// Toggle flips one entry. Select-all pseudo codes delegate to ToggleSelectAll
// and report only the first change; use ToggleSelectAll for the full list.
func (m *Model) Toggle(code catalog.Code) (Change, error) {
	if err := m.checkMutable(); err != nil {
		return Change{}, err
	}
	if code.IsSelectAll() {
		cat, err := catalog.ParseCategory(strings.TrimSuffix(string(code), ":ALL"))
		if err != nil {
			return Change{}, err
		}
		changes, err := m.ToggleSelectAll(cat)
		if err != nil || len(changes) == 0 {
			return Change{}, err
		}
		return changes[0], nil
	}
	e, err := m.lookupVisible(code)
	if err != nil {
		return Change{}, err
	}
	return m.toggle(e), nil
}

func (m *Model) toggle(e catalog.Entry) Change {
	defer m.recomputeSelectAll()
	switch {
	case m.active[e.Code]:
		delete(m.active, e.Code)
		delete(m.pending, e.Code)
		return Change{Code: e.Code, Kind: ChangeDeactivated}
	case m.pending[e.Code]:
		delete(m.pending, e.Code)
		return Change{Code: e.Code, Kind: ChangeUnstaged}
	case e.RequiresDisambiguation:
		m.pending[e.Code] = true
		return Change{Code: e.Code, Kind: ChangeStaged}
	default:
		m.activate(e)
		return Change{Code: e.Code, Kind: ChangeActivated}
	}
}

// ToggleSelectAll deactivates every visible entry of the category when its
// pseudo-entry is present, otherwise toggles on every visible entry that is
// neither active nor staged.
func (m *Model) ToggleSelectAll(cat catalog.Category) ([]Change, error) {
	if err := m.checkMutable(); err != nil {
		return nil, err
	}
	visible := m.Visible(cat)
	var changes []Change
	if m.selectAll[cat] {
		for _, e := range visible {
			if m.active[e.Code] || m.pending[e.Code] {
				delete(m.active, e.Code)
				delete(m.pending, e.Code)
				changes = append(changes, Change{Code: e.Code, Kind: ChangeDeactivated})
			}
		}
		m.recomputeSelectAll()
		return changes, nil
	}
	for _, e := range visible {
		if m.active[e.Code] || m.pending[e.Code] {
			continue
		}
		changes = append(changes, m.toggle(e))
	}
	return changes, nil
}

// Activate marks an entry active and clears any staged state. The sequencer
// calls it once disambiguation for the entry is complete.
func (m *Model) Activate(code catalog.Code) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	e, err := m.cat.Lookup(code)
	if err != nil {
		return err
	}
	m.activate(e)
	m.recomputeSelectAll()
	return nil
}

func (m *Model) activate(e catalog.Entry) {
	delete(m.pending, e.Code)
	m.active[e.Code] = true
	if e.Pricing == catalog.PricingPerAsicType && len(m.asicTypes) == 0 {
		m.asicTypes[catalog.AsicCurrent] = true
	}
}

// Deactivate removes an entry from both the active and staged sets.
func (m *Model) Deactivate(code catalog.Code) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	delete(m.active, code)
	delete(m.pending, code)
	m.recomputeSelectAll()
	return nil
}

// ClearPending drops a staged activation without activating it.
func (m *Model) ClearPending(code catalog.Code) {
	delete(m.pending, code)
	m.recomputeSelectAll()
}

// IsActive reports whether an entry is active.
func (m *Model) IsActive(code catalog.Code) bool {
	return m.active[code]
}

// IsPending reports whether an entry is staged awaiting disambiguation.
func (m *Model) IsPending(code catalog.Code) bool {
	return m.pending[code]
}

// IsSelectedOrPending reports whether an entry is active or staged.
func (m *Model) IsSelectedOrPending(code catalog.Code) bool {
	return m.active[code] || m.pending[code]
}

// HasSelectAll reports whether the category's select-all pseudo-entry is present.
func (m *Model) HasSelectAll(cat catalog.Category) bool {
	return m.selectAll[cat]
}

// Active returns active codes in catalog order.
func (m *Model) Active() []catalog.Code {
	return m.inCatalogOrder(m.active)
}

// Pending returns staged codes in catalog order.
func (m *Model) Pending() []catalog.Code {
	return m.inCatalogOrder(m.pending)
}

func (m *Model) inCatalogOrder(set map[catalog.Code]bool) []catalog.Code {
	var out []catalog.Code
	for _, e := range m.cat.Entries() {
		if set[e.Code] {
			out = append(out, e.Code)
		}
	}
	return out
}

// Reset clears every entry of a category and restores the sub-options that
// belong to it.
func (m *Model) Reset(cat catalog.Category) ([]Change, error) {
	if err := m.checkMutable(); err != nil {
		return nil, err
	}
	var changes []Change
	for _, e := range m.cat.InCategory(cat) {
		if m.active[e.Code] || m.pending[e.Code] {
			changes = append(changes, Change{Code: e.Code, Kind: ChangeDeactivated})
		}
		delete(m.active, e.Code)
		delete(m.pending, e.Code)
	}
	switch cat {
	case catalog.CategoryOrganisation:
		m.asicTypes = make(map[catalog.AsicType]bool)
	case catalog.CategoryIndividual:
		m.courtType = catalog.CourtAll
	case catalog.CategoryLandTitle:
		m.landTitle = defaultLandTitle()
	case catalog.CategoryAdditional:
		m.directorScope = catalog.DirectorsCurrent
	}
	m.recomputeSelectAll()
	return changes, nil
}

// SetSubOption parses and stores one sub-option value. List values are comma
// separated.
func (m *Model) SetSubOption(field Field, value string) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch field {
	case FieldAsicTypes:
		types := make(map[catalog.AsicType]bool)
		for _, part := range splitList(value) {
			t, err := catalog.ParseAsicType(part)
			if err != nil {
				return err
			}
			types[t] = true
		}
		m.asicTypes = types
	case FieldCourtType:
		t, err := catalog.ParseCourtType(value)
		if err != nil {
			return err
		}
		m.courtType = t
	case FieldLandTitleDetail:
		t, err := catalog.ParseDetailTier(value)
		if err != nil {
			return err
		}
		m.landTitle.Detail = t
	case FieldLandTitleAddOn:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return dErrors.Newf(dErrors.CodeValidation, "add-on flag %q must be true or false", value)
		}
		m.landTitle.AddOn = b
	case FieldLandTitleStates:
		chosen := make(map[catalog.State]bool)
		for _, part := range splitList(value) {
			s, err := catalog.ParseState(part)
			if err != nil {
				return err
			}
			chosen[s] = true
		}
		var states []catalog.State
		for _, s := range catalog.States() {
			if chosen[s] {
				states = append(states, s)
			}
		}
		m.landTitle.States = states
	case FieldLandTitleReference:
		m.landTitle.Reference = value
	case FieldLandTitleAddress:
		m.landTitle.Address = value
	case FieldDirectorScope:
		d, err := catalog.ParseDirectorScope(value)
		if err != nil {
			return err
		}
		m.directorScope = d
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unknown option %q", field)
	}
	return nil
}

// CourtType returns the court filter.
func (m *Model) CourtType() catalog.CourtType {
	return m.courtType
}

// DirectorScope returns which directors director searches iterate.
func (m *Model) DirectorScope() catalog.DirectorScope {
	return m.directorScope
}

// LandTitle returns a copy of the land-title options.
func (m *Model) LandTitle() LandTitleOptions {
	return m.landTitle.clone()
}

// AsicTypes returns the chosen ASIC types in billing order.
func (m *Model) AsicTypes() []catalog.AsicType {
	var out []catalog.AsicType
	for _, t := range catalog.AsicTypes() {
		if m.asicTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

// recomputeSelectAll derives every category's pseudo-entry from the visible
// catalog. A category with nothing visible never holds it.
func (m *Model) recomputeSelectAll() {
	for _, cat := range catalog.Categories() {
		visible := m.Visible(cat)
		all := len(visible) > 0
		for _, e := range visible {
			if !m.active[e.Code] {
				all = false
				break
			}
		}
		if all {
			m.selectAll[cat] = true
		} else {
			delete(m.selectAll, cat)
		}
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
