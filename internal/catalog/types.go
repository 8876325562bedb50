package catalog

import (
	"strings"

	dErrors "searchorder/pkg/domain-errors"
)

// Category groups catalog entries the way the order form presents them.
type Category string

const (
	CategoryOrganisation Category = "organisation"
	CategoryIndividual   Category = "individual"
	CategoryLandTitle    Category = "land_title"
	// CategoryAdditional holds enrichment add-ons offered after a main search.
	CategoryAdditional Category = "additional"
)

// Categories returns every category in presentation order.
func Categories() []Category {
	return []Category{CategoryOrganisation, CategoryIndividual, CategoryLandTitle, CategoryAdditional}
}

// ParseCategory validates a category name at trust boundaries.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryOrganisation, CategoryIndividual, CategoryLandTitle, CategoryAdditional:
		return c, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown category %q", s)
}

// SubjectKind is the kind of primary subject an order searches.
type SubjectKind string

const (
	SubjectOrganisation SubjectKind = "organisation"
	SubjectIndividual   SubjectKind = "individual"
)

// ParseSubjectKind validates a subject kind.
func ParseSubjectKind(s string) (SubjectKind, error) {
	k := SubjectKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case SubjectOrganisation, SubjectIndividual:
		return k, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown subject kind %q", s)
}

// Code identifies one orderable catalog entry.
type Code string

// SelectAllCode is the "select all" pseudo-entry of a category.
func SelectAllCode(c Category) Code {
	return Code(string(c) + ":ALL")
}

// IsSelectAll reports whether the code is a select-all pseudo-entry.
func (c Code) IsSelectAll() bool {
	return strings.HasSuffix(string(c), ":ALL")
}

const (
	CodeASIC  Code = "ASIC"
	CodeATO   Code = "ATO"
	CodeCourt Code = "COURT"
	CodePPSR  Code = "PPSR"

	CodeIndividualBankruptcy      Code = "INDIVIDUAL_BANKRUPTCY"
	CodeIndividualRelatedEntities Code = "INDIVIDUAL_RELATED_ENTITIES"
	CodeIndividualCourt           Code = "INDIVIDUAL_COURT"
	CodeIndividualPPSR            Code = "INDIVIDUAL_PPSR"

	CodeLandTitleReference    Code = "LAND_TITLE_REFERENCE"
	CodeLandTitleAddress      Code = "LAND_TITLE_ADDRESS"
	CodeLandTitleOrganisation Code = "LAND_TITLE_ORGANISATION"
	CodeLandTitleIndividual   Code = "LAND_TITLE_INDIVIDUAL"

	CodeDirectorPPSR             Code = "DIRECTOR_PPSR"
	CodeDirectorBankruptcy       Code = "DIRECTOR_BANKRUPTCY"
	CodeDirectorRelatedEntities  Code = "DIRECTOR_RELATED_ENTITIES"
	CodeAddLandTitleOrganisation Code = "ADD_LAND_TITLE_ORGANISATION"
	CodeAddLandTitleIndividual   Code = "ADD_LAND_TITLE_INDIVIDUAL"
)

// SearchKind is the registry lookup an entry performs. Disambiguation sessions
// are keyed by (owner, kind).
type SearchKind string

const (
	KindASIC                  SearchKind = "asic"
	KindATO                   SearchKind = "ato"
	KindCourt                 SearchKind = "court"
	KindCourtCriminal         SearchKind = "court_criminal"
	KindCourtCivil            SearchKind = "court_civil"
	KindPPSR                  SearchKind = "ppsr"
	KindBankruptcy            SearchKind = "bankruptcy"
	KindRelatedEntities       SearchKind = "related_entities"
	KindLandTitlePerson       SearchKind = "land_title_person"
	KindLandTitleReference    SearchKind = "land_title_reference"
	KindLandTitleAddress      SearchKind = "land_title_address"
	KindLandTitleOrganisation SearchKind = "land_title_organisation"
)

// PricingMode selects the tariff rule applied to an entry.
type PricingMode string

const (
	PricingFlat            PricingMode = "flat"
	PricingPerAsicType     PricingMode = "per_asic_type"
	PricingPerCourtType    PricingMode = "per_court_type"
	PricingPerMatch        PricingMode = "per_match"
	PricingPerDirector     PricingMode = "per_director"
	PricingPerJurisdiction PricingMode = "per_jurisdiction"
)

// State is an Australian land-title jurisdiction.
type State string

const (
	StateNSW State = "NSW"
	StateVIC State = "VIC"
	StateQLD State = "QLD"
	StateSA  State = "SA"
	StateWA  State = "WA"
	StateTAS State = "TAS"
	StateACT State = "ACT"
	StateNT  State = "NT"
)

// States returns every jurisdiction in canonical order.
func States() []State {
	return []State{StateNSW, StateVIC, StateQLD, StateSA, StateWA, StateTAS, StateACT, StateNT}
}

// ParseState validates a jurisdiction code.
func ParseState(s string) (State, error) {
	st := State(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range States() {
		if st == known {
			return st, nil
		}
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown state %q", s)
}

// AsicType is one ASIC extract variant.
type AsicType string

const (
	AsicCurrent    AsicType = "CURRENT"
	AsicHistorical AsicType = "HISTORICAL"
	AsicDocuments  AsicType = "DOCUMENTS"
)

// AsicTypes returns ASIC types in billing order.
func AsicTypes() []AsicType {
	return []AsicType{AsicCurrent, AsicHistorical, AsicDocuments}
}

// ParseAsicType validates an ASIC type.
func ParseAsicType(s string) (AsicType, error) {
	t := AsicType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AsicTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown ASIC type %q", s)
}

// CourtType filters court searches.
type CourtType string

const (
	CourtAll      CourtType = "ALL"
	CourtCriminal CourtType = "CRIMINAL"
	CourtCivil    CourtType = "CIVIL"
)

// ParseCourtType validates a court type.
func ParseCourtType(s string) (CourtType, error) {
	t := CourtType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case CourtAll, CourtCriminal, CourtCivil:
		return t, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown court type %q", s)
}

// Covers returns the concrete court types searched under this filter.
func (t CourtType) Covers() []CourtType {
	switch t {
	case CourtCriminal:
		return []CourtType{CourtCriminal}
	case CourtCivil:
		return []CourtType{CourtCivil}
	default:
		return []CourtType{CourtCriminal, CourtCivil}
	}
}

// DetailTier selects how much of each land title is retrieved.
type DetailTier string

const (
	DetailSummary DetailTier = "SUMMARY"
	DetailCurrent DetailTier = "CURRENT"
	DetailPast    DetailTier = "PAST"
	DetailAll     DetailTier = "ALL"
)

// ParseDetailTier validates a land-title detail tier.
func ParseDetailTier(s string) (DetailTier, error) {
	t := DetailTier(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case DetailSummary, DetailCurrent, DetailPast, DetailAll:
		return t, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown land title detail %q", s)
}

// DirectorScope selects which directors director-scoped searches iterate.
type DirectorScope string

const (
	DirectorsCurrent DirectorScope = "CURRENT"
	DirectorsAll     DirectorScope = "ALL"
)

// ParseDirectorScope validates a director scope.
func ParseDirectorScope(s string) (DirectorScope, error) {
	d := DirectorScope(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DirectorsCurrent, DirectorsAll:
		return d, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown director scope %q", s)
}
