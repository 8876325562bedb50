// Package providers declares the registry contracts the orchestrator consumes.
// Implementations live in subpackages; the core only sees these interfaces.
package providers

import "context"

// Provider IDs used in candidate identity keys and error reports.
const (
	ProviderBankruptcy      = "bankruptcy"
	ProviderRelatedEntities = "related_entities"
	ProviderCourt           = "court"
	ProviderLandTitle       = "land_title"
	ProviderABNLookup       = "abn_lookup"
	ProviderASIC            = "asic"
	ProviderReports         = "reports"
)

// DataTypeASICCurrent is the availability type returning the officer extract.
const DataTypeASICCurrent = "asic-current"

// BankruptcyQuery searches the insolvency index. DateOfBirth is DD-MM-YYYY.
type BankruptcyQuery struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// BankruptcyRecord is one insolvency index hit.
type BankruptcyRecord struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	State       string `json:"state,omitempty"`
	Suburb      string `json:"suburb,omitempty"`
	Type        string `json:"type,omitempty"`
}

// RelatedEntityQuery searches officer and shareholder links. Dates are ISO.
type RelatedEntityQuery struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName"`
	DobFrom   string `json:"dobFrom,omitempty"`
	DobTo     string `json:"dobTo,omitempty"`
}

// RelatedRecord is one person known to the related-entities index.
type RelatedRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	State       string `json:"state,omitempty"`
	Suburb      string `json:"suburb,omitempty"`
}

// CourtQuery searches court lists. CourtType is ALL, CRIMINAL or CIVIL.
type CourtQuery struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName"`
	CourtType string `json:"courtType"`
}

// CourtRecord is one court list entry. CaseType is "criminal" or "civil".
type CourtRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CaseType   string `json:"caseType"`
	Court      string `json:"court,omitempty"`
	CaseNumber string `json:"caseNumber,omitempty"`
	State      string `json:"state,omitempty"`
}

// LandTitlePersonQuery searches proprietor names in one jurisdiction.
type LandTitlePersonQuery struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName"`
	State     string `json:"state"`
}

// LandTitleCountsQuery asks how many titles a search would return in one
// jurisdiction. Exactly one of the identity fields is set per Kind.
type LandTitleCountsQuery struct {
	Kind      string `json:"kind"`
	State     string `json:"state"`
	Name      string `json:"name,omitempty"`
	ABN       string `json:"abn,omitempty"`
	Reference string `json:"reference,omitempty"`
	Address   string `json:"address,omitempty"`
}

// TitleReference is one title found by a counts lookup.
type TitleReference struct {
	Reference  string `json:"reference"`
	Historical bool   `json:"historical"`
}

// LandTitleCounts is the answer of a counts lookup.
type LandTitleCounts struct {
	Current         int              `json:"current"`
	Historical      int              `json:"historical"`
	TitleReferences []TitleReference `json:"titleReferences,omitempty"`
}

// OrgSuggestion is one organisation search hit.
type OrgSuggestion struct {
	ABN      string `json:"abn"`
	ACN      string `json:"acn,omitempty"`
	Name     string `json:"name"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Officer is one entry of an organisation officer extract.
type Officer struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

// AvailabilityData carries the extract returned alongside availability.
type AvailabilityData struct {
	Officers []Officer `json:"officers,omitempty"`
}

// Availability answers checkDataAvailability.
type Availability struct {
	Available bool              `json:"available"`
	Data      *AvailabilityData `json:"data,omitempty"`
}

// ReportRequest asks the report service to generate one report.
type ReportRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// ReportResult names the generated report file.
type ReportResult struct {
	Report string `json:"report"`
}

// Registry is the set of lookups disambiguation and subject confirmation use.
// Implementations report failures as *ProviderError; a response with
// success=false is a failure.
type Registry interface {
	SearchBankruptcyMatches(ctx context.Context, q BankruptcyQuery) ([]BankruptcyRecord, error)
	SearchRelatedEntityMatches(ctx context.Context, q RelatedEntityQuery) ([]RelatedRecord, error)
	SearchCourtMatches(ctx context.Context, q CourtQuery) ([]CourtRecord, error)
	SearchLandTitlePersonNames(ctx context.Context, q LandTitlePersonQuery) ([]string, error)
	GetLandTitleCounts(ctx context.Context, q LandTitleCountsQuery) (LandTitleCounts, error)
	SearchOrganisationByName(ctx context.Context, term string) ([]OrgSuggestion, error)
	CheckDataAvailability(ctx context.Context, id, dataType string) (Availability, error)
}

// ReportCreator generates report files for submitted jobs.
type ReportCreator interface {
	CreateReportJob(ctx context.Context, req ReportRequest) (ReportResult, error)
}
