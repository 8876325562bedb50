package handler

import (
	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/order"
	"searchorder/internal/pricing"
	"searchorder/internal/providers"
	"searchorder/internal/subject"
)

// SubjectResponse is the subject as shown to the client.
type SubjectResponse struct {
	Kind         catalog.SubjectKind `json:"kind"`
	DisplayName  string              `json:"display_name"`
	Confirmed    bool                `json:"confirmed"`
	FirstName    string              `json:"first_name,omitempty"`
	MiddleName   string              `json:"middle_name,omitempty"`
	LastName     string              `json:"last_name,omitempty"`
	DateOfBirth  string              `json:"date_of_birth,omitempty"`
	ABN          string              `json:"abn,omitempty"`
	ACN          string              `json:"acn,omitempty"`
	Organisation string              `json:"organisation,omitempty"`
}

// LandTitleResponse echoes the land-title options.
type LandTitleResponse struct {
	Detail    catalog.DetailTier `json:"detail"`
	AddOn     bool               `json:"add_on"`
	States    []catalog.State    `json:"states"`
	Reference string             `json:"reference,omitempty"`
	Address   string             `json:"address,omitempty"`
}

// SelectionResponse is the selection state.
type SelectionResponse struct {
	Active        []catalog.Code        `json:"active"`
	Pending       []catalog.Code        `json:"pending"`
	SelectAll     []catalog.Category    `json:"select_all"`
	AsicTypes     []catalog.AsicType    `json:"asic_types"`
	CourtType     catalog.CourtType     `json:"court_type"`
	DirectorScope catalog.DirectorScope `json:"director_scope"`
	LandTitle     LandTitleResponse     `json:"land_title"`
}

// LineResponse is one priced line with amounts as fixed two-decimal strings.
type LineResponse struct {
	Code        catalog.Code `json:"code"`
	Description string       `json:"description"`
	UnitPrice   string       `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	Subtotal    string       `json:"subtotal"`
}

// PriceResponse is a price breakdown.
type PriceResponse struct {
	Lines []LineResponse `json:"lines"`
	Total string         `json:"total"`
}

// OrderResponse is the order summary.
type OrderResponse struct {
	ID        string                   `json:"id"`
	Category  catalog.SubjectKind      `json:"category"`
	State     string                   `json:"state"`
	Stage     string                   `json:"stage"`
	Subject   *SubjectResponse         `json:"subject,omitempty"`
	Selection SelectionResponse        `json:"selection"`
	Directors []director.Director      `json:"directors"`
	Sessions  []disambiguation.Session `json:"sessions"`
	Active    *disambiguation.Session  `json:"active_session,omitempty"`
	Price     PriceResponse            `json:"price"`
	Submitted bool                     `json:"submitted"`
}

// OrganisationsResponse lists organisation search hits.
type OrganisationsResponse struct {
	Organisations []providers.OrgSuggestion `json:"organisations"`
}

// JobsResponse lists dispatch jobs.
type JobsResponse struct {
	Jobs []dispatch.Job `json:"jobs"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func fromSubject(s subject.Subject) *SubjectResponse {
	if s.IsZero() {
		return nil
	}
	return &SubjectResponse{
		Kind:         s.Kind,
		DisplayName:  s.DisplayName(),
		Confirmed:    s.Confirmed,
		FirstName:    s.Individual.FirstName,
		MiddleName:   s.Individual.MiddleName,
		LastName:     s.Individual.LastName,
		DateOfBirth:  s.Individual.DateOfBirth,
		ABN:          s.Organisation.ABN,
		ACN:          s.Organisation.ACN,
		Organisation: s.Organisation.Name,
	}
}

// FromBreakdown renders a breakdown.
func FromBreakdown(b pricing.Breakdown) PriceResponse {
	lines := make([]LineResponse, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineResponse{
			Code:        l.Code,
			Description: l.Description,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal.StringFixed(2),
		})
	}
	return PriceResponse{Lines: lines, Total: b.Total.StringFixed(2)}
}

// FromSummary renders an order summary.
func FromSummary(s order.Summary) OrderResponse {
	sel := s.Selection
	resp := OrderResponse{
		ID:       s.ID,
		Category: s.Category,
		Stage:    string(s.Stage),
		Subject:  fromSubject(s.Subject),
		Selection: SelectionResponse{
			Active:        nonNil(sel.Active),
			Pending:       nonNil(sel.Pending),
			SelectAll:     nonNil(sel.SelectAll),
			AsicTypes:     nonNil(sel.AsicTypes),
			CourtType:     sel.CourtType,
			DirectorScope: sel.DirectorScope,
			LandTitle: LandTitleResponse{
				Detail:    sel.LandTitle.Detail,
				AddOn:     sel.LandTitle.AddOn,
				States:    nonNil(sel.LandTitle.States),
				Reference: sel.LandTitle.Reference,
				Address:   sel.LandTitle.Address,
			},
		},
		Directors: nonNil(s.Directors),
		Sessions:  nonNil(s.Sessions),
		Active:    s.Active,
		Price:     FromBreakdown(s.Price),
		Submitted: s.Submitted,
	}
	if s.State != nil {
		resp.State = s.State.Name()
	}
	return resp
}
