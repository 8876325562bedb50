package handler

import (
	"strings"

	"searchorder/internal/catalog"
	"searchorder/internal/providers"
	"searchorder/internal/selection"
	"searchorder/internal/subject"
	dErrors "searchorder/pkg/domain-errors"
)

// CreateOrderRequest starts an order.
type CreateOrderRequest struct {
	Category string `json:"category"`

	kind catalog.SubjectKind
}

func (r *CreateOrderRequest) Validate() error {
	kind, err := catalog.ParseSubjectKind(r.Category)
	if err != nil {
		return err
	}
	r.kind = kind
	return nil
}

// SetCategoryRequest switches an order between subject categories.
type SetCategoryRequest struct {
	Category string `json:"category"`

	kind catalog.SubjectKind
}

func (r *SetCategoryRequest) Validate() error {
	kind, err := catalog.ParseSubjectKind(r.Category)
	if err != nil {
		return err
	}
	r.kind = kind
	return nil
}

// BirthYearRangeRequest bounds an unknown date of birth.
type BirthYearRangeRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SetIndividualRequest carries an individual identity. Field checks beyond
// presence happen when the subject is set.
type SetIndividualRequest struct {
	FirstName      string                 `json:"first_name"`
	MiddleName     string                 `json:"middle_name,omitempty"`
	LastName       string                 `json:"last_name"`
	DateOfBirth    string                 `json:"date_of_birth,omitempty"`
	BirthYearRange *BirthYearRangeRequest `json:"birth_year_range,omitempty"`
}

func (r *SetIndividualRequest) Validate() error {
	if strings.TrimSpace(r.LastName) == "" {
		return dErrors.New(dErrors.CodeValidation, "last_name is required")
	}
	return nil
}

func (r *SetIndividualRequest) individual() subject.Individual {
	in := subject.Individual{
		FirstName:   r.FirstName,
		MiddleName:  r.MiddleName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
	}
	if r.BirthYearRange != nil {
		in.BirthYearRange = &subject.BirthYearRange{From: r.BirthYearRange.From, To: r.BirthYearRange.To}
	}
	return in
}

// SelectOrganisationRequest is an organisation search hit chosen by the user.
type SelectOrganisationRequest struct {
	ABN  string `json:"abn"`
	ACN  string `json:"acn,omitempty"`
	Name string `json:"name"`
}

func (r *SelectOrganisationRequest) Validate() error {
	if strings.TrimSpace(r.ABN) == "" && strings.TrimSpace(r.ACN) == "" {
		return dErrors.New(dErrors.CodeValidation, "abn or acn is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func (r *SelectOrganisationRequest) suggestion() providers.OrgSuggestion {
	return providers.OrgSuggestion{ABN: r.ABN, ACN: r.ACN, Name: r.Name}
}

// SetOptionRequest changes one order option.
type SetOptionRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (r *SetOptionRequest) Validate() error {
	r.Field = strings.TrimSpace(r.Field)
	if r.Field == "" {
		return dErrors.New(dErrors.CodeValidation, "field is required")
	}
	return nil
}

func (r *SetOptionRequest) field() selection.Field {
	return selection.Field(r.Field)
}

// ConfirmRequest resolves the open disambiguation dialog.
type ConfirmRequest struct {
	SessionID     string   `json:"session_id"`
	CandidateKeys []string `json:"candidate_keys"`
}

func (r *ConfirmRequest) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return dErrors.New(dErrors.CodeValidation, "session_id is required")
	}
	if len(r.CandidateKeys) == 0 {
		return dErrors.New(dErrors.CodeValidation, "choose at least one candidate")
	}
	return nil
}

// CancelRequest skips the open disambiguation dialog.
type CancelRequest struct {
	SessionID string `json:"session_id"`
}

func (r *CancelRequest) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return dErrors.New(dErrors.CodeValidation, "session_id is required")
	}
	return nil
}
