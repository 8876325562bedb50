// Package subject holds the primary search target of an order: an
// organisation or an individual. A subject is locked once the disambiguation
// sequence completes and stays locked until reset.
package subject

import (
	"strings"
	"time"

	"searchorder/internal/catalog"
	dErrors "searchorder/pkg/domain-errors"
)

// Organisation identifies a company by its registry numbers.
type Organisation struct {
	ABN  string
	ACN  string
	Name string
}

// BirthYearRange bounds an unknown date of birth.
type BirthYearRange struct {
	From int
	To   int
}

// Individual identifies a person.
type Individual struct {
	FirstName  string
	MiddleName string
	LastName   string
	// DateOfBirth is an ISO date (YYYY-MM-DD); empty when unknown.
	DateOfBirth    string
	BirthYearRange *BirthYearRange
}

// FullName joins the name parts with single spaces.
func (i Individual) FullName() string {
	return joinNonEmpty(i.FirstName, i.MiddleName, i.LastName)
}

// Subject is the primary search target.
type Subject struct {
	Kind         catalog.SubjectKind
	Organisation Organisation
	Individual   Individual
	Confirmed    bool
}

// IsZero reports whether no identity has been set.
func (s Subject) IsZero() bool {
	return s.Kind == ""
}

// DisplayName is the name shown and used for fallback candidates.
func (s Subject) DisplayName() string {
	if s.Kind == catalog.SubjectOrganisation {
		return s.Organisation.Name
	}
	return s.Individual.FullName()
}

// Holder owns the subject of one order and enforces the lock.
type Holder struct {
	current Subject
}

// Current returns a copy of the subject.
func (h *Holder) Current() Subject {
	s := h.current
	if s.Individual.BirthYearRange != nil {
		r := *s.Individual.BirthYearRange
		s.Individual.BirthYearRange = &r
	}
	return s
}

// Locked reports whether identity updates are rejected.
func (h *Holder) Locked() bool {
	return h.current.Confirmed
}

// SetIndividual validates and stores an individual identity. The date of
// birth may be given as DD/MM/YYYY or ISO and is stored as ISO.
func (h *Holder) SetIndividual(in Individual) error {
	if h.Locked() {
		return dErrors.New(dErrors.CodeValidation, "subject is confirmed; reset it before changing identity")
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "last name is required")
	}
	if raw := strings.TrimSpace(in.DateOfBirth); raw != "" {
		iso, err := NormalizeDate(raw)
		if err != nil {
			return err
		}
		in.DateOfBirth = iso
	}
	if r := in.BirthYearRange; r != nil {
		if r.From <= 0 || r.To <= 0 || r.From > r.To {
			return dErrors.Newf(dErrors.CodeValidation, "birth year range %d-%d is not ordered", r.From, r.To)
		}
		copied := *r
		in.BirthYearRange = &copied
	}
	h.current = Subject{Kind: catalog.SubjectIndividual, Individual: in}
	return nil
}

// SetOrganisation stores an organisation identity.
func (h *Holder) SetOrganisation(org Organisation) error {
	if h.Locked() {
		return dErrors.New(dErrors.CodeValidation, "subject is confirmed; reset it before changing identity")
	}
	org.ABN = strings.ReplaceAll(strings.TrimSpace(org.ABN), " ", "")
	org.ACN = strings.ReplaceAll(strings.TrimSpace(org.ACN), " ", "")
	org.Name = strings.TrimSpace(org.Name)
	if org.ABN == "" && org.ACN == "" {
		return dErrors.New(dErrors.CodeValidation, "organisation needs an ABN or ACN")
	}
	if org.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "organisation name is required")
	}
	h.current = Subject{Kind: catalog.SubjectOrganisation, Organisation: org}
	return nil
}

// Confirm locks the identity.
func (h *Holder) Confirm() {
	if !h.current.IsZero() {
		h.current.Confirmed = true
	}
}

// Reset clears the subject and releases the lock.
func (h *Holder) Reset() {
	h.current = Subject{}
}

// dateLayouts are the accepted input forms: ISO, DD/MM/YYYY, the dashed form
// registries return and the unpadded D/M/YYYY.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006", "2/1/2006"}

// ParseDate parses any accepted date form.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate converts any accepted date form into YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	if t, ok := ParseDate(raw); ok {
		return t.Format("2006-01-02"), nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "date of birth %q must be DD/MM/YYYY or YYYY-MM-DD", strings.TrimSpace(raw))
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
