package disambiguation

import (
	"strings"

	"searchorder/internal/subject"
)

// FallbackProvider marks the synthetic candidate built from typed identity fields.
const FallbackProvider = "fallback"

// Candidate is one selectable match offered to the user.
type Candidate struct {
	Provider    string `json:"provider"`
	Label       string `json:"label"`
	Raw         any    `json:"raw,omitempty"`
	IdentityKey string `json:"identity_key"`
	Fallback    bool   `json:"fallback"`
}

// Identity is the name and birth data a lookup is built from. Subjects and
// directors both reduce to one.
type Identity struct {
	FirstName      string
	MiddleName     string
	LastName       string
	DateOfBirth    string // ISO
	BirthYearRange *subject.BirthYearRange
}

// FullName joins the non-empty name parts.
func (i Identity) FullName() string {
	var parts []string
	for _, p := range []string{i.FirstName, i.MiddleName, i.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Usable reports whether a registry lookup can be built at all.
func (i Identity) Usable() bool {
	return strings.TrimSpace(i.LastName) != ""
}

// IdentityFromIndividual converts a subject individual.
func IdentityFromIndividual(in subject.Individual) Identity {
	return Identity{
		FirstName:      in.FirstName,
		MiddleName:     in.MiddleName,
		LastName:       in.LastName,
		DateOfBirth:    in.DateOfBirth,
		BirthYearRange: in.BirthYearRange,
	}
}

// FallbackCandidate builds the synthetic candidate for an identity.
func FallbackCandidate(id Identity) Candidate {
	name := strings.ToUpper(id.FullName())
	return Candidate{
		Provider:    FallbackProvider,
		Label:       name,
		Raw:         map[string]string{"name": name, "dateOfBirth": id.DateOfBirth},
		IdentityKey: FallbackProvider + ":" + name,
		Fallback:    true,
	}
}

// HasAPICandidates reports whether any candidate came from a registry.
func HasAPICandidates(cs []Candidate) bool {
	for _, c := range cs {
		if !c.Fallback {
			return true
		}
	}
	return false
}

// CountAPI counts registry-sourced candidates.
func CountAPI(cs []Candidate) int {
	n := 0
	for _, c := range cs {
		if !c.Fallback {
			n++
		}
	}
	return n
}
