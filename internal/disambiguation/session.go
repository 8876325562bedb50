package disambiguation

import (
	"slices"

	"searchorder/internal/catalog"
)

// OwnerKind says whose identity a session resolves.
type OwnerKind string

const (
	OwnerSubject  OwnerKind = "subject"
	OwnerDirector OwnerKind = "director"
)

// Owner identifies the subject or one director by index.
type Owner struct {
	Kind  OwnerKind `json:"kind"`
	Index int       `json:"index"`
}

// SubjectOwner is the owner of subject sessions.
var SubjectOwner = Owner{Kind: OwnerSubject}

// DirectorOwner is the owner of a director's sessions.
func DirectorOwner(index int) Owner {
	return Owner{Kind: OwnerDirector, Index: index}
}

// Status is the lifecycle state of a session.
type Status string

const (
	StatusPending  Status = "pending"
	StatusLoading  Status = "loading"
	StatusResolved Status = "resolved"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
)

// Terminal reports whether the user has decided the session.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusSkipped
}

// Session resolves one (owner, kind) lookup to chosen candidates. Sessions
// are retained after they end so reopening shows the earlier choice.
type Session struct {
	ID           string             `json:"id"`
	Owner        Owner              `json:"owner"`
	Kind         catalog.SearchKind `json:"kind"`
	Code         catalog.Code       `json:"code"`
	Candidates   []Candidate        `json:"candidates"`
	Selected     []Candidate        `json:"selected"`
	Status       Status             `json:"status"`
	ErrorMessage string             `json:"error_message,omitempty"`
	// Generation increases every time the session is (re)opened; fetch
	// results carry the generation they were issued for.
	Generation int `json:"generation"`
}

// Clone deep-copies the candidate slices.
func (s Session) Clone() Session {
	s.Candidates = slices.Clone(s.Candidates)
	s.Selected = slices.Clone(s.Selected)
	return s
}

// Offered counts registry candidates currently offered.
func (s Session) Offered() int {
	return CountAPI(s.Candidates)
}

// Candidate finds an offered candidate by identity key.
func (s Session) Candidate(key string) (Candidate, bool) {
	for _, c := range s.Candidates {
		if c.IdentityKey == key {
			return c, true
		}
	}
	return Candidate{}, false
}

// Preselect keeps the previous choices that are still offered, in candidate
// order.
func Preselect(previous, offered []Candidate) []Candidate {
	if len(previous) == 0 {
		return nil
	}
	keys := make(map[string]bool, len(previous))
	for _, c := range previous {
		keys[c.IdentityKey] = true
	}
	var out []Candidate
	for _, c := range offered {
		if keys[c.IdentityKey] {
			out = append(out, c)
		}
	}
	return out
}
