// Package director models the officers of a confirmed organisation and the
// strictly sequential walk that enriches them one at a time.
package director

import (
	"strings"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/providers"
	"searchorder/internal/subject"
)

// Status distinguishes serving from former directors.
type Status string

const (
	StatusCurrent Status = "current"
	StatusPast    Status = "past"
)

// Director is one officer taken from the organisation extract.
type Director struct {
	Index       int    `json:"index"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Status      Status `json:"status"`
}

// Usable reports whether the director can be searched by name.
func (d Director) Usable() bool {
	return strings.TrimSpace(d.LastName) != ""
}

// Identity is the lookup identity of the director.
func (d Director) Identity() disambiguation.Identity {
	return disambiguation.Identity{
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		DateOfBirth: d.DateOfBirth,
	}
}

// FullName joins first and last name.
func (d Director) FullName() string {
	return disambiguation.JoinName(d.FirstName, d.LastName)
}

const roleDirector = "DIRECTOR"

// FromOfficers derives the director list from an officer extract: role
// DIRECTOR only, current directors first then past, each group in extract
// order. Indexes are assigned in the resulting order.
func FromOfficers(officers []providers.Officer) []Director {
	var current, past []Director
	for _, o := range officers {
		if !strings.EqualFold(strings.TrimSpace(o.Role), roleDirector) {
			continue
		}
		d := Director{
			FirstName: strings.TrimSpace(o.FirstName),
			LastName:  strings.TrimSpace(o.LastName),
			Status:    StatusCurrent,
		}
		if iso, err := subject.NormalizeDate(o.DateOfBirth); err == nil {
			d.DateOfBirth = iso
		}
		if strings.EqualFold(strings.TrimSpace(o.Status), string(StatusPast)) {
			d.Status = StatusPast
			past = append(past, d)
			continue
		}
		current = append(current, d)
	}
	out := append(current, past...)
	for i := range out {
		out[i].Index = i
	}
	return out
}

// InScope filters directors by the order's director scope.
func InScope(directors []Director, scope catalog.DirectorScope) []Director {
	if scope == catalog.DirectorsAll {
		return append([]Director(nil), directors...)
	}
	var out []Director
	for _, d := range directors {
		if d.Status == StatusCurrent {
			out = append(out, d)
		}
	}
	return out
}
