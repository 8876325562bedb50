package pricing

import (
	"strings"

	"searchorder/internal/director"
	"searchorder/internal/resolution"
	dErrors "searchorder/pkg/domain-errors"
)

// Policy decides how fallback-only director confirmations are billed.
type Policy string

const (
	// FallbackBillsOne bills one unit for any confirmed session, including a
	// confirmation of the typed-name fallback.
	FallbackBillsOne Policy = "fallback_bills_one"
	// FallbackBillsWhenOffered bills a fallback confirmation only when the
	// registry did offer candidates and none were chosen.
	FallbackBillsWhenOffered Policy = "fallback_bills_when_offered"
)

// ParsePolicy validates a policy name. Empty selects the default.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return FallbackBillsOne, nil
	case FallbackBillsOne, FallbackBillsWhenOffered:
		return p, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown billing policy %q", s)
}

// DirectorUnits is the number of report units a director slot bills.
func (p Policy) DirectorUnits(slot director.Slot) int {
	if slot.Status != director.SlotResolved {
		return 0
	}
	api := countAPI(slot)
	if api > 0 {
		return api
	}
	if p == FallbackBillsWhenOffered && slot.Offered == 0 {
		return 0
	}
	return 1
}

// SubjectUnits is the number of report units a subject session bills.
func SubjectUnits(o resolution.Outcome) int {
	if !o.Resolved() {
		return 0
	}
	return max(o.APISelected(), 1)
}

func countAPI(slot director.Slot) int {
	n := 0
	for _, m := range slot.Matches {
		if !m.Fallback {
			n++
		}
	}
	return n
}
