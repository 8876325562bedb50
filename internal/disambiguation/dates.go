package disambiguation

import (
	"strconv"
	"strings"
	"time"

	"searchorder/internal/subject"
)

const (
	isoLayout    = "2006-01-02"
	slashLayout  = "02/01/2006"
	dashedLayout = "02-01-2006"
)

func parseAnyDate(raw string) (time.Time, bool) {
	return subject.ParseDate(raw)
}

// ToISO converts D/M/YYYY, DD/MM/YYYY, DD-MM-YYYY or ISO into YYYY-MM-DD. Unparseable
// input yields "".
func ToISO(raw string) string {
	if t, ok := parseAnyDate(raw); ok {
		return t.Format(isoLayout)
	}
	return ""
}

// ToDashed converts a date into the DD-MM-YYYY form the insolvency index takes.
func ToDashed(raw string) string {
	if t, ok := parseAnyDate(raw); ok {
		return t.Format(dashedLayout)
	}
	return ""
}

// ToDisplay converts a date into DD/MM/YYYY; unparseable input is returned
// trimmed so labels still show what the registry sent.
func ToDisplay(raw string) string {
	if t, ok := parseAnyDate(raw); ok {
		return t.Format(slashLayout)
	}
	return strings.TrimSpace(raw)
}

// DOBRange derives the related-entities dobFrom/dobTo window: the exact date
// when known, otherwise whole years of the birth year range.
func DOBRange(id Identity) (from, to string) {
	if iso := ToISO(id.DateOfBirth); iso != "" {
		return iso, iso
	}
	if r := id.BirthYearRange; r != nil && r.From > 0 && r.To >= r.From {
		return strconv.Itoa(r.From) + "-01-01", strconv.Itoa(r.To) + "-12-31"
	}
	return "", ""
}
