package disambiguation

import (
	"strconv"
	"strings"
)

const labelSeparator = " • "

// JoinLabel joins the non-empty fields with the label separator.
func JoinLabel(fields ...string) string {
	var parts []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, labelSeparator)
}

// DedupeLabels suffixes repeated labels with " (2)", " (3)", ... in
// first-seen order and makes identity keys unique. The first occurrence keeps
// its label unchanged unless an earlier suffixed label already took it. No two
// returned labels are equal.
func DedupeLabels(cs []Candidate) []Candidate {
	out := make([]Candidate, len(cs))
	seenLabels := make(map[string]int, len(cs))
	emitted := make(map[string]bool, len(cs))
	used := make(map[string]bool, len(cs))
	for i, c := range cs {
		base := c.Label
		seenLabels[base]++
		if n := seenLabels[base]; n > 1 || emitted[base] {
			n = max(n, 2)
			label := suffixLabel(base, n)
			for emitted[label] {
				n++
				label = suffixLabel(base, n)
			}
			seenLabels[base] = n
			c.Label = label
		}
		emitted[c.Label] = true
		if c.IdentityKey == "" {
			c.IdentityKey = c.Provider + ":" + c.Label
		}
		key := c.IdentityKey
		for n := 2; used[key]; n++ {
			key = c.IdentityKey + "#" + strconv.Itoa(n)
		}
		c.IdentityKey = key
		used[key] = true
		out[i] = c
	}
	return out
}

func suffixLabel(label string, n int) string {
	return label + " (" + strconv.Itoa(n) + ")"
}
