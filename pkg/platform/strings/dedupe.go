// Package strings provides string manipulation utilities.
package strings

import (
	"sort"
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SortedUpperUnion uppercases, trims, collapses inner whitespace and de-duplicates
// the given values, returning them sorted. The result does not depend on input order.
//
// Example:
//
//	SortedUpperUnion([]string{"smith  john", "SMITH JOHN", " brown ann"})
//	// Returns: []string{"BROWN ANN", "SMITH JOHN"}
func SortedUpperUnion(values []string) []string {
	normalised := make([]string, 0, len(values))
	for _, v := range values {
		normalised = append(normalised, strings.ToUpper(strings.Join(strings.Fields(v), " ")))
	}
	result := DedupeAndTrim(normalised)
	sort.Strings(result)
	return result
}
