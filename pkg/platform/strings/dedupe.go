// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  IMO1 ", "IMO2", "IMO1", "", "  "})
//	// Returns: []string{"IMO1", "IMO2"}
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

// SplitList flattens comma-separated values, as found in repeated query
// parameters, then applies DedupeAndTrim.
//
// Example:
//
//	SplitList([]string{"IMO1,IMO2", "IMO3", " IMO1 "})
//	// Returns: []string{"IMO1", "IMO2", "IMO3"}
func SplitList(values []string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return DedupeAndTrim(parts)
}
