// Package sliceutil provides small helpers for slice and substring membership checks.
package sliceutil

import (
	"slices"
	"strings"
)

// Contains reports whether item is present in slice.
func Contains(slice []string, item string) bool {
	return slices.Contains(slice, item)
}

// ContainsAll reports whether s contains every one of the given substrings.
// An empty substring list is trivially satisfied.
func ContainsAll(s string, substrings []string) bool {
	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether s contains at least one of the given substrings.
func ContainsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Missing returns the substrings from the given list that s does not contain,
// preserving their order. Useful for error messages that name every violated
// expectation at once.
func Missing(s string, substrings []string) []string {
	var missing []string
	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			missing = append(missing, sub)
		}
	}
	return missing
}
