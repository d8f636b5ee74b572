// Package util provides common utility functions used across the codebase.
package util

import "strings"

// JoinOrNone joins strings with " | " or returns "—" for empty slices.
// Used for the device meta line where an empty list should show a
// placeholder rather than nothing.
func JoinOrNone(items []string) string {
	return JoinOrDefault(items, "—")
}

// JoinOrDefault joins strings with " | " or returns the default value for empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, " | ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Truncate shortens a string to maxLen runes, adding an ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}
