package utils

import "strings"

// HasAnyPrefix reports whether s starts with at least one of prefixes.
// An empty prefix list never matches.
func HasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
