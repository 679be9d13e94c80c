package textutils

import "strings"

// ContainsAny reports whether s contains any of words as a substring.
func ContainsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
