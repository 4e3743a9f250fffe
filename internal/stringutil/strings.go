// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower returns s with full Unicode lowercasing applied.
// A new Caser is built per call since Casers are stateful.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// EqualFold reports whether s lowercases to want. want must already be lowercase.
// Whitespace is significant: " hi" does not match "hi".
func EqualFold(s, want string) bool {
	if len(s) == 0 {
		return want == ""
	}
	return Lower(s) == want
}

// TruncateRunes limits text to maxRunes runes, ending in "..." when cut.
// Counting is by rune so multi-byte characters are never split.
//
// Example:
//
//	TruncateRunes("Engineering", 8) returns "Engin..."
//	TruncateRunes("工程學系", 2) returns "工程"
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
