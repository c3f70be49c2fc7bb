// Package text provides rune-aware helpers for note contents and summaries.
package text

import (
	"strings"
	"unicode/utf8"
)

// CountRunes counts Unicode characters rather than bytes, so limits behave the
// same for Japanese, Arabic or emoji-heavy notes as for ASCII.
//
//	CountRunes("hello")      // 5
//	CountRunes("こんにちは") // 5
//	CountRunes("Hello👋")    // 6
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Truncate cuts text to at most maxRunes runes and appends suffix when
// anything was removed. It never splits a multi-byte character.
func Truncate(text string, maxRunes int, suffix string) string {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if CountRunes(text) <= maxRunes {
		return text
	}

	n := 0
	for i := range text {
		if n == maxRunes {
			return text[:i] + suffix
		}
		n++
	}
	return text
}
