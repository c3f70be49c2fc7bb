package text_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"clip-summarize/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"ascii", "hello\u200Bworld", 11},
		{"japanese", "こんにちは世界", 7},
		{"mixed", "Machine LearningとDeep Learningの違い", 33},
		{"emoji", "Hello👋", 6},
		{"flag is two regional indicators", "🇯🇵", 2},
		{"zero width space", "hello\u200Bworld", 11},
		{"whitespace", " \t\n ", 4},
		{"arabic", "مرحبا", 5},
		{"cyrillic", "Привет", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.CountRunes(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, text.IsBlank(""))
	assert.True(t, text.IsBlank(" \t\n\r "))
	assert.True(t, text.IsBlank("　"), "ideographic space")
	assert.False(t, text.IsBlank(" a "))
	assert.False(t, text.IsBlank("。"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		suffix   string
		want     string
	}{
		{"shorter than limit", "abc", 5, "...", "abc"},
		{"exactly at limit", "abcde", 5, "...", "abcde"},
		{"ascii cut", "abcdef", 3, "...", "abc..."},
		{"multi-byte cut", "日本語のテキスト", 3, "…", "日本語…"},
		{"emoji cut", "👋👋👋", 1, "", "👋"},
		{"zero limit", "abc", 0, "...", "..."},
		{"negative limit", "abc", -1, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.Truncate(tt.input, tt.maxRunes, tt.suffix)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
