package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "go", 5, "go"},
		{"ascii cut", "golang", 2, "go"},
		{"inside two-byte rune", "aé", 2, "a"},
		{"inside three-byte rune", "ab€", 4, "ab"},
		{"on rune boundary", "ab€c", 5, "ab€"},
		{"zero", "é", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateUTF8(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncateUTF8(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateUTF8(%q, %d) produced invalid UTF-8", tt.in, tt.n)
			}
		})
	}
}

func TestTruncateUTF8_EmbedLimit(t *testing.T) {
	text := strings.Repeat("a", maxEmbedChars-1) + "日本"

	got := truncateUTF8(text, maxEmbedChars)
	if len(got) != maxEmbedChars-1 || !utf8.ValidString(got) {
		t.Errorf("len = %d, valid = %v", len(got), utf8.ValidString(got))
	}
}
