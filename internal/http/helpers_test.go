package http

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Groceries", "Groceries"},
		{"trims whitespace", "  coffee \t", "coffee"},
		{"strips control characters", "line\x00one\x1btwo", "lineonetwo"},
		{"keeps unicode", "Café déjeuner €12", "Café déjeuner €12"},
		{"truncates long input", strings.Repeat("a", 250), strings.Repeat("a", 200)},
		// 100 three-byte runes are 300 bytes; a byte cut at 200 would land
		// mid-rune, so the cut must back up to the previous boundary.
		{"truncates on rune boundary", strings.Repeat("€", 100), strings.Repeat("€", 66)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeInput(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("sanitizeInput(%q) produced invalid UTF-8", tt.input)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input string
		id    int64
		ok    bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"1705312800000", 1705312800000, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseID(tt.input)
		if id != tt.id || ok != tt.ok {
			t.Errorf("parseID(%q) = (%d, %v), want (%d, %v)", tt.input, id, ok, tt.id, tt.ok)
		}
	}
}
