package http

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFieldLength = 200

// generateRequestID returns a short random hex token for request
// correlation.
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}

// sanitizeInput trims, strips control characters and caps the length of a
// form value before it reaches the domain layer.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxFieldLength {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := maxFieldLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseID parses a transaction id form value.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
