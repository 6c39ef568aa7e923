package collector

import (
	"strings"
	"unicode"
)

// CleanPayload strips non-ASCII bytes, control characters, and surrounding
// whitespace from a raw request body. Upstream terminals pad their payloads
// with nulls and stray newlines, so raw bytes cannot be fed to the JSON
// decoder directly.
func CleanPayload(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range string(raw) {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '\x00' || r == '\r' || r == '\n' {
			continue
		}
		if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
