// Package slug derives URL-safe station identifiers from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make converts a display name into a lowercase hyphen-separated slug.
// Runs of non-alphanumeric characters collapse to a single hyphen and
// leading/trailing hyphens are stripped.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
