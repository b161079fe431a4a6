package app

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFilenameLength = 100

// SanitizeFilename turns a video title into a lowercase attachment name.
// Accents are folded first so "Café" becomes "cafe"; every remaining rune
// outside a-z and 0-9 is replaced with an underscore.
func SanitizeFilename(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		if b.Len() >= maxFilenameLength {
			break
		}
	}

	name := b.String()
	if strings.Trim(name, "_") == "" {
		return "video"
	}
	return name
}
