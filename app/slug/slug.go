package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a display name into a URL-safe slug: accents are folded,
// runs of anything that is not a lowercase letter or digit collapse to a
// single hyphen, and leading/trailing hyphens are trimmed.
func Make(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(fold, name)
	if err != nil {
		s = name
	}

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "@", " at ")
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
