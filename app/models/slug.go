package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts a title to a URL-safe slug.
//
// The title is decomposed (NFKD) and stripped of combining marks so accented
// letters keep their base letter, then lowercased. ASCII letters and digits
// are kept, runs of whitespace and punctuation become a single hyphen, and
// anything else is dropped. Leading and trailing hyphens are trimmed.
//
//	Slugify("Hello, World!")  // "hello-world"
//	Slugify("Café au lait")   // "cafe-au-lait"
//	Slugify("")               // ""
func Slugify(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, title)
	if err != nil {
		decomposed = title
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	separate := false
	for _, r := range strings.ToLower(decomposed) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if separate && b.Len() > 0 {
				b.WriteByte('-')
			}
			separate = false
			b.WriteRune(r)
		case r < utf8.RuneSelf, unicode.IsSpace(r), unicode.IsPunct(r):
			separate = true
		}
	}
	return b.String()
}
