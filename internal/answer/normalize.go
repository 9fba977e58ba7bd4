package answer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	punctRe = regexp.MustCompile(`[,;:!?]`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips diacritics, turns light punctuation into
// spaces and collapses whitespace. All matching in this package operates on
// normalized text, so "Vírgula" and "virgula" compare equal.
func Normalize(text string) string {
	s := strings.ToLower(text)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = punctRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
