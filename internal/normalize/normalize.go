// Package normalize canonicalizes free-text cell values so that matching
// and grouping are insensitive to accents, case, and stray whitespace.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
// "ligação" → "ligacao". Chains carry internal buffers, so each caller
// gets its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Fold canonicalizes a cell value: strip diacritics, trim, lower-case, and
// collapse internal whitespace runs to single spaces. Total and idempotent;
// the empty string maps to itself.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks(), s)
	if err != nil {
		// Invalid UTF-8 is passed through undecorated rather than lost.
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), " ")
}

// TitleCase upper-cases the first letter of each word, for display of
// owner names ("ana souza" → "Ana Souza").
func TitleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}
