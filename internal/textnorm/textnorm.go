// internal/textnorm/textnorm.go
//
// Accent and case folding shared by Hangman letter comparison and search.
// Folding decomposes (NFD), drops combining marks, recomposes (NFC) and upper-cases,
// so "é", "È" and "e" all fold to "E".

package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// newFolder returns a fresh transformer; transform.Transformer values are stateful.
func newFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// StripMarks removes diacritics but keeps the original case.
func StripMarks(s string) string {
	out, _, err := transform.String(newFolder(), s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips diacritics and upper-cases s.
func Fold(s string) string {
	return strings.ToUpper(StripMarks(s))
}

// FoldLower strips diacritics and lower-cases s. Used for case-insensitive containment.
func FoldLower(s string) string {
	return strings.ToLower(StripMarks(s))
}

// FoldRune folds a single rune. Runes whose folded form is empty fold to themselves.
func FoldRune(r rune) rune {
	for _, f := range Fold(string(r)) {
		return f
	}
	return r
}

// IsGuessable reports whether r folds to a basic Latin letter A–Z.
func IsGuessable(r rune) bool {
	f := FoldRune(r)
	return f >= 'A' && f <= 'Z'
}
