// internal/catalog/category.go
//
// Part-of-speech category vocabulary and matching rules.
//
// Matching (after accent/case folding of both sides):
//   - empty category matches every entry.
//   - a "personal pronoun" category matches only that exact part of speech.
//   - the generic "pronoun" category matches parts of speech containing it,
//     except the exact personal-pronoun value.
//   - "common noun" / "proper noun" match exactly or by prefix.
//   - every other category matches by substring or prefix.
//
// The collision rules only cover the pronoun and noun families. Pairs such as
// "préposition" / "locution prépositive" still overlap by substring.

package catalog

import (
	"strings"

	"github.com/robalobadob/lexique/internal/textnorm"
)

// Category is one selectable filter value with its display label.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories is the fixed filter vocabulary, "" meaning all entries.
var Categories = []Category{
	{Value: "", Label: "Tous"},
	{Value: "verbe", Label: "Verbe"},
	{Value: "nom commun", Label: "Nom Commun"},
	{Value: "nom propre", Label: "Nom Propre"},
	{Value: "adjectif", Label: "Adjectif"},
	{Value: "adverbe", Label: "Adverbe"},
	{Value: "pronom personnel", Label: "Pronom Personnel"},
	{Value: "pronom", Label: "Pronom"},
	{Value: "interjection", Label: "Interjection"},
	{Value: "préposition", Label: "Préposition"},
	{Value: "conjonction", Label: "Conjonction"},
	{Value: "article", Label: "Article"},
	{Value: "déterminant", Label: "Déterminant"},
	{Value: "assertion", Label: "Assertion"},
	{Value: "négation", Label: "Négation"},
	{Value: "locution", Label: "Locution"},
}

// pronounFamilies maps each generic pronoun category to its personal form.
var pronounFamilies = map[string]string{
	"pronoun": "personal pronoun",
	"pronom":  "pronom personnel",
}

// personalPronouns is the reverse view of pronounFamilies.
var personalPronouns = map[string]bool{
	"personal pronoun": true,
	"pronom personnel": true,
}

// nounCategories match by exact value or prefix.
var nounCategories = map[string]bool{
	"common noun": true,
	"proper noun": true,
	"nom commun":  true,
	"nom propre":  true,
}

func foldCategory(s string) string {
	return textnorm.FoldLower(strings.TrimSpace(s))
}

// MatchCategory reports whether an entry's part of speech belongs to category.
func MatchCategory(partOfSpeech, category string) bool {
	c := foldCategory(category)
	if c == "" {
		return true
	}
	pos := foldCategory(partOfSpeech)

	if personalPronouns[c] {
		return pos == c
	}
	if personal, ok := pronounFamilies[c]; ok {
		return strings.Contains(pos, c) && pos != personal
	}
	if nounCategories[c] {
		return pos == c || strings.HasPrefix(pos, c)
	}
	return strings.Contains(pos, c) || strings.HasPrefix(pos, c)
}

// ToggleCategory returns the category to select when next is chosen while current is active:
// choosing the active category again goes back to "all".
func ToggleCategory(current, next string) string {
	if current == next {
		return ""
	}
	return next
}

// IsKnownCategory reports whether value is part of the filter vocabulary.
func IsKnownCategory(value string) bool {
	v := foldCategory(value)
	for _, c := range Categories {
		if foldCategory(c.Value) == v {
			return true
		}
	}
	return personalPronouns[v] || nounCategories[v] || pronounFamilies[v] != ""
}
