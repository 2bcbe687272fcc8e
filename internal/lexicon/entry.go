package lexicon

import "strings"

// Entry is one dictionary record: a source-language term, its translation and metadata.
// Optional fields are empty strings when absent and are only rendered when present.
type Entry struct {
	ID                 string `json:"id"`
	Term               string `json:"term"`
	Translation        string `json:"translation"`
	PartOfSpeech       string `json:"partOfSpeech"`
	ExampleSource      string `json:"exampleSource,omitempty"`
	ExampleTranslation string `json:"exampleTranslation,omitempty"`
	PronunciationURL   string `json:"pronunciationUrl,omitempty"`
	IsVerb             bool   `json:"isVerb,omitempty"`
	PluralForm         string `json:"pluralForm,omitempty"`
	Synonyms           string `json:"synonyms,omitempty"`
	ScientificName     string `json:"scientificName,omitempty"`
	ImperativeForm     string `json:"imperativeForm,omitempty"`
}

// Playable reports whether both the term and the translation are non-empty,
// the minimum every game needs.
func (e Entry) Playable() bool {
	return strings.TrimSpace(e.Term) != "" && strings.TrimSpace(e.Translation) != ""
}

// HasExample reports whether a usage sentence pair is present.
func (e Entry) HasExample() bool {
	return e.ExampleSource != "" || e.ExampleTranslation != ""
}
