// assets/embed.go
//
// Embedded static data shipped with the binary.
// The lexicon is the default word list used when no LEXICON_FILE is configured.

package assets

import (
	"embed"
)

//go:embed lexicon.json
var FS embed.FS

// LexiconJSON returns the raw embedded lexicon document.
func LexiconJSON() ([]byte, error) {
	return FS.ReadFile("lexicon.json")
}
