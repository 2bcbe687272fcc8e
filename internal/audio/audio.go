// internal/audio/audio.go
//
// Pronunciation clips. Each term may have a recording named "<term><ext>" in Dir.
// Audio is best effort: a missing file is reported as ErrNotFound and logged at debug,
// it never affects lexicon browsing or game state.

package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lexique/internal/lexicon"
)

// ErrNotFound is returned when a term has no recording.
var ErrNotFound = errors.New("audio: clip not found")

// Resolver maps terms to clip files and URLs.
type Resolver struct {
	Dir string
	Ext string // including the dot, e.g. ".mp3"
}

// Path returns the URL path of the clip for term.
func (r Resolver) Path(term string) string {
	return "/audio/" + url.PathEscape(term) + r.Ext
}

// URL returns the pronunciation URL for e. An explicit PronunciationURL wins.
func (r Resolver) URL(e lexicon.Entry) string {
	if e.PronunciationURL != "" {
		return e.PronunciationURL
	}
	return r.Path(e.Term)
}

// Open opens the clip of term. The caller closes the file.
func (r Resolver) Open(term string) (*os.File, fs.FileInfo, error) {
	term = strings.TrimSuffix(term, r.Ext)
	if term == "" || strings.ContainsAny(term, `/\`) || term == "." || term == ".." {
		return nil, nil, ErrNotFound
	}
	path := filepath.Join(r.Dir, term+r.Ext)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("term", term).Str("path", path).Msg("audio clip missing")
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("audio: stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}
