// internal/lexicon/lexicon.go
//
// The Lexicon: a static, read-only, ordered list of word entries.
//
// Responsibilities:
//   - Parse a lexicon document (JSON array of entries) and enforce id uniqueness.
//   - Load it from a configured file or fall back to the embedded default.
//   - Expose order-preserving, copy-on-read accessors for every other component.
//
// Initialization behavior (Init):
//   1. If path is non-empty, the file at path is parsed.
//   2. Otherwise the embedded assets/lexicon.json is used.
//   Initialization runs once (sync.Once); later calls return the first result.

package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/lexique/assets"
)

var (
	ErrNotFound    = errors.New("lexicon: entry not found")
	ErrDuplicateID = errors.New("lexicon: duplicate entry id")
	ErrEmptyID     = errors.New("lexicon: entry without id")
)

// Lexicon is an immutable ordered sequence of entries.
type Lexicon struct {
	entries []Entry
	byID    map[string]int // id → position in entries
}

// New builds a Lexicon from entries, preserving their order.
func New(entries []Entry) (*Lexicon, error) {
	l := &Lexicon{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return nil, fmt.Errorf("%w (position %d)", ErrEmptyID, i)
		}
		if _, dup := l.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
		}
		l.byID[e.ID] = len(l.entries)
		l.entries = append(l.entries, e)
	}
	return l, nil
}

// MustNew is New for fixtures; it panics on invalid input.
func MustNew(entries []Entry) *Lexicon {
	l, err := New(entries)
	if err != nil {
		panic(err)
	}
	return l
}

// Parse decodes a JSON array of entries.
func Parse(data []byte) (*Lexicon, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("lexicon: decode: %w", err)
	}
	return New(entries)
}

// Load reads the lexicon from path, or from the embedded asset when path is empty.
func Load(path string) (*Lexicon, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = assets.LexiconJSON()
	}
	if err != nil {
		return nil, fmt.Errorf("lexicon: read: %w", err)
	}
	return Parse(data)
}

// Len returns the number of entries.
func (l *Lexicon) Len() int { return len(l.entries) }

// At returns the entry at position i.
func (l *Lexicon) At(i int) Entry { return l.entries[i] }

// All returns a copy of every entry in lexicon order.
func (l *Lexicon) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByID looks up an entry by its id.
func (l *Lexicon) ByID(id string) (Entry, error) {
	i, ok := l.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return l.entries[i], nil
}

// Playable returns, in lexicon order, the entries with both sides filled in.
func (l *Lexicon) Playable() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Playable() {
			out = append(out, e)
		}
	}
	return out
}

// Stats returns counts of loaded entries: (total, playable).
func (l *Lexicon) Stats() (total int, playable int) {
	return len(l.entries), len(l.Playable())
}

// --- process-wide instance ---

var (
	initOnce   sync.Once
	defaultLex *Lexicon
	initialErr error
)

// Init loads the process-wide lexicon exactly once.
// Returns an error if loading fails or the lexicon ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		defaultLex, initialErr = Load(path)
		if initialErr == nil && defaultLex.Len() == 0 {
			initialErr = errors.New("lexicon: no entries")
		}
	})
	return initialErr
}

// Default returns the lexicon loaded by Init, or an empty lexicon before Init succeeded.
func Default() *Lexicon {
	if defaultLex == nil {
		return &Lexicon{byID: map[string]int{}}
	}
	return defaultLex
}
