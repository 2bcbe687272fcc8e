// internal/game/hangman.go
//
// Single-player hangman over one lexicon term.
//
// State transitions: playing → won | lost (both terminal).
//   - Letters are compared after accent stripping and upper-casing, so "é" counts as "E".
//   - Only letters folding to A–Z are guessable; spaces and punctuation are always shown.
//   - A guess not present in the term costs one error; MaxErrors errors lose the game
//     and reveal every position.
//   - Any call in a terminal state, or repeating a letter, is a no-op.

package game

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/robalobadob/lexique/internal/lexicon"
	"github.com/robalobadob/lexique/internal/textnorm"
)

const (
	// MaxErrors is the number of wrong guesses that loses a hangman game.
	MaxErrors = 7

	minHangmanRunes = 3
)

// KeyState marks a guessed letter on the keyboard.
type KeyState string

const (
	KeyCorrect KeyState = "correct"
	KeyWrong   KeyState = "wrong"
)

// Tile is one displayed position of the hidden term.
type Tile struct {
	Char     string `json:"char"` // "_" while hidden
	Revealed bool   `json:"revealed"`
}

// HangmanSnapshot is the read-only view of a hangman session.
type HangmanSnapshot struct {
	ID           string              `json:"id"`
	Kind         Kind                `json:"kind"`
	State        State               `json:"state"`
	Tiles        []Tile              `json:"tiles"`
	Guessed      []string            `json:"guessed"`
	Keys         map[string]KeyState `json:"keys"`
	Errors       int                 `json:"errors"`
	MaxErrors    int                 `json:"maxErrors"`
	PartOfSpeech string              `json:"partOfSpeech,omitempty"`
	Answer       *lexicon.Entry      `json:"answer,omitempty"` // only once finished
}

// Hangman is one hangman session. It is safe for concurrent use.
type Hangman struct {
	mu   sync.Mutex
	id   string
	pool []lexicon.Entry
	rnd  Rand

	target   lexicon.Entry
	runes    []rune // target term as displayed
	folded   []rune // folded rune per position
	guessed  map[rune]bool
	revealed map[int]bool
	errors   int
	state    State
	closed   bool
}

// hangmanCandidates keeps terms of at least three characters containing a guessable letter.
func hangmanCandidates(entries []lexicon.Entry) []lexicon.Entry {
	out := make([]lexicon.Entry, 0, len(entries))
	for _, e := range entries {
		if utf8.RuneCountInString(e.Term) < minHangmanRunes {
			continue
		}
		if strings.IndexFunc(e.Term, textnorm.IsGuessable) >= 0 {
			out = append(out, e)
		}
	}
	return out
}

// NewHangman starts a session with a random eligible term from entries.
func NewHangman(entries []lexicon.Entry, rnd Rand) (*Hangman, error) {
	pool := hangmanCandidates(entries)
	if len(pool) == 0 {
		return nil, ErrNotEnoughWords
	}
	if rnd == nil {
		rnd = CryptoRand
	}
	h := &Hangman{id: randomID(), pool: pool, rnd: rnd}
	h.reset(pool[rnd.Intn(len(pool))])
	return h, nil
}

// reset starts over on target. Caller holds h.mu (or owns h exclusively).
func (h *Hangman) reset(target lexicon.Entry) {
	h.target = target
	h.runes = []rune(target.Term)
	h.folded = make([]rune, len(h.runes))
	for i, r := range h.runes {
		h.folded[i] = textnorm.FoldRune(r)
	}
	h.guessed = make(map[rune]bool)
	h.revealed = make(map[int]bool)
	h.errors = 0
	h.state = StatePlaying
}

// ID implements Session.
func (h *Hangman) ID() string { return h.id }

// Kind implements Session.
func (h *Hangman) Kind() Kind { return KindHangman }

// Close implements Session. Hangman has no timers; Close only freezes the session.
func (h *Hangman) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

// Restart samples a fresh target (repeats allowed) and clears all progress.
func (h *Hangman) Restart() HangmanSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.reset(h.pool[h.rnd.Intn(len(h.pool))])
	}
	return h.snapshot()
}

// Guess applies one letter. Only the first rune of letter is considered.
func (h *Hangman) Guess(letter string) HangmanSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.guess(letter)
	return h.snapshot()
}

func (h *Hangman) guess(letter string) {
	if h.closed || h.state != StatePlaying {
		return
	}
	r, _ := utf8.DecodeRuneInString(letter)
	if r == utf8.RuneError || !textnorm.IsGuessable(r) {
		return
	}
	l := textnorm.FoldRune(r)
	if h.guessed[l] {
		return
	}
	h.guessed[l] = true

	hit := false
	for i, f := range h.folded {
		if f == l {
			h.revealed[i] = true
			hit = true
		}
	}
	if !hit {
		h.errors++
	}

	switch {
	case h.allLettersGuessed():
		h.state = StateWon
	case h.errors >= MaxErrors:
		h.state = StateLost
		for i := range h.runes {
			h.revealed[i] = true
		}
	}
}

// allLettersGuessed reports whether every distinct guessable letter of the target was guessed.
func (h *Hangman) allLettersGuessed() bool {
	for _, f := range h.folded {
		if f >= 'A' && f <= 'Z' && !h.guessed[f] {
			return false
		}
	}
	return true
}

// Snapshot returns the current read-only view.
func (h *Hangman) Snapshot() HangmanSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot()
}

func (h *Hangman) snapshot() HangmanSnapshot {
	s := HangmanSnapshot{
		ID:           h.id,
		Kind:         KindHangman,
		State:        h.state,
		Tiles:        make([]Tile, len(h.runes)),
		Guessed:      make([]string, 0, len(h.guessed)),
		Keys:         make(map[string]KeyState, len(h.guessed)),
		Errors:       h.errors,
		MaxErrors:    MaxErrors,
		PartOfSpeech: h.target.PartOfSpeech,
	}
	for i, r := range h.runes {
		f := h.folded[i]
		shown := f < 'A' || f > 'Z' || h.guessed[f] || h.revealed[i]
		if shown {
			s.Tiles[i] = Tile{Char: string(r), Revealed: true}
		} else {
			s.Tiles[i] = Tile{Char: "_"}
		}
	}
	for l := range h.guessed {
		s.Guessed = append(s.Guessed, string(l))
		if h.inTarget(l) {
			s.Keys[string(l)] = KeyCorrect
		} else {
			s.Keys[string(l)] = KeyWrong
		}
	}
	sort.Strings(s.Guessed)
	if h.state != StatePlaying {
		target := h.target
		s.Answer = &target
	}
	return s
}

func (h *Hangman) inTarget(l rune) bool {
	for _, f := range h.folded {
		if f == l {
			return true
		}
	}
	return false
}
