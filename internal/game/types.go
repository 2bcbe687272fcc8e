// internal/game/types.go
//
// Core type definitions shared by the game engines.
// Defines:
//   - State: coarse session status reported in snapshots.
//   - Kind: which engine a session runs.
//   - Session: what the session registry needs from every engine.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// State is the status of a game session.
type State string

const (
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StateAnswered State = "answered"
	StateFinished State = "finished"
	StateRunning  State = "running"
	StateComplete State = "complete"
	StateWon      State = "won"
	StateLost     State = "lost"
	StateGameOver State = "game_over"
)

// Kind identifies a game engine.
type Kind string

const (
	KindHangman Kind = "hangman"
	KindQuiz    Kind = "quiz"
	KindMemory  Kind = "memory"
	KindSprint  Kind = "sprint"
)

// Kinds lists every engine in display order.
var Kinds = []Kind{KindHangman, KindQuiz, KindMemory, KindSprint}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Session is a single game instance owned by one player.
// Close cancels every pending timer; a closed session never mutates again.
type Session interface {
	ID() string
	Kind() Kind
	Close()
}

// ErrNotEnoughWords is returned when the lexicon can never satisfy a game's minimum.
var ErrNotEnoughWords = errors.New("game: not enough playable entries")

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
