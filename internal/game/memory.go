// internal/game/memory.go
//
// Memory match: twelve face-down cards, one term card and one translation card per entry.
//
// Flow:
//   - Flip turns a card face up. A second flip completes an attempt (move +1) and
//     schedules its resolution: a match (same pair, different sides) is locked in after
//     MatchDelay; anything else flips back face down after MismatchDelay.
//   - Flips are ignored while two cards await resolution, and for matched or face-up cards.
//   - The clock starts with the first flip and ticks once per second until every pair
//     is matched, which marks the session complete.
//   - Restart and Close cancel pending resolutions and the clock; a generation counter
//     discards any callback that still races in.

package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/lexique/internal/lexicon"
)

const (
	// MemoryPairs is the number of entries on a board.
	MemoryPairs = 6

	MatchDelay    = 500 * time.Millisecond
	MismatchDelay = 1000 * time.Millisecond
	memoryTick    = time.Second
)

// Side says which half of an entry a card shows.
type Side string

const (
	SideSource      Side = "source"
	SideTranslation Side = "translation"
)

// MemoryCard is one tile of the board.
type MemoryCard struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Side    Side   `json:"side"`
	PairID  string `json:"pairId"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// MemorySnapshot is the read-only view of a memory session.
// Content and PairID of face-down cards are blanked.
type MemorySnapshot struct {
	ID             string       `json:"id"`
	Kind           Kind         `json:"kind"`
	State          State        `json:"state"`
	Cards          []MemoryCard `json:"cards"`
	FlippedCardIDs []string     `json:"flippedCardIds"`
	MatchedPairs   int          `json:"matchedPairs"`
	TotalPairs     int          `json:"totalPairs"`
	Moves          int          `json:"moves"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
	Checking       bool         `json:"checking"`
}

// Memory is one memory-match session. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	id    string
	pool  []lexicon.Entry
	rnd   Rand
	sched Scheduler

	cards    []MemoryCard
	flipped  []string
	matched  int
	moves    int
	elapsed  int
	started  bool
	checking bool
	state    State

	gen     int // bumped on every reset; stale callbacks compare against it
	tasks   tasks
	clockID int
	closed  bool
}

// NewMemory deals a board of MemoryPairs random playable entries.
func NewMemory(entries []lexicon.Entry, rnd Rand, sched Scheduler) (*Memory, error) {
	pool := lo.UniqBy(lo.Filter(entries, func(e lexicon.Entry, _ int) bool { return e.Playable() }),
		func(e lexicon.Entry) string { return e.ID })
	if len(pool) < MemoryPairs {
		return nil, ErrNotEnoughWords
	}
	if rnd == nil {
		rnd = CryptoRand
	}
	if sched == nil {
		sched = Clock{}
	}
	m := &Memory{id: randomID(), pool: pool, rnd: rnd, sched: sched}
	m.reset()
	return m, nil
}

// DealCards builds the shuffled two-cards-per-entry board.
func DealCards(words []lexicon.Entry, rnd Rand) []MemoryCard {
	cards := make([]MemoryCard, 0, 2*len(words))
	for i, w := range words {
		cards = append(cards,
			MemoryCard{ID: fmt.Sprintf("source-%d", i), Content: w.Term, Side: SideSource, PairID: w.ID},
			MemoryCard{ID: fmt.Sprintf("translation-%d", i), Content: w.Translation, Side: SideTranslation, PairID: w.ID},
		)
	}
	return Shuffle(rnd, cards)
}

func (m *Memory) reset() {
	m.tasks.cancelAll()
	m.gen++
	m.cards = DealCards(Sample(m.rnd, m.pool, MemoryPairs), m.rnd)
	m.flipped = nil
	m.matched = 0
	m.moves = 0
	m.elapsed = 0
	m.started = false
	m.checking = false
	m.clockID = 0
	m.state = StateRunning
}

// ID implements Session.
func (m *Memory) ID() string { return m.id }

// Kind implements Session.
func (m *Memory) Kind() Kind { return KindMemory }

// Close implements Session: cancels pending resolutions and the clock.
func (m *Memory) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.gen++
	m.tasks.cancelAll()
}

// Restart deals a new board.
func (m *Memory) Restart() MemorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.reset()
	}
	return m.snapshot()
}

// Flip turns cardID face up.
func (m *Memory) Flip(cardID string) MemorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flip(cardID)
	return m.snapshot()
}

func (m *Memory) flip(cardID string) {
	if m.closed || m.state != StateRunning || m.checking || len(m.flipped) >= 2 {
		return
	}
	idx := m.cardIndex(cardID)
	if idx < 0 || m.cards[idx].Matched || m.cards[idx].Flipped {
		return
	}

	if !m.started {
		m.started = true
		m.clockID = m.tasks.schedule(&m.mu, m.sched.Every, memoryTick, false, m.live(), m.tick)
	}

	m.cards[idx].Flipped = true
	m.flipped = append(m.flipped, cardID)
	if len(m.flipped) < 2 {
		return
	}

	m.moves++
	m.checking = true
	a, b := m.cards[m.cardIndex(m.flipped[0])], m.cards[m.cardIndex(m.flipped[1])]
	if a.PairID == b.PairID && a.Side != b.Side {
		m.tasks.schedule(&m.mu, m.sched.AfterFunc, MatchDelay, true, m.live(), m.resolveMatch)
	} else {
		m.tasks.schedule(&m.mu, m.sched.AfterFunc, MismatchDelay, true, m.live(), m.resolveMismatch)
	}
}

// live returns a check that holds while the current generation is active.
func (m *Memory) live() func() bool {
	gen := m.gen
	return func() bool { return !m.closed && m.gen == gen }
}

func (m *Memory) tick() {
	if m.state == StateRunning && m.started {
		m.elapsed++
	}
}

func (m *Memory) resolveMatch() {
	if len(m.flipped) != 2 {
		return
	}
	pair := m.cards[m.cardIndex(m.flipped[0])].PairID
	for i := range m.cards {
		if m.cards[i].PairID == pair {
			m.cards[i].Matched = true
		}
	}
	m.matched++
	m.flipped = nil
	m.checking = false
	if m.matched == len(m.cards)/2 {
		m.state = StateComplete
		m.tasks.cancel(m.clockID)
	}
}

func (m *Memory) resolveMismatch() {
	for _, id := range m.flipped {
		if i := m.cardIndex(id); i >= 0 {
			m.cards[i].Flipped = false
		}
	}
	m.flipped = nil
	m.checking = false
}

func (m *Memory) cardIndex(id string) int {
	for i := range m.cards {
		if m.cards[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns the current read-only view.
func (m *Memory) Snapshot() MemorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Memory) snapshot() MemorySnapshot {
	s := MemorySnapshot{
		ID:             m.id,
		Kind:           KindMemory,
		State:          m.state,
		Cards:          make([]MemoryCard, len(m.cards)),
		FlippedCardIDs: append([]string{}, m.flipped...),
		MatchedPairs:   m.matched,
		TotalPairs:     len(m.cards) / 2,
		Moves:          m.moves,
		ElapsedSeconds: m.elapsed,
		Checking:       m.checking,
	}
	for i, c := range m.cards {
		if !c.Flipped && !c.Matched {
			c.Content = ""
			c.PairID = ""
		}
		s.Cards[i] = c
	}
	return s
}

// pendingTasks reports outstanding scheduled work (tests).
func (m *Memory) pendingTasks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasks.len()
}
