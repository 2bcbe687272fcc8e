package game

import (
	"errors"
	"testing"
)

func newMemory(t *testing.T) (*Memory, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	m, err := NewMemory(entries(8), seeded(4), sched)
	if err != nil {
		t.Fatalf("new memory: %v", err)
	}
	return m, sched
}

// pairOf returns the id of the other card of c's pair, and one card from another pair.
func pairOf(m *Memory, c MemoryCard) (mate, other string) {
	for _, x := range m.cards {
		if x.ID == c.ID || x.Matched {
			continue
		}
		if x.PairID == c.PairID {
			mate = x.ID
		} else if other == "" {
			other = x.ID
		}
	}
	return mate, other
}

func TestMemoryDeal(t *testing.T) {
	m, _ := newMemory(t)
	s := m.Snapshot()
	if len(s.Cards) != 2*MemoryPairs || s.TotalPairs != MemoryPairs || s.State != StateRunning {
		t.Fatalf("snapshot %+v", s)
	}
	for _, c := range s.Cards {
		if c.Content != "" || c.PairID != "" {
			t.Fatalf("face-down card leaked %+v", c)
		}
	}
	counts := map[string]map[Side]int{}
	for _, c := range m.cards {
		if counts[c.PairID] == nil {
			counts[c.PairID] = map[Side]int{}
		}
		counts[c.PairID][c.Side]++
	}
	if len(counts) != MemoryPairs {
		t.Fatalf("pairs = %d", len(counts))
	}
	for id, sides := range counts {
		if sides[SideSource] != 1 || sides[SideTranslation] != 1 {
			t.Fatalf("pair %s has sides %v", id, sides)
		}
	}
}

func TestMemoryNeedsSixEntries(t *testing.T) {
	if _, err := NewMemory(entries(5), seeded(1), &fakeScheduler{}); !errors.Is(err, ErrNotEnoughWords) {
		t.Fatalf("expected ErrNotEnoughWords, got %v", err)
	}
}

func TestMemoryMatch(t *testing.T) {
	m, sched := newMemory(t)
	first := m.cards[0]
	mate, other := pairOf(m, first)

	m.Flip(first.ID)
	s := m.Flip(mate)
	if s.Moves != 1 || !s.Checking || len(s.FlippedCardIDs) != 2 {
		t.Fatalf("after second flip %+v", s)
	}
	if s = m.Flip(other); len(s.FlippedCardIDs) != 2 {
		t.Fatalf("third flip accepted while checking")
	}

	if n := sched.fireAfter(); n != 1 {
		t.Fatalf("fired %d resolutions, want 1", n)
	}
	s = m.Snapshot()
	if s.MatchedPairs != 1 || s.Checking || len(s.FlippedCardIDs) != 0 {
		t.Fatalf("after match %+v", s)
	}
	for _, c := range s.Cards {
		if c.PairID == first.PairID && (!c.Matched || c.Content == "") {
			t.Fatalf("matched card not shown %+v", c)
		}
	}
	if s = m.Flip(first.ID); s.Moves != 1 || len(s.FlippedCardIDs) != 0 {
		t.Fatalf("matched card flipped again")
	}
}

func TestMemoryMismatch(t *testing.T) {
	m, sched := newMemory(t)
	first := m.cards[0]
	_, other := pairOf(m, first)

	m.Flip(first.ID)
	if s := m.Flip(first.ID); len(s.FlippedCardIDs) != 1 || s.Moves != 0 {
		t.Fatalf("same card counted twice %+v", s)
	}
	m.Flip(other)
	sched.fireAfter()
	s := m.Snapshot()
	if s.MatchedPairs != 0 || s.Moves != 1 || len(s.FlippedCardIDs) != 0 {
		t.Fatalf("after mismatch %+v", s)
	}
	for _, c := range s.Cards {
		if c.Flipped {
			t.Fatalf("card %s left face up", c.ID)
		}
	}
}

func TestMemoryCompleteAndClock(t *testing.T) {
	m, sched := newMemory(t)
	if sched.live() != 0 {
		t.Fatalf("clock started before the first flip")
	}
	for m.Snapshot().State == StateRunning {
		var first MemoryCard
		for _, c := range m.cards {
			if !c.Matched {
				first = c
				break
			}
		}
		mate, _ := pairOf(m, first)
		m.Flip(first.ID)
		m.Flip(mate)
		sched.tick()
		sched.fireAfter()
	}
	s := m.Snapshot()
	if s.State != StateComplete || s.MatchedPairs != MemoryPairs || s.Moves != MemoryPairs {
		t.Fatalf("final %+v", s)
	}
	if s.ElapsedSeconds != MemoryPairs {
		t.Fatalf("elapsed = %d, want %d", s.ElapsedSeconds, MemoryPairs)
	}
	if sched.tick() != 0 || m.pendingTasks() != 0 {
		t.Fatalf("clock still running after completion")
	}
	if s = m.Snapshot(); s.ElapsedSeconds != MemoryPairs {
		t.Fatalf("elapsed moved after completion")
	}
}

func TestMemoryRestartDiscardsStaleCallbacks(t *testing.T) {
	m, sched := newMemory(t)
	first := m.cards[0]
	mate, _ := pairOf(m, first)
	m.Flip(first.ID)
	m.Flip(mate)

	stale := sched.all()
	s := m.Restart()
	if s.Moves != 0 || s.MatchedPairs != 0 || s.ElapsedSeconds != 0 {
		t.Fatalf("restart %+v", s)
	}
	if sched.live() != 0 {
		t.Fatalf("restart left %d live tasks", sched.live())
	}
	for _, task := range stale {
		task.f()
	}
	if s = m.Snapshot(); s.MatchedPairs != 0 || s.ElapsedSeconds != 0 {
		t.Fatalf("stale callback mutated the new board %+v", s)
	}
}

func TestMemoryClose(t *testing.T) {
	m, sched := newMemory(t)
	m.Flip(m.cards[0].ID)
	m.Flip(m.cards[1].ID)
	m.Close()
	if m.pendingTasks() != 0 || sched.live() != 0 {
		t.Fatalf("close left pending tasks")
	}
	before := m.Snapshot()
	for _, task := range sched.all() {
		task.f()
	}
	after := m.Flip(m.cards[2].ID)
	if after.Moves != before.Moves || len(after.FlippedCardIDs) != len(before.FlippedCardIDs) {
		t.Fatalf("closed session changed")
	}
}
