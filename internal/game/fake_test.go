package game

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/lexique/internal/lexicon"
)

// fakeTask is one callback registered with fakeScheduler.
type fakeTask struct {
	d         time.Duration
	f         func()
	periodic  bool
	fired     bool
	cancelled bool
}

// fakeScheduler records callbacks and only runs them when the test says so.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

func (s *fakeScheduler) add(d time.Duration, f func(), periodic bool) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTask{d: d, f: f, periodic: periodic}
	s.tasks = append(s.tasks, t)
	return func() {
		s.mu.Lock()
		t.cancelled = true
		s.mu.Unlock()
	}
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Cancel { return s.add(d, f, false) }

func (s *fakeScheduler) Every(d time.Duration, f func()) Cancel { return s.add(d, f, true) }

// fireAfter runs every pending one-shot callback once.
func (s *fakeScheduler) fireAfter() int {
	s.mu.Lock()
	var due []*fakeTask
	for _, t := range s.tasks {
		if !t.periodic && !t.fired && !t.cancelled {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}

// tick runs every live periodic callback once.
func (s *fakeScheduler) tick() int {
	s.mu.Lock()
	var due []*fakeTask
	for _, t := range s.tasks {
		if t.periodic && !t.cancelled {
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}

// live counts callbacks that were neither cancelled nor fired.
func (s *fakeScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

// all returns every registered callback, including cancelled ones.
func (s *fakeScheduler) all() []*fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fakeTask(nil), s.tasks...)
}

func seeded(seed int64) Rand { return rand.New(rand.NewSource(seed)) }

// entries builds n playable entries with distinct terms and translations.
func entries(n int) []lexicon.Entry {
	out := make([]lexicon.Entry, n)
	for i := range out {
		out[i] = lexicon.Entry{
			ID:           fmt.Sprintf("%d", i+1),
			Term:         fmt.Sprintf("term%c", 'a'+rune(i%26)) + fmt.Sprint(i),
			Translation:  fmt.Sprintf("translation %d", i),
			PartOfSpeech: "nom",
		}
	}
	return out
}

func embedded(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Load("")
	if err != nil {
		t.Fatalf("load embedded lexicon: %v", err)
	}
	return lex
}
