// internal/game/quiz.go
//
// Multiple-choice quiz: for each sampled entry, pick its translation among four options.
//
// State transitions: playing → answered → playing ... → finished.
//   - Submit is only accepted while playing; it scores and moves to answered.
//   - Advance moves to the next question, or to finished after the last one.
//   - Restart draws a new question set and zeroes score and index.

package game

import (
	"sync"

	"github.com/samber/lo"

	"github.com/robalobadob/lexique/internal/lexicon"
)

const (
	// QuizLength is the number of questions per session (fewer if the lexicon is smaller).
	QuizLength = 10
	// QuizOptions is the number of choices per question.
	QuizOptions = 4
)

// QuizQuestion asks for the translation of Entry.Term.
type QuizQuestion struct {
	Entry         lexicon.Entry `json:"entry"`
	Options       []string      `json:"options"`
	CorrectAnswer string        `json:"correctAnswer"`
}

// QuizSnapshot is the read-only view of a quiz session.
type QuizSnapshot struct {
	ID            string   `json:"id"`
	Kind          Kind     `json:"kind"`
	State         State    `json:"state"`
	Index         int      `json:"index"`
	Total         int      `json:"total"`
	Score         int      `json:"score"`
	Prompt        string   `json:"prompt"`
	PartOfSpeech  string   `json:"partOfSpeech,omitempty"`
	Options       []string `json:"options"`
	Selected      *string  `json:"selected,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"` // only once answered
	Correct       *bool    `json:"correct,omitempty"`
}

// Quiz is one quiz session. It is safe for concurrent use.
type Quiz struct {
	mu   sync.Mutex
	id   string
	pool []lexicon.Entry
	rnd  Rand

	questions []QuizQuestion
	index     int
	score     int
	selected  *string
	state     State
	closed    bool
}

// NewQuiz generates a question set from the playable entries.
// At least QuizOptions distinct translations are needed to build full option sets.
func NewQuiz(entries []lexicon.Entry, rnd Rand) (*Quiz, error) {
	pool := lo.Filter(entries, func(e lexicon.Entry, _ int) bool { return e.Playable() })
	translations := lo.Uniq(lo.Map(pool, func(e lexicon.Entry, _ int) string { return e.Translation }))
	if len(translations) < QuizOptions {
		return nil, ErrNotEnoughWords
	}
	if rnd == nil {
		rnd = CryptoRand
	}
	q := &Quiz{id: randomID(), pool: pool, rnd: rnd}
	q.reset()
	return q, nil
}

// GenerateQuestions builds up to QuizLength questions from pool (no repeated entry).
func GenerateQuestions(pool []lexicon.Entry, rnd Rand) []QuizQuestion {
	selected := Sample(rnd, pool, QuizLength)
	out := make([]QuizQuestion, 0, len(selected))
	for _, e := range selected {
		correct := e.Translation
		// Distinct wrong translations, in a random order.
		others := lo.Uniq(lo.FilterMap(Shuffle(rnd, pool), func(o lexicon.Entry, _ int) (string, bool) {
			return o.Translation, o.ID != e.ID && o.Translation != correct
		}))
		if len(others) > QuizOptions-1 {
			others = others[:QuizOptions-1]
		}
		out = append(out, QuizQuestion{
			Entry:         e,
			Options:       Shuffle(rnd, append([]string{correct}, others...)),
			CorrectAnswer: correct,
		})
	}
	return out
}

func (q *Quiz) reset() {
	q.questions = GenerateQuestions(q.pool, q.rnd)
	q.index = 0
	q.score = 0
	q.selected = nil
	q.state = StatePlaying
}

// ID implements Session.
func (q *Quiz) ID() string { return q.id }

// Kind implements Session.
func (q *Quiz) Kind() Kind { return KindQuiz }

// Close implements Session.
func (q *Quiz) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Questions returns a copy of the current question set.
func (q *Quiz) Questions() []QuizQuestion {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]QuizQuestion, len(q.questions))
	copy(out, q.questions)
	return out
}

// Submit answers the current question with choice.
func (q *Quiz) Submit(choice string) QuizSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed && q.state == StatePlaying {
		q.selected = &choice
		q.state = StateAnswered
		if choice == q.questions[q.index].CorrectAnswer {
			q.score++
		}
	}
	return q.snapshot()
}

// Advance moves past an answered question.
func (q *Quiz) Advance() QuizSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed && q.state == StateAnswered {
		if q.index+1 >= len(q.questions) {
			q.state = StateFinished
		} else {
			q.index++
			q.selected = nil
			q.state = StatePlaying
		}
	}
	return q.snapshot()
}

// Restart regenerates the questions and zeroes progress.
func (q *Quiz) Restart() QuizSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.reset()
	}
	return q.snapshot()
}

// Snapshot returns the current read-only view.
func (q *Quiz) Snapshot() QuizSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshot()
}

func (q *Quiz) snapshot() QuizSnapshot {
	cur := q.questions[q.index]
	s := QuizSnapshot{
		ID:           q.id,
		Kind:         KindQuiz,
		State:        q.state,
		Index:        q.index,
		Total:        len(q.questions),
		Score:        q.score,
		Prompt:       cur.Entry.Term,
		PartOfSpeech: cur.Entry.PartOfSpeech,
		Options:      append([]string(nil), cur.Options...),
	}
	if q.selected != nil {
		sel := *q.selected
		ok := sel == cur.CorrectAnswer
		s.Selected = &sel
		s.Correct = &ok
		s.CorrectAnswer = cur.CorrectAnswer
	}
	if q.state == StateFinished {
		s.CorrectAnswer = cur.CorrectAnswer
	}
	return s
}
