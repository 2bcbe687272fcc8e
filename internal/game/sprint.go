// internal/game/sprint.go
//
// Sprint: a translation is shown, three terms fall down the playfield, and the player
// must pick the right one before it drops out of view.
//
// State transitions: ready → playing → game_over (Start from any state begins a new run).
//   - Correct pick: score +1, speed +SpeedIncrement, next round immediately.
//   - Wrong pick, or the correct option falling past the playfield: the miss is recorded
//     with its reason, one life is lost, and the next round starts unless no lives remain.
//   - Advance(dt) is the pure per-frame transition; Start also runs it on a fixed-rate
//     loop through the Scheduler. The loop is cancelled on game over, restart and Close.
//   - Correct entries are not reused until fewer than sprintMinWords unused entries remain.

package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/lexique/internal/lexicon"
)

const (
	SprintLives    = 3
	InitialSpeed   = 1.0
	SpeedIncrement = 0.15

	PlayfieldWidth  = 400.0
	PlayfieldHeight = 400.0
	OptionWidth     = 120.0
	OptionHeight    = 50.0

	// BaseStep is the fall distance per ReferenceFrame at speed 1.
	BaseStep       = 2.0
	ReferenceFrame = time.Second / 60

	// DefaultFrame is the loop period used when none is configured.
	DefaultFrame = 16 * time.Millisecond

	sprintMinWords    = 4
	sprintDistractors = 2
	verticalStagger   = 20.0
)

// MissReason says why an entry was missed.
type MissReason string

const (
	MissWrongPick MissReason = "wrong_pick"
	MissTimeout   MissReason = "timeout"
)

// Outcome is the result of the last resolved round, used for the flash effect.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
)

// FallingOption is one falling term.
type FallingOption struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	IsCorrect bool    `json:"-"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Miss is one entry of the end-of-run review list.
type Miss struct {
	Entry  lexicon.Entry `json:"entry"`
	Reason MissReason    `json:"reason"`
}

// SprintSnapshot is the read-only view of a sprint session.
type SprintSnapshot struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	State       State           `json:"state"`
	Lives       int             `json:"lives"`
	MaxLives    int             `json:"maxLives"`
	Score       int             `json:"score"`
	Speed       float64         `json:"speed"`
	Round       int             `json:"round"`
	Prompt      string          `json:"prompt,omitempty"`
	Options     []FallingOption `json:"options"`
	Misses      []Miss          `json:"misses"`
	LastOutcome Outcome         `json:"lastOutcome,omitempty"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
}

// Sprint is one sprint session. It is safe for concurrent use.
type Sprint struct {
	mu    sync.Mutex
	id    string
	pool  []lexicon.Entry
	rnd   Rand
	sched Scheduler
	frame time.Duration

	recent  map[string]bool
	prompt  *lexicon.Entry
	options []FallingOption
	lives   int
	score   int
	speed   float64
	round   int
	misses  []Miss
	outcome Outcome
	state   State

	gen    int
	tasks  tasks
	loopID int
	closed bool
}

// NewSprint prepares a session in the ready state. A non-positive frame disables
// the built-in loop; the caller then drives Advance itself.
func NewSprint(entries []lexicon.Entry, rnd Rand, sched Scheduler, frame time.Duration) (*Sprint, error) {
	pool := lo.UniqBy(lo.Filter(entries, func(e lexicon.Entry, _ int) bool { return e.Playable() }),
		func(e lexicon.Entry) string { return e.ID })
	if len(pool) < sprintMinWords {
		return nil, ErrNotEnoughWords
	}
	if rnd == nil {
		rnd = CryptoRand
	}
	if sched == nil {
		sched = Clock{}
	}
	return &Sprint{
		id:     randomID(),
		pool:   pool,
		rnd:    rnd,
		sched:  sched,
		frame:  frame,
		recent: make(map[string]bool),
		lives:  SprintLives,
		speed:  InitialSpeed,
		state:  StateReady,
	}, nil
}

// ID implements Session.
func (s *Sprint) ID() string { return s.id }

// Kind implements Session.
func (s *Sprint) Kind() Kind { return KindSprint }

// Close implements Session: stops the frame loop for good.
func (s *Sprint) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.tasks.cancelAll()
}

// Start begins a new run: full lives, base speed, empty review list.
func (s *Sprint) Start() SprintSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.snapshot()
	}
	s.tasks.cancelAll()
	s.gen++
	s.lives = SprintLives
	s.score = 0
	s.speed = InitialSpeed
	s.round = 0
	s.misses = nil
	s.outcome = OutcomeNone
	s.recent = make(map[string]bool)
	s.state = StatePlaying
	s.nextRound()

	if s.frame > 0 {
		frame := s.frame
		gen := s.gen
		live := func() bool { return !s.closed && s.gen == gen }
		s.loopID = s.tasks.schedule(&s.mu, s.sched.Every, frame, false, live, func() { s.advance(frame) })
	}
	return s.snapshot()
}

// nextRound samples a prompt and three falling options.
func (s *Sprint) nextRound() {
	available := lo.Filter(s.pool, func(e lexicon.Entry, _ int) bool { return !s.recent[e.ID] })
	if len(available) < sprintMinWords {
		s.recent = make(map[string]bool)
		available = s.pool
	}
	picked := Sample(s.rnd, available, 1+sprintDistractors)
	correct := picked[0]
	s.recent[correct.ID] = true
	s.prompt = &correct
	s.round++

	xs := Shuffle(s.rnd, []float64{
		PlayfieldWidth * 0.15,
		PlayfieldWidth*0.5 - OptionWidth/2,
		PlayfieldWidth*0.85 - OptionWidth,
	})
	ys := Shuffle(s.rnd, []float64{
		-OptionHeight,
		-OptionHeight - verticalStagger,
		-OptionHeight - 2*verticalStagger,
	})
	options := make([]FallingOption, len(picked))
	for i, e := range picked {
		options[i] = FallingOption{Text: e.Term, IsCorrect: i == 0, X: xs[i], Y: ys[i]}
	}
	options = Shuffle(s.rnd, options)
	for i := range options {
		options[i].ID = fmt.Sprintf("r%d-%d", s.round, i)
	}
	s.options = options
}

// Pick resolves the round with the option optionID.
func (s *Sprint) Pick(optionID string) SprintSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StatePlaying {
		return s.snapshot()
	}
	opt, ok := lo.Find(s.options, func(o FallingOption) bool { return o.ID == optionID })
	if !ok {
		return s.snapshot()
	}
	if opt.IsCorrect {
		s.score++
		s.speed += SpeedIncrement
		s.outcome = OutcomeCorrect
		s.nextRound()
	} else {
		s.miss(MissWrongPick)
	}
	return s.snapshot()
}

// Advance moves every option down by speed × BaseStep per elapsed ReferenceFrame.
func (s *Sprint) Advance(dt time.Duration) SprintSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance(dt)
	return s.snapshot()
}

func (s *Sprint) advance(dt time.Duration) {
	if s.closed || s.state != StatePlaying || dt <= 0 {
		return
	}
	step := s.speed * BaseStep * float64(dt) / float64(ReferenceFrame)
	for i := range s.options {
		s.options[i].Y += step
	}
	if correct, ok := lo.Find(s.options, func(o FallingOption) bool { return o.IsCorrect }); ok && correct.Y > PlayfieldHeight {
		s.miss(MissTimeout)
	}
}

// miss records the current prompt as missed and costs one life.
func (s *Sprint) miss(reason MissReason) {
	if s.prompt != nil {
		s.misses = append(s.misses, Miss{Entry: *s.prompt, Reason: reason})
	}
	s.outcome = OutcomeWrong
	s.options = nil
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.state = StateGameOver
		s.tasks.cancel(s.loopID)
		return
	}
	s.nextRound()
}

// Snapshot returns the current read-only view.
func (s *Sprint) Snapshot() SprintSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Options returns the falling options including which one is correct (tests, CLI).
func (s *Sprint) Options() []FallingOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FallingOption(nil), s.options...)
}

func (s *Sprint) snapshot() SprintSnapshot {
	snap := SprintSnapshot{
		ID:          s.id,
		Kind:        KindSprint,
		State:       s.state,
		Lives:       s.lives,
		MaxLives:    SprintLives,
		Score:       s.score,
		Speed:       s.speed,
		Round:       s.round,
		Options:     append([]FallingOption{}, s.options...),
		Misses:      append([]Miss{}, s.misses...),
		LastOutcome: s.outcome,
		Width:       PlayfieldWidth,
		Height:      PlayfieldHeight,
	}
	if s.prompt != nil && s.state == StatePlaying {
		snap.Prompt = s.prompt.Translation
	}
	return snap
}
