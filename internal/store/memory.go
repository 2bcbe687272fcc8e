// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - Stores game.Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Every Get refreshes the session's last-access time; Sweep closes sessions idle
//     for longer than a cutoff so their timers stop.
//   - Delete closes the session: this is the "unmount" of a game screen.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/lexique/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the registry interface for game sessions.
type Store interface {
	// Save registers or replaces a session.
	Save(ctx context.Context, s game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (game.Session, error)

	// Delete closes and forgets a session.
	Delete(ctx context.Context, id string) error

	// Sweep closes and forgets sessions not accessed within olderThan.
	// It returns how many were removed.
	Sweep(olderThan time.Duration) int

	// CloseAll closes and forgets every session.
	CloseAll() int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	session  game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

// Save adds or updates the session. A replaced session with the same ID is closed.
func (m *memory) Save(ctx context.Context, s game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[s.ID()]; ok && old.session != s {
		old.session.Close()
	}
	m.sessions[s.ID()] = &entry{session: s, lastSeen: m.now()}
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Write lock: lastSeen is updated on every read.
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.session, nil
}

// Delete removes and closes a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.session.Close()
	return nil
}

// Sweep closes sessions idle for longer than olderThan.
func (m *memory) Sweep(olderThan time.Duration) int {
	cutoff := m.now().Add(-olderThan)
	var stale []game.Session

	m.mu.Lock()
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

// CloseAll closes every session; used on shutdown.
func (m *memory) CloseAll() int {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range all {
		e.session.Close()
	}
	return len(all)
}

// Len reports the number of live sessions.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
