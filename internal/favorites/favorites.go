// internal/favorites/favorites.go
//
// Favorites: a persisted set of entry ids with synchronous change notification.
//
// Characteristics:
//   - Backed by a KV collaborator; the whole set is stored as a JSON array under StorageKey.
//   - A missing key loads as an empty set; an unreadable value is logged and also treated as empty.
//   - Every mutation is written to the KV and then delivered to every subscriber
//     before the mutating call returns. Mutations are serialized, so subscribers see
//     them in order. Subscribers may read the store but must not mutate it.
//   - A failed write keeps the in-memory change and is reported to the caller.

package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// StorageKey is the KV key holding the serialized id list.
const StorageKey = "favorites"

// KV is the persistent key-value collaborator.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}

// Store is one device's favorite set. It is safe for concurrent use.
type Store struct {
	kv KV

	write sync.Mutex // serializes mutate + persist + publish

	mu      sync.RWMutex
	ids     []string // insertion order
	subs    map[int]func(ids []string)
	nextSub int
}

// Load reads the favorite set from kv.
func Load(ctx context.Context, kv KV) (*Store, error) {
	s := &Store{kv: kv, subs: make(map[int]func([]string))}
	raw, ok, err := kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("favorites: load: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return s, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Warn().Err(err).Msg("favorites: unreadable stored value, starting empty")
		return s, nil
	}
	s.ids = lo.Uniq(lo.Filter(ids, func(id string, _ int) bool { return id != "" }))
	return s, nil
}

// Has reports whether id is a favorite.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Contains(s.ids, id)
}

// IDs returns the favorite ids in the order they were added.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.ids...)
}

// Len reports the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Toggle adds id if absent, removes it otherwise. added reports the new membership.
func (s *Store) Toggle(ctx context.Context, id string) (added bool, err error) {
	err = s.mutate(ctx, func(ids []string) []string {
		if lo.Contains(ids, id) {
			return lo.Without(ids, id)
		}
		added = true
		return append(ids, id)
	})
	return added, err
}

// Add makes id a favorite. Adding an existing favorite changes nothing.
func (s *Store) Add(ctx context.Context, id string) error {
	return s.mutate(ctx, func(ids []string) []string {
		if lo.Contains(ids, id) {
			return nil
		}
		return append(ids, id)
	})
}

// Remove drops id. Removing a missing id changes nothing.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, func(ids []string) []string {
		if !lo.Contains(ids, id) {
			return nil
		}
		return lo.Without(ids, id)
	})
}

// mutate applies f to a copy of the ids. A nil result means "no change".
func (s *Store) mutate(ctx context.Context, f func(ids []string) []string) error {
	s.write.Lock()
	defer s.write.Unlock()

	next := f(s.IDs())
	if next == nil {
		return nil
	}

	s.mu.Lock()
	s.ids = next
	subs := lo.Values(s.subs)
	s.mu.Unlock()

	var err error
	if data, mErr := json.Marshal(next); mErr != nil {
		err = fmt.Errorf("favorites: encode: %w", mErr)
	} else if sErr := s.kv.Set(ctx, StorageKey, string(data)); sErr != nil {
		err = fmt.Errorf("favorites: persist: %w", sErr)
	}
	if err != nil {
		log.Warn().Err(err).Msg("favorites: change kept in memory only")
	}

	for _, fn := range subs {
		fn(append([]string{}, next...))
	}
	return err
}

// Subscribe registers fn to receive the full id list after every change.
// The returned function unsubscribes; calling it twice is harmless.
func (s *Store) Subscribe(fn func(ids []string)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Subscribers reports the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
