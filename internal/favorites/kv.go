package favorites

import (
	"context"
	"sync"
)

// MemoryKV is a map-backed KV for tests and the CLI.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (kv *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

// KVFactory returns the KV scoped to one device.
type KVFactory func(device string) KV

// Registry hands out one Store per device, loading it on first use.
type Registry struct {
	mu      sync.Mutex
	factory KVFactory
	stores  map[string]*Store
}

// NewRegistry builds a Registry over factory.
func NewRegistry(factory KVFactory) *Registry {
	return &Registry{factory: factory, stores: make(map[string]*Store)}
}

// For returns the device's store, loading it if needed.
func (r *Registry) For(ctx context.Context, device string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[device]; ok {
		return s, nil
	}
	s, err := Load(ctx, r.factory(device))
	if err != nil {
		return nil, err
	}
	r.stores[device] = s
	return s, nil
}
