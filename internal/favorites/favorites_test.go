package favorites

import (
	"context"
	"errors"
	"testing"
)

type failingKV struct {
	*MemoryKV
	setErr error
	getErr error
}

func (f failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s, err := Load(ctx, kv)
	if err != nil || s.Len() != 0 {
		t.Fatalf("missing key: len=%d err=%v", s.Len(), err)
	}

	_ = kv.Set(ctx, StorageKey, "{not json")
	s, err = Load(ctx, kv)
	if err != nil || s.Len() != 0 {
		t.Fatalf("corrupt value: len=%d err=%v", s.Len(), err)
	}

	_ = kv.Set(ctx, StorageKey, `["3","1","3",""]`)
	s, _ = Load(ctx, kv)
	if got := s.IDs(); len(got) != 2 || got[0] != "3" || got[1] != "1" {
		t.Fatalf("ids = %v", got)
	}
}

func TestLoadReadError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Load(context.Background(), failingKV{MemoryKV: NewMemoryKV(), getErr: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s, _ := Load(ctx, kv)

	added, err := s.Toggle(ctx, "5")
	if err != nil || !added || !s.Has("5") {
		t.Fatalf("first toggle added=%v err=%v", added, err)
	}
	added, _ = s.Toggle(ctx, "5")
	if added || s.Has("5") {
		t.Fatalf("second toggle did not remove")
	}

	_, _ = s.Toggle(ctx, "2")
	_, _ = s.Toggle(ctx, "7")
	reloaded, _ := Load(ctx, kv)
	if got := reloaded.IDs(); len(got) != 2 || got[0] != "2" || got[1] != "7" {
		t.Fatalf("persisted ids = %v", got)
	}
}

func TestAddRemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := Load(ctx, NewMemoryKV())
	calls := 0
	s.Subscribe(func([]string) { calls++ })

	_ = s.Add(ctx, "1")
	_ = s.Add(ctx, "1")
	_ = s.Remove(ctx, "9")
	if s.Len() != 1 || calls != 1 {
		t.Fatalf("len=%d notifications=%d, want 1/1", s.Len(), calls)
	}
	_ = s.Remove(ctx, "1")
	if s.Len() != 0 || calls != 2 {
		t.Fatalf("len=%d notifications=%d, want 0/2", s.Len(), calls)
	}
}

func TestSubscribersSeeChangeBeforeToggleReturns(t *testing.T) {
	ctx := context.Background()
	s, _ := Load(ctx, NewMemoryKV())

	var a, b []string
	unsubA := s.Subscribe(func(ids []string) { a = ids })
	s.Subscribe(func(ids []string) {
		if !s.Has("4") {
			t.Errorf("subscriber ran before the change was visible")
		}
		b = ids
	})

	_, _ = s.Toggle(ctx, "4")
	if len(a) != 1 || len(b) != 1 || a[0] != "4" {
		t.Fatalf("a=%v b=%v", a, b)
	}

	unsubA()
	unsubA()
	if s.Subscribers() != 1 {
		t.Fatalf("subscribers = %d", s.Subscribers())
	}
	_, _ = s.Toggle(ctx, "8")
	if len(a) != 1 || len(b) != 2 {
		t.Fatalf("after unsubscribe a=%v b=%v", a, b)
	}
}

func TestPersistFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	s, _ := Load(ctx, failingKV{MemoryKV: NewMemoryKV(), setErr: boom})
	notified := false
	s.Subscribe(func([]string) { notified = true })

	added, err := s.Toggle(ctx, "1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if !added || !s.Has("1") || !notified {
		t.Fatalf("in-memory change lost: added=%v has=%v notified=%v", added, s.Has("1"), notified)
	}
}

func TestRegistryPerDevice(t *testing.T) {
	ctx := context.Background()
	kvs := map[string]*MemoryKV{}
	reg := NewRegistry(func(device string) KV {
		if kvs[device] == nil {
			kvs[device] = NewMemoryKV()
		}
		return kvs[device]
	})

	a, _ := reg.For(ctx, "a")
	b, _ := reg.For(ctx, "b")
	_, _ = a.Toggle(ctx, "1")
	if b.Has("1") {
		t.Fatalf("devices share favorites")
	}
	again, _ := reg.For(ctx, "a")
	if again != a {
		t.Fatalf("registry did not reuse the loaded store")
	}
}
