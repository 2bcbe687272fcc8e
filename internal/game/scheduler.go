package game

import (
	"sync"
	"time"
)

// Cancel stops a scheduled task. Calling it more than once is harmless.
type Cancel func()

// Scheduler runs deferred and periodic callbacks on behalf of a session.
// Callbacks run on scheduler goroutines; sessions lock themselves inside them.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Cancel
	Every(d time.Duration, f func()) Cancel
}

// Clock is the wall-clock Scheduler.
type Clock struct{}

// AfterFunc runs f once after d.
func (Clock) AfterFunc(d time.Duration, f func()) Cancel {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// Every runs f every d until cancelled.
func (Clock) Every(d time.Duration, f func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				f()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// tasks tracks the outstanding scheduled work of one session.
// It is guarded by the owning session's mutex.
type tasks struct {
	next    int
	pending map[int]Cancel
}

func (t *tasks) add(c Cancel) int {
	if t.pending == nil {
		t.pending = make(map[int]Cancel)
	}
	t.next++
	t.pending[t.next] = c
	return t.next
}

// done forgets a task that already fired.
func (t *tasks) done(id int) {
	delete(t.pending, id)
}

func (t *tasks) cancel(id int) {
	if c, ok := t.pending[id]; ok {
		c()
		delete(t.pending, id)
	}
}

func (t *tasks) cancelAll() {
	for id, c := range t.pending {
		c()
		delete(t.pending, id)
	}
}

func (t *tasks) len() int { return len(t.pending) }

// schedule registers f with plan. The callback takes mu, forgets itself when it is
// one-shot, and runs f only while live still holds. Caller holds mu.
func (t *tasks) schedule(mu sync.Locker, plan func(time.Duration, func()) Cancel, d time.Duration, oneShot bool, live func() bool, f func()) int {
	var id int
	id = t.add(plan(d, func() {
		mu.Lock()
		defer mu.Unlock()
		if !live() {
			return
		}
		if oneShot {
			t.done(id)
		}
		f()
	}))
	return id
}
