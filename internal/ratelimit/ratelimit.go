package ratelimit

import (
	"sync"
	"time"
)

// CounterStore abstracts the backing store of the limiter: in-memory for a
// single instance and the tests, a shared cache for a multi-instance
// deployment. Incr bumps the counter for key within the window and returns
// the new count.
type CounterStore interface {
	Incr(key string, window time.Duration) int
	Reset(key string)
}

type entry struct {
	count      int
	expiration time.Time
}

// MemoryStore is a TTL counter map swept by a periodic cleaner.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]*entry{}}
}

func (s *MemoryStore) Incr(key string, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	e, ok := s.entries[key]
	if !ok || now.After(e.expiration) {
		e = &entry{expiration: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count
}

func (s *MemoryStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiration) {
			delete(s.entries, key)
		}
	}
}

// Limiter is an explicit service with an injected lifecycle rather than a
// module-level map cleaned by a global timer: Start launches the sweep
// goroutine, Stop terminates it.
type Limiter struct {
	store  CounterStore
	max    int
	window time.Duration

	done chan struct{}
	once sync.Once
}

func New(store CounterStore, max int, window time.Duration) *Limiter {
	if store == nil {
		store = NewMemoryStore()
	}
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{store: store, max: max, window: window, done: make(chan struct{})}
}

// Allow reports whether key may perform one more action in the current
// window.
func (l *Limiter) Allow(key string) bool {
	return l.store.Incr(key, l.window) <= l.max
}

// Start launches the periodic sweep when the backing store supports it.
func (l *Limiter) Start() {
	ms, ok := l.store.(*MemoryStore)
	if !ok {
		return
	}
	go func() {
		ticker := time.NewTicker(l.window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ms.sweep()
			case <-l.done:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine. Idempotent.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
}
