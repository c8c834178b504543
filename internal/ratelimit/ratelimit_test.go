package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestAllowUpToMax(t *testing.T) {
	l := New(NewMemoryStore(), 3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("fourth request should be throttled")
	}
	// autre IP: compteur indépendant
	if !l.Allow("5.6.7.8") {
		t.Fatal("other keys must not share the counter")
	}
}

func TestWindowExpiryResetsCounter(t *testing.T) {
	l := New(NewMemoryStore(), 1, 30*time.Millisecond)
	if !l.Allow("ip") {
		t.Fatal("first request should pass")
	}
	if l.Allow("ip") {
		t.Fatal("second request within window should be throttled")
	}
	time.Sleep(50 * time.Millisecond)
	if !l.Allow("ip") {
		t.Fatal("expired window should grant a fresh budget")
	}
}

func TestSweepDropsExpiredEntries(t *testing.T) {
	s := NewMemoryStore()
	s.Incr("vieux", 10*time.Millisecond)
	s.Incr("récent", time.Minute)
	time.Sleep(20 * time.Millisecond)
	s.sweep()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries["vieux"]; ok {
		t.Fatal("expired entry survived the sweep")
	}
	if _, ok := s.entries["récent"]; !ok {
		t.Fatal("live entry dropped by the sweep")
	}
}

func TestResetClearsKey(t *testing.T) {
	l := New(NewMemoryStore(), 1, time.Minute)
	l.Allow("ip")
	if l.Allow("ip") {
		t.Fatal("should be throttled before reset")
	}
	l.store.Reset("ip")
	if !l.Allow("ip") {
		t.Fatal("reset should restore the budget")
	}
}

func TestStopIdempotent(t *testing.T) {
	l := New(nil, 5, time.Minute)
	l.Start()
	l.Stop()
	l.Stop() // ne doit pas paniquer
}

func TestConcurrentIncr(t *testing.T) {
	l := New(NewMemoryStore(), 50, time.Minute)
	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("shared")
		}()
	}
	wg.Wait()
	close(allowed)
	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 50 {
		t.Fatalf("expected exactly 50 allowed, got %d", count)
	}
}
