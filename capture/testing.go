package capture

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestSubscriber gathers items from a subscription for assertions in tests.
type TestSubscriber[T any] struct {
	t       testing.TB
	items   []T
	cancel  context.CancelFunc
	timeout time.Duration
	mu      sync.Mutex
}

// Subscribe starts gathering items from subscribe until Wait or Stop is called.
func Subscribe[T any](t testing.TB, subscribe func(context.Context) <-chan T) *TestSubscriber[T] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ch := subscribe(ctx)

	s := &TestSubscriber[T]{
		t:       t,
		cancel:  cancel,
		timeout: 2 * time.Second,
	}

	go func() {
		for item := range ch {
			s.mu.Lock()
			s.items = append(s.items, item)
			s.mu.Unlock()
		}
	}()

	return s
}

// Wait blocks until n items arrived and returns them. The test fails after a timeout.
func (s *TestSubscriber[T]) Wait(n int) []T {
	s.t.Helper()
	defer s.cancel()

	deadline := time.Now().Add(s.timeout)
	for time.Now().Before(deadline) {
		if items := s.snapshot(); len(items) >= n {
			return items
		}
		time.Sleep(time.Millisecond)
	}

	s.t.Fatalf("timeout waiting for %d items, got %d", n, len(s.snapshot()))
	return nil
}

// Stop ends the subscription and returns the items received so far.
func (s *TestSubscriber[T]) Stop() []T {
	s.cancel()
	return s.snapshot()
}

func (s *TestSubscriber[T]) snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return items
}
