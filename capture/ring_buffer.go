package capture

import "sync"

// RingBuffer keeps the most recent entries up to a fixed capacity. It is safe for concurrent use.
type RingBuffer[T any] struct {
	entries []T
	size    int
	next    int
	mu      sync.RWMutex
}

// NewRingBuffer creates a ring buffer holding at most capacity entries.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		panic("capacity must be greater than 0")
	}

	return &RingBuffer[T]{
		entries: make([]T, capacity),
	}
}

// Add appends an entry, overwriting the oldest one when the buffer is full.
func (rb *RingBuffer[T]) Add(entry T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.next] = entry
	rb.next = (rb.next + 1) % len(rb.entries)
	if rb.size < len(rb.entries) {
		rb.size++
	}
}

// Last returns up to n of the newest entries, oldest first.
func (rb *RingBuffer[T]) Last(n int) []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	count := min(max(n, 0), rb.size)
	result := make([]T, count)

	capacity := len(rb.entries)
	start := rb.next - count + capacity
	for i := range count {
		result[i] = rb.entries[(start+i)%capacity]
	}

	return result
}

// All returns every buffered entry, oldest first.
func (rb *RingBuffer[T]) All() []T {
	return rb.Last(len(rb.entries))
}

// Len returns the number of buffered entries.
func (rb *RingBuffer[T]) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size
}

// Cap returns the capacity of the buffer.
func (rb *RingBuffer[T]) Cap() int {
	return len(rb.entries)
}
