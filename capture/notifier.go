package capture

import (
	"context"
	"sync"
)

// Notifier fans out published items to subscribers. Publishing never blocks: items are dropped for
// subscribers whose buffer is full.
type Notifier[T any] struct {
	mu          sync.RWMutex
	subscribers map[<-chan T]chan T
	bufferSize  int
	queue       chan T
	done        chan struct{}
	closeOnce   sync.Once
	closed      bool
}

// NotifierOptions configures a Notifier.
type NotifierOptions struct {
	// SubscriberBufferSize is the channel buffer of each subscriber.
	// Default: 100
	SubscriberBufferSize int
	// QueueSize is the buffer of items waiting to be distributed.
	// Default: 1000
	QueueSize int
}

// DefaultNotifierOptions returns the default notifier options.
func DefaultNotifierOptions() NotifierOptions {
	return NotifierOptions{
		SubscriberBufferSize: 100,
		QueueSize:            1000,
	}
}

// NewNotifier creates a notifier with default options.
func NewNotifier[T any]() *Notifier[T] {
	return NewNotifierWithOptions[T](DefaultNotifierOptions())
}

// NewNotifierWithOptions creates a notifier and starts its distribution goroutine.
func NewNotifierWithOptions[T any](options NotifierOptions) *Notifier[T] {
	n := &Notifier[T]{
		subscribers: make(map[<-chan T]chan T),
		bufferSize:  options.SubscriberBufferSize,
		queue:       make(chan T, options.QueueSize),
		done:        make(chan struct{}),
	}

	go n.distribute()

	return n
}

// Subscribe returns a channel receiving published items until ctx is done or the notifier is closed.
func (n *Notifier[T]) Subscribe(ctx context.Context) <-chan T {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan T, n.bufferSize)
	if n.closed {
		close(ch)
		return ch
	}
	n.subscribers[ch] = ch

	go func() {
		select {
		case <-ctx.Done():
			n.Unsubscribe(ch)
		case <-n.done:
		}
	}()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (n *Notifier[T]) Unsubscribe(ch <-chan T) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if sub, ok := n.subscribers[ch]; ok {
		delete(n.subscribers, ch)
		close(sub)
	}
}

// Publish queues an item for all current subscribers.
func (n *Notifier[T]) Publish(item T) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}

	select {
	case n.queue <- item:
	default:
	}
}

// Close closes all subscriber channels. Publishing after Close is a no-op.
func (n *Notifier[T]) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		close(n.queue)
		n.mu.Unlock()

		// Wait for queued items to be handed out before closing subscriber channels
		<-n.done
	})
}

func (n *Notifier[T]) distribute() {
	for item := range n.queue {
		n.mu.RLock()
		for _, ch := range n.subscribers {
			select {
			case ch <- item:
			default:
			}
		}
		n.mu.RUnlock()
	}

	n.mu.Lock()
	for key, ch := range n.subscribers {
		delete(n.subscribers, key)
		close(ch)
	}
	n.mu.Unlock()

	close(n.done)
}
