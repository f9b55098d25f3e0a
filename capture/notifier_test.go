package capture_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/capture"
)

func TestNotifier_Publish(t *testing.T) {
	t.Parallel()

	notifier := capture.NewNotifier[string]()
	defer notifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := notifier.Subscribe(ctx)
	second := notifier.Subscribe(ctx)

	notifier.Publish("hello")

	for i, ch := range []<-chan string{first, second} {
		select {
		case msg := <-ch:
			assert.Equal(t, "hello", msg, "subscriber %d", i)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}
}

func TestNotifier_UnsubscribeOnContextDone(t *testing.T) {
	t.Parallel()

	notifier := capture.NewNotifier[int]()
	defer notifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := notifier.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel was not closed after context cancel")
	}
}

func TestNotifier_CloseDeliversQueued(t *testing.T) {
	t.Parallel()

	notifier := capture.NewNotifier[int]()
	ch := notifier.Subscribe(context.Background())

	notifier.Publish(1)
	notifier.Publish(2)
	notifier.Close()

	var received []int
	for v := range ch {
		received = append(received, v)
	}
	assert.Equal(t, []int{1, 2}, received)

	// No-ops after close
	notifier.Publish(3)
	notifier.Close()

	closed := notifier.Subscribe(context.Background())
	_, ok := <-closed
	require.False(t, ok)
}
