package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDispatcher captures dispatched messages for assertions.
type recordingDispatcher struct {
	mu       sync.Mutex
	messages []Message
	done     chan struct{}
}

func newRecordingDispatcher(expected int) *recordingDispatcher {
	return &recordingDispatcher{done: make(chan struct{}, expected)}
}

func (r *recordingDispatcher) Dispatch(ctx context.Context, msg Message) Outcome {
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
	r.done <- struct{}{}
	return Outcome{Success: true, Channel: "recorder"}
}

func TestWorkerPool_DispatchesEnqueuedMessages(t *testing.T) {
	dispatcher := newRecordingDispatcher(2)
	pool := NewWorkerPool(2, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	pool.Enqueue(Message{To: "5511999990000", Body: "first", Type: TypeDelivery})
	pool.Enqueue(Message{To: "5511999990001", Body: "second", Type: TypeReminder})

	for i := 0; i < 2; i++ {
		select {
		case <-dispatcher.done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for worker dispatch")
		}
	}

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	require.Len(t, dispatcher.messages, 2)

	bodies := []string{dispatcher.messages[0].Body, dispatcher.messages[1].Body}
	assert.ElementsMatch(t, []string{"first", "second"}, bodies)
}

func TestWorkerPool_StopsOnContextCancel(t *testing.T) {
	dispatcher := newRecordingDispatcher(1)
	pool := NewWorkerPool(1, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	cancel()

	// Give the worker a moment to observe cancellation, then verify a
	// late job is left sitting in the queue.
	time.Sleep(50 * time.Millisecond)
	pool.Jobs() <- Message{Body: "late"}

	time.Sleep(50 * time.Millisecond)
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	assert.Empty(t, dispatcher.messages)
}
