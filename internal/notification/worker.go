package notification

import (
	"context"
	"log"
)

// MessageDispatcher is what the pool needs from the dispatcher; kept small
// so tests can swap in a recorder.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, msg Message) Outcome
}

// WorkerPool sends notifications asynchronously so registration and
// reminder flows never block on gateway latency. Withdrawal confirmations
// bypass the pool: their dispatch outcome is part of the user-facing
// result and is awaited inline.
type WorkerPool struct {
	size       int
	jobs       chan Message
	dispatcher MessageDispatcher
}

// NewWorkerPool creates a new worker pool over the given dispatcher.
func NewWorkerPool(size int, dispatcher MessageDispatcher) *WorkerPool {
	return &WorkerPool{
		size:       size,
		jobs:       make(chan Message, size), // Buffered channel
		dispatcher: dispatcher,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case msg := <-wp.jobs:
			outcome := wp.dispatcher.Dispatch(ctx, msg)
			if !outcome.Success {
				log.Printf("Worker %d: %s notification to %s failed on every channel (%d attempts)",
					id, msg.Type, msg.To, len(outcome.Attempts))
			}
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Enqueue sends a job to the worker pool.
func (wp *WorkerPool) Enqueue(msg Message) {
	wp.jobs <- msg
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Message {
	return wp.jobs
}
