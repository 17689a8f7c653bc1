// Package pipe provides the bounded FIFO queue that connects pipeline
// stages: fixed capacity, send with timeout, blocking receive.
package pipe

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrFull is returned by Send when the queue stays at capacity for the
// whole timeout. The caller drops the item and carries on.
var ErrFull = errors.New("queue full")

// Queue is a fixed-capacity FIFO of T. Accepted items come back out in
// send order; a full queue rejects new sends rather than overwriting.
// Safe for concurrent senders and receivers.
type Queue[T any] struct {
	name    string
	ch      chan T
	dropped atomic.Uint64
}

// New creates a queue with the given capacity. The capacity is fixed
// for the queue's lifetime.
func New[T any](name string, capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("queue %s: capacity must be positive, got %d", name, capacity)
	}
	return &Queue[T]{name: name, ch: make(chan T, capacity)}, nil
}

// Send enqueues item, waiting up to timeout for a free slot. A zero
// timeout makes the send non-blocking. Rejected items are counted as
// dropped and reported via ErrFull.
func (q *Queue[T]) Send(item T, timeout time.Duration) error {
	select {
	case q.ch <- item:
		return nil
	default:
	}
	if timeout <= 0 {
		q.dropped.Add(1)
		return ErrFull
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case q.ch <- item:
		return nil
	case <-timer.C:
		q.dropped.Add(1)
		return ErrFull
	}
}

// Receive blocks until an item is available or ctx is cancelled.
// The second result is false only on cancellation.
func (q *Queue[T]) Receive(ctx context.Context) (T, bool) {
	select {
	case item := <-q.ch:
		return item, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// Name returns the queue's name, used in logs and the health view.
func (q *Queue[T]) Name() string { return q.name }

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int { return len(q.ch) }

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int { return cap(q.ch) }

// Dropped returns how many sends have been rejected with ErrFull.
func (q *Queue[T]) Dropped() uint64 { return q.dropped.Load() }
