package movieui

import (
	"context"
	"sync"
)

// EventQueue hands each sent value to exactly one receiver, in send order.
// Values are not replayed. Pending values are dropped once the queue's
// context is done.
type EventQueue[T any] struct {
	ctx     context.Context
	mu      sync.Mutex
	pending []T
	signal  chan struct{}
	out     chan T
}

func newEventQueue[T any](ctx context.Context, wg *sync.WaitGroup) *EventQueue[T] {
	q := &EventQueue[T]{
		ctx:    ctx,
		signal: make(chan struct{}, 1),
		out:    make(chan T),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		q.pump()
	}()

	return q
}

// Send enqueues v without blocking the caller.
func (q *EventQueue[T]) Send(v T) {
	if q.ctx.Err() != nil {
		return
	}

	q.mu.Lock()
	q.pending = append(q.pending, v)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Receive returns the delivery channel. It is closed when the queue stops.
func (q *EventQueue[T]) Receive() <-chan T {
	return q.out
}

func (q *EventQueue[T]) pump() {
	defer close(q.out)

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			select {
			case <-q.signal:
				continue
			case <-q.ctx.Done():
				return
			}
		}
		v := q.pending[0]
		q.mu.Unlock()

		select {
		case q.out <- v:
			q.mu.Lock()
			q.pending = q.pending[1:]
			q.mu.Unlock()
		case <-q.ctx.Done():
			return
		}
	}
}
