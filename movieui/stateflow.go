package movieui

import (
	"context"
	"sync"
)

// StateFlow holds a current value and pushes every change to its
// subscribers. New subscribers receive the latest value first. Delivery is
// conflated: a subscriber that falls behind only sees the newest value.
type StateFlow[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[chan T]struct{}
	closed bool
	done   chan struct{}
}

func NewStateFlow[T any](initial T) *StateFlow[T] {
	return &StateFlow[T]{
		value: initial,
		subs:  make(map[chan T]struct{}),
		done:  make(chan struct{}),
	}
}

func (f *StateFlow[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Subscribe returns a channel that yields the current value and then each
// update until ctx is done or the flow is closed.
func (f *StateFlow[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	f.mu.Lock()
	defer f.mu.Unlock()

	ch <- f.value
	if f.closed {
		close(ch)
		return ch
	}
	f.subs[ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			f.unsubscribe(ch)
		case <-f.done:
		}
	}()

	return ch
}

func (f *StateFlow[T]) emit(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.value = v
	for ch := range f.subs {
		// drop the stale value, the buffer has room afterwards
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

func (f *StateFlow[T]) unsubscribe(ch chan T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
}

func (f *StateFlow[T]) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	close(f.done)
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
}
