// Package reactive provides the small publish/subscribe primitives the
// components are wired with: a value cell that replays its current value
// to new subscribers, derived cells, and a batch guard that coalesces a
// group of changes into a single recompute.
package reactive

import (
	"context"
	"sync"
)

// Signal holds a value and notifies subscribers whenever it is set.
// It is safe for use from multiple goroutines; listeners run on the
// goroutine that called Set, outside the internal lock.
type Signal[T any] struct {
	mu        sync.Mutex
	value     T
	listeners map[int]func(T)
	nextID    int
	equal     func(a, b T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, listeners: make(map[int]func(T))}
}

// NewComparableSignal creates a signal that skips notification when the
// new value equals the current one.
func NewComparableSignal[T comparable](initial T) *Signal[T] {
	s := NewSignal(initial)
	s.equal = func(a, b T) bool { return a == b }
	return s
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and notifies every subscriber.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Update replaces the value with fn applied to the current one.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the subscription; calling it more than
// once is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Len returns the number of live subscriptions.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// snapshot returns listeners in subscription order. Caller holds mu.
func (s *Signal[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Watch delivers the current value and every later one on the returned
// channel until ctx is done, when the channel is closed. Values are
// conflated: a slow reader only ever sees the latest.
func (s *Signal[T]) Watch(ctx context.Context) <-chan T {
	out := make(chan T)
	wake := make(chan struct{}, 1)

	var mu sync.Mutex
	var latest T
	stop := s.Subscribe(func(v T) {
		mu.Lock()
		latest = v
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
			}
			mu.Lock()
			v := latest
			mu.Unlock()
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Derive returns a signal that tracks fn(src) and a function that detaches
// it from src.
func Derive[A, B any](src *Signal[A], fn func(A) B) (*Signal[B], func()) {
	out := NewSignal(fn(src.Get()))
	first := true
	stop := src.Subscribe(func(a A) {
		if first {
			first = false
			return
		}
		out.Set(fn(a))
	})
	return out, stop
}
