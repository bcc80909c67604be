package grid

import (
	"context"

	"github.com/henri123lemoine/trek/internal/reactive"
)

// Emission is one value pushed by a Stream: either a full row sequence or
// a fault.
type Emission[T any] struct {
	Rows []T
	Err  error
}

// Stream subscribes to a live row source. Each call starts a fresh
// subscription that first replays the source's current state; the
// returned channel is closed when the source ends or ctx is done.
type Stream[T any] func(ctx context.Context) <-chan Emission[T]

// Source is the grid's data input.
type Source[T any] struct {
	rows   []T
	stream Stream[T]
}

// Static wraps a materialized row sequence.
func Static[T any](rows []T) Source[T] {
	return Source[T]{rows: rows}
}

// FromStream wraps a live stream.
func FromStream[T any](s Stream[T]) Source[T] {
	return Source[T]{stream: s}
}

// IsStream reports whether the source is live.
func (s Source[T]) IsStream() bool {
	return s.stream != nil
}

// FromSignal streams every value a signal takes, starting with its
// current one.
func FromSignal[T any](sig *reactive.Signal[[]T]) Stream[T] {
	return func(ctx context.Context) <-chan Emission[T] {
		in := sig.Watch(ctx)
		out := make(chan Emission[T])
		go func() {
			defer close(out)
			for rows := range in {
				select {
				case out <- Emission[T]{Rows: rows}:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}
