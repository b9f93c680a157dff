package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrConsumed is returned when a single-run pipeline is run a second time.
var ErrConsumed = errors.New("pipeline: source already consumed")

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline is a lazy, pull-based chain of stages. No work happens until
// values are pulled via Collect or ForEach.
//
// Each run asks the source for a fresh iterator. Sources over memory
// (Segments, FromSlice, FromFunc) restart on every run. Sources that consume
// their input (From, Stream) run once; later runs fail with ErrConsumed.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// From creates a single-run pipeline over an existing iterator.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	var used atomic.Bool
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			if !used.CompareAndSwap(false, true) {
				return consumedIter[T]{}
			}
			return iter
		},
	}
}

// FromSlice creates a pipeline over a slice of values.
func FromSlice[T any](items []T) *Pipeline[T] {
	return FromFunc(func(_ context.Context) Iterator[T] {
		return &sliceIter[T]{items: items}
	})
}

// FromFunc creates a pipeline whose every run calls fn for a new iterator.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{create: fn}
}

// ForEach runs the pipeline and passes every value to fn. It stops at the
// first error from a stage or from fn.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	return p.run(ctx, fn)
}

// Collect runs the pipeline and returns all values as a slice.
// Values pulled before an error are returned along with it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var result []T
	err := p.run(ctx, func(_ context.Context, v T) error {
		result = append(result, v)
		return nil
	})
	return result, err
}

func (p *Pipeline[T]) run(ctx context.Context, sink func(context.Context, T) error) error {
	iter := p.create(ctx)
	defer iter.Close()
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := sink(ctx, val); err != nil {
			return err
		}
	}
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type consumedIter[T any] struct{}

func (consumedIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, ErrConsumed
}

func (consumedIter[T]) Close() error { return nil }
