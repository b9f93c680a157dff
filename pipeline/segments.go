package pipeline

import (
	"bufio"
	"context"
	"io"

	"github.com/kbukum/subsl/split"
)

// Segment is one piece of split input together with its position.
type Segment[T any] struct {
	// Index is the zero-based position of the segment in the output.
	Index int
	// Span locates the segment in the original input.
	Span split.Span
	// Data is a view into the input; it is not copied.
	Data []T
}

// Segments creates a pipeline yielding the segments of haystack separated by
// needle. Every run starts a fresh splitter over the same haystack.
func Segments[T comparable](haystack, needle []T) *Pipeline[Segment[T]] {
	return FromFunc(func(_ context.Context) Iterator[Segment[T]] {
		return &splitterIter[T]{haystack: haystack, splitter: split.New(haystack, needle)}
	})
}

// SplitEach re-splits every upstream chunk on needle and yields the
// resulting segments in order.
func SplitEach[T comparable](p *Pipeline[[]T], needle []T) *Pipeline[[]T] {
	return FlatMap(p, func(_ context.Context, chunk []T) (Iterator[[]T], error) {
		return &dataIter[T]{splitter: split.New(chunk, needle)}, nil
	})
}

// Stream creates a single-run pipeline yielding the segments of r separated
// by needle. Segment data aliases the scanner buffer and is only valid until
// the next value is pulled.
//
// maxSize bounds the length of a single segment, excluding the needle that
// ends it; zero or less means bufio.MaxScanTokenSize. A longer segment fails
// the run with bufio.ErrTooLong.
func Stream(r io.Reader, needle []byte, maxSize int) *Pipeline[Segment[byte]] {
	if maxSize <= 0 {
		maxSize = bufio.MaxScanTokenSize
	}
	sc := split.NewScanner(r, needle)
	// Room for the segment, its needle, and one byte to observe EOF after
	// a final segment of exactly maxSize.
	sc.Buffer(nil, maxSize+len(needle)+1)
	return From[Segment[byte]](&scannerIter{scanner: sc, needleLen: len(needle), maxSize: maxSize})
}

type splitterIter[T comparable] struct {
	haystack []T
	splitter *split.Splitter[T]
	index    int
}

func (it *splitterIter[T]) Next(ctx context.Context) (Segment[T], bool, error) {
	if err := ctx.Err(); err != nil {
		return Segment[T]{}, false, err
	}
	sp, ok := it.splitter.NextSpan()
	if !ok {
		return Segment[T]{}, false, nil
	}
	seg := Segment[T]{Index: it.index, Span: sp, Data: it.haystack[sp.Start:sp.End:sp.End]}
	it.index++
	return seg, true, nil
}

func (it *splitterIter[T]) Close() error { return nil }

type dataIter[T comparable] struct {
	splitter *split.Splitter[T]
}

func (it *dataIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	seg, ok := it.splitter.Next()
	return seg, ok, nil
}

func (it *dataIter[T]) Close() error { return nil }

type scannerIter struct {
	scanner   *bufio.Scanner
	needleLen int
	maxSize   int
	offset    int
	index     int
}

func (it *scannerIter) Next(ctx context.Context) (Segment[byte], bool, error) {
	if err := ctx.Err(); err != nil {
		return Segment[byte]{}, false, err
	}
	if !it.scanner.Scan() {
		return Segment[byte]{}, false, it.scanner.Err()
	}
	data := it.scanner.Bytes()
	if len(data) > it.maxSize {
		return Segment[byte]{}, false, bufio.ErrTooLong
	}
	seg := Segment[byte]{
		Index: it.index,
		Span:  split.Span{Start: it.offset, End: it.offset + len(data)},
		Data:  data,
	}
	// Every segment but the last is followed by exactly one needle.
	it.offset += len(data) + it.needleLen
	it.index++
	return seg, true, nil
}

func (it *scannerIter) Close() error { return nil }
