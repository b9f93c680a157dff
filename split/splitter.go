package split

import (
	"iter"
	"slices"
)

// Span is the half-open range [Start, End) of a segment within the haystack.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of elements covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no elements.
func (s Span) Empty() bool { return s.End == s.Start }

// Splitter lazily splits a haystack on a needle.
// It is single-pass: once exhausted it never rescans.
type Splitter[T comparable] struct {
	haystack []T
	needle   []T
	// start is where the next segment begins; end is the scan cursor.
	// start never passes len(haystack); end == len(haystack)+1 marks a
	// completed empty-needle flush.
	start int
	end   int
}

// New creates a Splitter over haystack using needle as the delimiter.
// Neither slice is copied; both must outlive the splitter and its segments.
func New[T comparable](haystack, needle []T) *Splitter[T] {
	return &Splitter[T]{haystack: haystack, needle: needle}
}

// Done reports whether the next advance will signal exhaustion.
func (s *Splitter[T]) Done() bool {
	n := len(s.haystack)
	if s.end > n {
		return true
	}
	if len(s.needle) == 0 {
		return false
	}
	return s.end == n && s.start >= s.end
}

// NextSpan advances the splitter and returns the range of the next segment.
// Returns false once the haystack is exhausted, and on every call after that.
func (s *Splitter[T]) NextSpan() (Span, bool) {
	if s.Done() {
		return Span{}, false
	}

	n := len(s.haystack)

	if len(s.needle) == 0 {
		seg := Span{Start: s.start, End: n}
		s.start, s.end = n, n+1
		return seg, true
	}

	m := len(s.needle)
	for ; s.end < n; s.end++ {
		if n-s.end < m {
			// Not enough room left for another match.
			s.end = n
			break
		}
		if slices.Equal(s.haystack[s.end:s.end+m], s.needle) {
			seg := Span{Start: s.start, End: s.end}
			s.end += m
			s.start = s.end
			return seg, true
		}
	}

	seg := Span{Start: s.start, End: n}
	s.start = n
	return seg, true
}

// Next advances the splitter and returns the next segment as a view into
// the haystack. The view's capacity is clipped to its length, so appending
// to it never writes into the haystack.
func (s *Splitter[T]) Next() ([]T, bool) {
	sp, ok := s.NextSpan()
	if !ok {
		return nil, false
	}
	return s.haystack[sp.Start:sp.End:sp.End], true
}

// All returns an iterator that drains the splitter segment by segment.
func (s *Splitter[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			seg, ok := s.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

// Spans returns an iterator that drains the splitter span by span.
func (s *Splitter[T]) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for {
			sp, ok := s.NextSpan()
			if !ok || !yield(sp) {
				return
			}
		}
	}
}

// Split returns an iterator over the segments of s separated by sep.
// Each range over the result starts from the beginning of s.
func Split[S ~[]E, E comparable](s, sep S) iter.Seq[S] {
	return func(yield func(S) bool) {
		sp := New([]E(s), []E(sep))
		for {
			seg, ok := sp.Next()
			if !ok || !yield(S(seg)) {
				return
			}
		}
	}
}

// Collect returns all segments of s separated by sep.
func Collect[S ~[]E, E comparable](s, sep S) []S {
	var out []S
	for seg := range Split(s, sep) {
		out = append(out, seg)
	}
	return out
}

// SpansOf returns the ranges of all segments of s separated by sep.
func SpansOf[S ~[]E, E comparable](s, sep S) []Span {
	return slices.Collect(New([]E(s), []E(sep)).Spans())
}

// Count returns the number of segments Split would yield.
func Count[S ~[]E, E comparable](s, sep S) int {
	c := 0
	sp := New([]E(s), []E(sep))
	for _, ok := sp.NextSpan(); ok; _, ok = sp.NextSpan() {
		c++
	}
	return c
}
