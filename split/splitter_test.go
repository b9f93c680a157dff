package split

import (
	"bytes"
	"slices"
	"testing"
)

func collectStrings(haystack, needle string) []string {
	var out []string
	for seg := range Split([]byte(haystack), []byte(needle)) {
		out = append(out, string(seg))
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     []string
	}{
		{"no match", "hello", "test", []string{"hello"}},
		{"match in middle", "hello", "ll", []string{"he", "o"}},
		{"every element is a needle", "lll", "l", []string{"", "", ""}},
		{"empty needle", "hi", "", []string{"hi"}},
		{"needle equals haystack", "hi", "hi", []string{""}},
		{"empty haystack", "", "hi", nil},
		{"empty haystack and needle", "", "", []string{""}},
		{"needle longer than haystack", "hi", "hello", []string{"hi"}},
		{"leading needle", "--a", "--", []string{"", "a"}},
		{"trailing needle", "a--", "--", []string{"a"}},
		{"adjacent needles", "a----b", "--", []string{"a", "", "b"}},
		{"overlapping candidates", "aaa", "aa", []string{"", "a"}},
		{"partial needle at end", "abcab", "abc", []string{"", "ab"}},
		{"http headers", "GET / HTTP/1.0\r\n\r\nsome data in the body", "\r\n\r\n",
			[]string{"GET / HTTP/1.0", "some data in the body"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collectStrings(tc.haystack, tc.needle)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Split(%q, %q) = %q, want %q", tc.haystack, tc.needle, got, tc.want)
			}
		})
	}
}

func TestSplitNeedleEqualsHaystackYieldsSingleEmptySegment(t *testing.T) {
	s := New([]byte("hi"), []byte("hi"))
	seg, ok := s.Next()
	if !ok {
		t.Fatal("expected one segment")
	}
	if len(seg) != 0 {
		t.Errorf("expected empty segment, got %q", seg)
	}
	if seg, ok := s.Next(); ok {
		t.Errorf("expected exhaustion, got segment %q", seg)
	}
}

func TestSplitterNextSpan(t *testing.T) {
	s := New([]byte("a,bb,,c"), []byte(","))
	want := []Span{{0, 1}, {2, 4}, {5, 5}, {6, 7}}
	var got []Span
	for sp, ok := s.NextSpan(); ok; sp, ok = s.NextSpan() {
		got = append(got, sp)
	}
	if !slices.Equal(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
}

func TestSplitterExhaustionIsIdempotent(t *testing.T) {
	inputs := []struct{ haystack, needle string }{
		{"hello", "ll"},
		{"hi", ""},
		{"", ""},
		{"", "x"},
		{"lll", "l"},
	}
	for _, in := range inputs {
		s := New([]byte(in.haystack), []byte(in.needle))
		for _, ok := s.Next(); ok; _, ok = s.Next() {
		}
		if !s.Done() {
			t.Errorf("(%q, %q): Done() = false after exhaustion", in.haystack, in.needle)
		}
		for i := 0; i < 3; i++ {
			if seg, ok := s.Next(); ok {
				t.Errorf("(%q, %q): call %d after exhaustion returned %q", in.haystack, in.needle, i, seg)
			}
		}
	}
}

func TestSplitterCursorsStayInBounds(t *testing.T) {
	inputs := []struct{ haystack, needle string }{
		{"hi", ""},
		{"", ""},
		{"hello", "ll"},
		{"lll", "l"},
		{"abc", "bc"},
	}
	for _, in := range inputs {
		s := New([]byte(in.haystack), []byte(in.needle))
		n := len(in.haystack)
		for i := 0; i < 6; i++ {
			s.Next()
			if s.start < 0 || s.start > n {
				t.Errorf("(%q, %q) step %d: start = %d outside [0, %d]", in.haystack, in.needle, i, s.start, n)
			}
			if s.end < s.start || s.end > n+1 {
				t.Errorf("(%q, %q) step %d: end = %d with start %d", in.haystack, in.needle, i, s.end, s.start)
			}
			if s.end == n+1 && in.needle != "" {
				t.Errorf("(%q, %q) step %d: end reached the flush marker", in.haystack, in.needle, i)
			}
		}
	}
}

func TestSplitterDone(t *testing.T) {
	s := New([]byte("a-b"), []byte("-"))
	if s.Done() {
		t.Fatal("fresh splitter reported done")
	}
	s.Next()
	if s.Done() {
		t.Fatal("done with a trailing segment pending")
	}
	s.Next()
	if !s.Done() {
		t.Error("expected done after the trailing segment")
	}
}

func TestSplitterSegmentsAliasHaystack(t *testing.T) {
	hay := []byte("ab|cd")
	s := New(hay, []byte("|"))
	first, _ := s.Next()
	if &first[0] != &hay[0] {
		t.Error("segment does not alias the haystack")
	}
	if cap(first) != len(first) {
		t.Errorf("cap = %d, want %d", cap(first), len(first))
	}
	_ = append(first, 'X')
	if string(hay) != "ab|cd" {
		t.Errorf("append to segment modified haystack: %q", hay)
	}
}

func TestSplitterAllIsSinglePass(t *testing.T) {
	s := New([]int{1, 0, 2, 0, 3}, []int{0})
	var first [][]int
	for seg := range s.All() {
		first = append(first, seg)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 segments, got %v", first)
	}
	for seg := range s.All() {
		t.Errorf("second pass yielded %v", seg)
	}
}

func TestSplitterAllStopsEarly(t *testing.T) {
	s := New([]byte("a b c"), []byte(" "))
	for seg := range s.All() {
		if string(seg) != "a" {
			t.Errorf("got %q, want %q", seg, "a")
		}
		break
	}
	rest, ok := s.Next()
	if !ok || string(rest) != "b" {
		t.Errorf("after break Next() = %q, %v, want %q, true", rest, ok, "b")
	}
}

func TestSplitIsRestartable(t *testing.T) {
	seq := Split([]byte("x.y"), []byte("."))
	for i := 0; i < 2; i++ {
		n := 0
		for range seq {
			n++
		}
		if n != 2 {
			t.Errorf("pass %d: got %d segments, want 2", i, n)
		}
	}
}

func TestSplitGenericElements(t *testing.T) {
	type token string
	hay := []token{"let", "x", ";", ";", "y", ";"}
	got := Collect(hay, []token{";", ";"})
	want := [][]token{{"let", "x"}, {"y", ";"}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSplitNamedSliceType(t *testing.T) {
	type path []byte
	for seg := range Split(path("a/b"), path("/")) {
		var _ path = seg
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             int
	}{
		{"hello", "test", 1},
		{"lll", "l", 3},
		{"", "hi", 0},
		{"", "", 1},
		{"a,b,c", ",", 3},
	}
	for _, tc := range tests {
		if got := Count([]byte(tc.haystack), []byte(tc.needle)); got != tc.want {
			t.Errorf("Count(%q, %q) = %d, want %d", tc.haystack, tc.needle, got, tc.want)
		}
	}
}

func TestSpansOf(t *testing.T) {
	got := SpansOf([]byte("hello"), []byte("ll"))
	want := []Span{{0, 2}, {4, 5}}
	if !slices.Equal(got, want) {
		t.Errorf("SpansOf = %v, want %v", got, want)
	}
	if got[0].Len() != 2 || got[0].Empty() {
		t.Errorf("unexpected span helpers for %v", got[0])
	}
}

func TestNoMatchYieldsWholeHaystack(t *testing.T) {
	hay := []byte("abcdefg")
	got := Collect(hay, []byte("xyz"))
	if len(got) != 1 || !bytes.Equal(got[0], hay) {
		t.Errorf("got %q, want [%q]", got, hay)
	}
}

func TestSplitterDoesNotMutateInputs(t *testing.T) {
	hay := []byte("a::b::c")
	needle := []byte("::")
	Collect(hay, needle)
	if string(hay) != "a::b::c" || string(needle) != "::" {
		t.Errorf("inputs mutated: %q %q", hay, needle)
	}
}
