// Package split splits a sequence of comparable elements on every occurrence
// of a contiguous subsequence, the way strings.Split splits text on a
// separator, but for any []T.
//
// A Splitter is a pull-based cursor over the haystack. Each call to Next
// returns the next segment as a view into the haystack; nothing is copied.
// The haystack must not be mutated while the splitter or its segments are
// in use.
//
// # Usage
//
//	req := []byte("GET / HTTP/1.0\r\n\r\nsome data in the body")
//	s := split.New(req, []byte("\r\n\r\n"))
//	headers, _ := s.Next()
//	body, _ := s.Next()
//
// With range-over-func:
//
//	for seg := range split.Split(req, []byte("\r\n")) {
//	    fmt.Printf("%q\n", seg)
//	}
//
// Matches are leftmost and never overlap. A needle at the very end of the
// haystack does not produce a trailing empty segment. An empty needle
// yields the whole haystack as a single segment, even when it is empty.
package split
