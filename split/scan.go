package split

import (
	"bufio"
	"bytes"
	"io"
)

// ScanSubsequence returns a bufio.SplitFunc that yields the segments of the
// input separated by needle, following the same rules as Splitter.
//
// An empty needle buffers the whole input and yields it as one token, so it
// is bounded by the scanner's maximum token size.
func ScanSubsequence(needle []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if len(needle) == 0 {
			if !atEOF {
				return 0, nil, nil
			}
			if len(data) == 0 {
				// A nil token would end the scan without emitting it.
				return 0, []byte{}, bufio.ErrFinalToken
			}
			return len(data), data, bufio.ErrFinalToken
		}
		if i := bytes.Index(data, needle); i >= 0 {
			return i + len(needle), data[:i:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		// Request more data; a needle may straddle the buffer boundary.
		return 0, nil, nil
	}
}

// NewScanner returns a scanner reading r and yielding segments separated by
// needle. Tokens alias the scanner's buffer and are valid until the next Scan.
func NewScanner(r io.Reader, needle []byte) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Split(ScanSubsequence(needle))
	return sc
}
