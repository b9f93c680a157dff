package util

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"KIB", 1 << 10},
	{"MIB", 1 << 20},
	{"GIB", 1 << 30},
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"GB", 1 << 30},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"G", 1 << 30},
	{"B", 1},
}

// ParseSize parses a human-readable size such as "64KB", "1MiB" or "4096"
// into bytes. Units are binary and case-insensitive. An empty string yields
// defaultBytes.
func ParseSize(s string, defaultBytes int64) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes, nil
	}

	num, multiplier := s, int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			num, multiplier = strings.TrimSpace(s[:len(s)-len(u.suffix)]), u.multiplier
			break
		}
	}

	val, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid size %q: must not be negative", s)
	}
	if val > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("invalid size %q: out of range", s)
	}
	return val * multiplier, nil
}
