package arith

import (
	"strconv"
	"strings"
)

// ParseInt reads a base-10 integer, ignoring surrounding whitespace.
func ParseInt(s string) (int, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, ParseFailure(s, nil)
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, ParseFailure(s, err)
	}
	return n, nil
}

// ParseFloat reads a 64-bit float, ignoring surrounding whitespace.
func ParseFloat(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, ParseFailure(s, nil)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, ParseFailure(s, err)
	}
	return f, nil
}
