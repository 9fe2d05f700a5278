package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSampleCount parses a string representing a number of samples. The
// string can be a plain number or include a unit suffix, one of 'k' or 'M',
// which multiply by 1e3 and 1e6 respectively.
//
// e.g. "5" -> 5
//
//	"2k" -> 2000
//	"3M" -> 3000000
func ParseSampleCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty sample count")
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1e3
		s = s[:len(s)-1]
	case 'M':
		mult = 1e6
		s = s[:len(s)-1]
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sample count %q", s)
	}
	if val <= 0 {
		return 0, fmt.Errorf("sample count must be positive")
	}
	return val * mult, nil
}
