package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLines is returned for a malformed line range.
var ErrInvalidLines = errors.New("invalid line range")

// ParseLines parses "a:b", "a:" or "a" into a 1-based inclusive range. An
// open end is returned as 0.
func ParseLines(text string) (int, int, error) {
	startText, endText, hasColon := strings.Cut(strings.TrimSpace(text), ":")

	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil || start < 1 {
		return 0, 0, fmt.Errorf("%w: %q: start must be a positive integer", ErrInvalidLines, text)
	}

	switch {
	case !hasColon:
		return start, start, nil
	case strings.TrimSpace(endText) == "":
		return start, 0, nil
	}

	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil || end < start {
		return 0, 0, fmt.Errorf("%w: %q: end must be an integer >= %d", ErrInvalidLines, text, start)
	}
	return start, end, nil
}
