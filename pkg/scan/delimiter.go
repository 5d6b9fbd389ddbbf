package scan

import (
	"bytes"
	"fmt"
)

// Span is the result of a balanced delimiter match.
type Span struct {
	// Text is the matched text. MatchInner excludes the delimiters,
	// MatchOuter includes them.
	Text string

	// Lower is the offset of the opening delimiter.
	Lower int

	// Upper is the offset of the matching closing delimiter.
	Upper int
}

// MatchInner finds the first openChar at or after start and returns the text
// strictly between it and its matching closeChar.
func MatchInner(buf []byte, start int, openChar, closeChar byte) (Span, error) {
	lower, upper, err := matchBalanced(buf, start, openChar, closeChar)
	if err != nil {
		return Span{}, err
	}
	return Span{Text: string(buf[lower+1 : upper]), Lower: lower, Upper: upper}, nil
}

// MatchOuter is MatchInner with both delimiters included in the text.
func MatchOuter(buf []byte, start int, openChar, closeChar byte) (Span, error) {
	lower, upper, err := matchBalanced(buf, start, openChar, closeChar)
	if err != nil {
		return Span{}, err
	}
	return Span{Text: string(buf[lower : upper+1]), Lower: lower, Upper: upper}, nil
}

// matchBalanced returns the offsets of the first openChar at or after start
// and of the closeChar that brings the nesting depth back to zero.
// Close delimiters seen before the first openChar are ignored.
func matchBalanced(buf []byte, start int, openChar, closeChar byte) (int, int, error) {
	start = max(start, 0)
	if start >= len(buf) {
		return 0, 0, fmt.Errorf("%w: no %q at or after offset %d", ErrDelimiterNotFound, openChar, start)
	}

	rel := bytes.IndexByte(buf[start:], openChar)
	if rel < 0 {
		return 0, 0, fmt.Errorf("%w: no %q at or after offset %d", ErrDelimiterNotFound, openChar, start)
	}
	lower := start + rel

	depth := 1
	for pos := lower + 1; pos < len(buf); pos++ {
		switch buf[pos] {
		case openChar:
			depth++
		case closeChar:
			depth--
			if depth == 0 {
				return lower, pos, nil
			}
		}
	}

	return 0, 0, fmt.Errorf("%w: %q at offset %d is never closed (depth %d at end of input)",
		ErrUnbalancedDelimiter, openChar, lower, depth)
}
