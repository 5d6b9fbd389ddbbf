package scan

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by Scanner.Scan matches
// ErrMalformedDeclaration and, where one applies, a more specific kind.
var (
	// ErrDelimiterNotFound indicates no opening delimiter where one was expected.
	ErrDelimiterNotFound = errors.New("delimiter not found")

	// ErrUnbalancedDelimiter indicates the buffer ended before the nesting
	// depth returned to zero.
	ErrUnbalancedDelimiter = errors.New("unbalanced delimiter")

	// ErrNoWhitespace indicates a declaration prefix without a separator
	// between its modifiers and its name.
	ErrNoWhitespace = errors.New("no whitespace before declaration name")

	// ErrMalformedDeclaration is the umbrella kind for any failed scan.
	ErrMalformedDeclaration = errors.New("malformed declaration")

	// ErrLineOutOfRange indicates a start line outside the line table.
	ErrLineOutOfRange = errors.New("line out of range")
)

// Error describes a failed declaration scan.
type Error struct {
	// Line is the 0-based start line that was scanned.
	Line int

	// Op names the scan step that failed.
	Op string

	// Err is the underlying failure.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line+1, e.Op, e.Err)
}

// Unwrap exposes both the umbrella kind and the underlying failure to
// errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{ErrMalformedDeclaration, e.Err}
}
