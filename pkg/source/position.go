package source

// Range is a half-open byte range [Start, End) in a buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// LineSpan is an inclusive range of 0-based line indices.
type LineSpan struct {
	Start int
	End   int
}

// Contains reports whether line lies within the span.
func (s LineSpan) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}

// Lines returns the number of lines covered.
func (s LineSpan) Lines() int {
	return s.End - s.Start + 1
}
