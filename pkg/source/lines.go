// Package source holds an immutable source buffer and its line table.
package source

import (
	"bytes"
	"sort"
)

// LineInfo locates one line of a buffer.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index of the terminating '\n', or the buffer
	// length for the last line.
	NewlineStart int

	// EndOffset is the byte index one past the '\n' (equal to NewlineStart
	// for the last line).
	EndOffset int
}

// Len returns the length of the line without its newline.
func (l LineInfo) Len() int {
	return l.NewlineStart - l.StartOffset
}

// BuildLines splits content on '\n' without dropping empty lines.
// The result has one more entry than there are newlines, so an empty buffer
// yields one empty line and a trailing newline yields a trailing empty line.
// A '\r' before the newline is kept as line content.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: idx,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// File is a source buffer with its derived line table.
// Neither is mutated after NewFile returns, so a File may be shared between
// goroutines.
type File struct {
	Path    string
	Content []byte
	Lines   []LineInfo
}

// NewFile copies content and builds its line table.
func NewFile(path string, content []byte) *File {
	buf := make([]byte, len(content))
	copy(buf, content)

	return &File{
		Path:    path,
		Content: buf,
		Lines:   BuildLines(buf),
	}
}

// LineCount returns the number of lines.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// Line returns the 0-based line idx without its newline.
func (f *File) Line(idx int) (string, bool) {
	if idx < 0 || idx >= len(f.Lines) {
		return "", false
	}
	info := f.Lines[idx]
	return string(f.Content[info.StartOffset:info.NewlineStart]), true
}

// LineStart returns the absolute offset of the 0-based line idx.
func (f *File) LineStart(idx int) (int, bool) {
	if idx < 0 || idx >= len(f.Lines) {
		return 0, false
	}
	return f.Lines[idx].StartOffset, true
}

// Text returns the content of r, or "" when r lies outside the buffer.
func (f *File) Text(r Range) string {
	if r.Start < 0 || r.End > len(f.Content) || r.Start > r.End {
		return ""
	}
	return string(f.Content[r.Start:r.End])
}

// Indentation returns the leading spaces and tabs of the 0-based line idx.
func (f *File) Indentation(idx int) string {
	line, ok := f.Line(idx)
	if !ok {
		return ""
	}
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is negative.
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	return lineIdx + 1, offset - f.Lines[lineIdx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (f *File) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1

	// Column may point just past the line content for cursor positioning.
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}
