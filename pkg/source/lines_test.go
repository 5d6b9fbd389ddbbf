package source_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/syncasync/pkg/source"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 0},
			},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "CR stays in line content",
			content: "hello\r\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 6, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "leading and inner empty lines",
			content: "\n\nx\n\ny",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 1},
				{StartOffset: 1, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 3, EndOffset: 4},
				{StartOffset: 4, NewlineStart: 4, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 6, EndOffset: 6},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lines := source.BuildLines([]byte(testCase.content))

			if len(lines) != len(testCase.expected) {
				t.Fatalf("expected %d lines, got %d", len(testCase.expected), len(lines))
			}

			for i, exp := range testCase.expected {
				if lines[i] != exp {
					t.Errorf("line %d: expected %+v, got %+v", i, exp, lines[i])
				}
			}
		})
	}
}

func TestFile_LinesReconstructBuffer(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n",
		"func a() {\n}\n",
		"\n\nfunc b() {}\n\n\n",
		"no newline at end",
	}

	for _, input := range inputs {
		file := source.NewFile("t.swift", []byte(input))

		parts := make([]string, 0, file.LineCount())
		for i := range file.LineCount() {
			line, ok := file.Line(i)
			if !ok {
				t.Fatalf("line %d missing for %q", i, input)
			}
			parts = append(parts, line)
		}

		if got := strings.Join(parts, "\n"); got != input {
			t.Errorf("reconstructed %q, want %q", got, input)
		}
		if file.LineCount() != strings.Count(input, "\n")+1 {
			t.Errorf("%q: %d lines, want %d", input, file.LineCount(), strings.Count(input, "\n")+1)
		}
	}
}

func TestFile_LineOutOfRange(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("a\nb"))

	if _, ok := file.Line(-1); ok {
		t.Error("Line(-1) should fail")
	}
	if _, ok := file.Line(2); ok {
		t.Error("Line(2) should fail")
	}
	if start, ok := file.LineStart(1); !ok || start != 2 {
		t.Errorf("LineStart(1) = (%d, %v), want (2, true)", start, ok)
	}
}

func TestFile_NewFileCopiesContent(t *testing.T) {
	t.Parallel()

	content := []byte("func a() {}")
	file := source.NewFile("t.swift", content)
	content[0] = 'X'

	if line, _ := file.Line(0); line != "func a() {}" {
		t.Errorf("file content changed with caller buffer: %q", line)
	}
}

func TestFile_Indentation(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("class A {\n\t  func b() {}\n}"))

	if got := file.Indentation(1); got != "\t  " {
		t.Errorf("Indentation(1) = %q", got)
	}
	if got := file.Indentation(0); got != "" {
		t.Errorf("Indentation(0) = %q", got)
	}
	if got := file.Indentation(9); got != "" {
		t.Errorf("Indentation(9) = %q", got)
	}
}

func TestFile_LineAt(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("line1\nline2\nline3"))

	tests := []struct {
		name         string
		offset       int
		expectedLine int
		expectedCol  int
	}{
		{"start of file", 0, 1, 1},
		{"newline of line 1", 5, 1, 6},
		{"start of line 2", 6, 2, 1},
		{"start of line 3", 12, 3, 1},
		{"end of file", 16, 3, 5},
		{"past end of file", 17, 3, 6},
		{"negative offset", -1, 0, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			line, col := file.LineAt(testCase.offset)
			if line != testCase.expectedLine || col != testCase.expectedCol {
				t.Errorf("LineAt(%d): expected (%d, %d), got (%d, %d)",
					testCase.offset, testCase.expectedLine, testCase.expectedCol, line, col)
			}
		})
	}
}

func TestFile_Offset(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("line1\nline2"))

	if off, ok := file.Offset(2, 3); !ok || off != 8 {
		t.Errorf("Offset(2, 3) = (%d, %v), want (8, true)", off, ok)
	}
	if _, ok := file.Offset(3, 1); ok {
		t.Error("Offset(3, 1) should fail")
	}
	if _, ok := file.Offset(1, 0); ok {
		t.Error("Offset(1, 0) should fail")
	}
}

func TestFile_Text(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("abcdef"))

	if got := file.Text(source.Range{Start: 1, End: 4}); got != "bcd" {
		t.Errorf("Text = %q", got)
	}
	if got := file.Text(source.Range{Start: 4, End: 40}); got != "" {
		t.Errorf("out of range Text = %q", got)
	}
}
