package convert

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/syncasync/pkg/scan"
	"github.com/yaklabco/syncasync/pkg/source"
)

var (
	// ErrNoBody marks a declaration whose braces belong to something else,
	// as with protocol requirements.
	ErrNoBody = errors.New("declaration has no body")

	declLine = regexp.MustCompile(`\bfunc\s+([^\s(<]+)`)

	// foreignDecl finds another declaration between ')' and '{'.
	foreignDecl = regexp.MustCompile(`\b(func|var|let|init|subscript|typealias|associatedtype)\b`)
)

// Skip records a declaration line that produced no result.
type Skip struct {
	// Line is the 0-based start line.
	Line   int    `json:"line" yaml:"line"`
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

func newSkip(line int, name string, err error) Skip {
	return Skip{Line: line, Name: name, Reason: err.Error(), Err: err}
}

// DeclarationName returns the function name declared on line, or "" when
// line does not start a function declaration.
func DeclarationName(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
		return ""
	}
	m := declLine.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// FindDeclarations scans every function declaration of file whose start
// line lies in span, or in the whole file when span is nil. Scanning
// resumes after each declaration's last line, so nested functions are part
// of their parent. Lines that fail to scan are returned as skips.
func FindDeclarations(file *source.File, scanner *scan.Scanner, span *source.LineSpan) ([]*scan.Declaration, []Skip) {
	var (
		found []*scan.Declaration
		skips []Skip
	)

	line := 0
	if span != nil {
		line = max(span.Start, 0)
	}

	for line < file.LineCount() {
		if span != nil && line > span.End {
			break
		}

		text, _ := file.Line(line)
		name := DeclarationName(text)
		if name == "" {
			line++
			continue
		}

		decl, err := scanner.Scan(file, line)
		if err != nil {
			skips = append(skips, newSkip(line, name, err))
			line++
			continue
		}

		if !splitsAtName(decl, name) {
			err := fmt.Errorf("%w: name %q split as %q", ErrUnsupported, name, decl.Name)
			skips = append(skips, newSkip(line, name, err))
			line = decl.EndLine + 1
			continue
		}

		if err := checkBody(decl); err != nil {
			skips = append(skips, newSkip(line, name, err))
			line++
			continue
		}

		found = append(found, decl)
		line = decl.EndLine + 1
	}

	return found, skips
}

// splitsAtName reports whether the scanner's name is the declared name,
// possibly followed by its generic clause. A generic clause containing
// whitespace, as in "load<T: Decodable>", moves the split into the clause.
func splitsAtName(decl *scan.Declaration, name string) bool {
	return decl.Name == name || strings.HasPrefix(decl.Name, name+"<")
}

// checkBody rejects declarations whose matched braces start after the end
// of their own signature.
func checkBody(decl *scan.Declaration) error {
	if strings.Contains(decl.PostAttributes, "}") {
		return fmt.Errorf("%w: closing brace before body", ErrNoBody)
	}
	if m := foreignDecl.FindString(decl.PostAttributes); m != "" {
		return fmt.Errorf("%w: %q before body", ErrNoBody, m)
	}
	return nil
}
