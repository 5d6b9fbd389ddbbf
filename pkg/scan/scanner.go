// Package scan extracts the structure of a single Swift function declaration
// from raw source text: attributes, name, parameters, trailing attributes,
// body, and the line on which the declaration ends.
//
// The scanner balances delimiters by counting only. Comments and string
// literals that contain '(' ')' '{' or '}' are not recognised.
package scan

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/syncasync/pkg/source"
	"github.com/yaklabco/syncasync/pkg/swiftparam"
)

// ParamParser decomposes the text between a declaration's parentheses.
type ParamParser interface {
	Parse(text string) ([]swiftparam.Parameter, error)
}

// ParamParserFunc adapts a function to ParamParser.
type ParamParserFunc func(text string) ([]swiftparam.Parameter, error)

// Parse calls f(text).
func (f ParamParserFunc) Parse(text string) ([]swiftparam.Parameter, error) {
	return f(text)
}

// Declaration is the structure of one scanned function declaration.
type Declaration struct {
	// Attributes is the trimmed modifier text before the declaration
	// keyword ("public static", "@objc override").
	Attributes string `json:"attributes" yaml:"attributes"`

	// Keyword is the declaration keyword that preceded the name, "func" for
	// functions, or "" when the prefix ended in something else.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Name is the declaration name, including any generic parameter clause.
	Name string `json:"name" yaml:"name"`

	Parameters []swiftparam.Parameter `json:"parameters" yaml:"parameters"`

	// ParamsText is the raw text between the parentheses.
	ParamsText string `json:"paramsText" yaml:"params_text"`

	// PostAttributes is the verbatim text between ')' and '{'.
	PostAttributes string `json:"postAttributes" yaml:"post_attributes"`

	// Body is the body text including its braces.
	Body string `json:"body" yaml:"body"`

	// StartLine and EndLine are 0-based line indices.
	StartLine int `json:"startLine" yaml:"start_line"`
	EndLine   int `json:"endLine" yaml:"end_line"`

	// Range covers the name through the closing brace.
	Range source.Range `json:"-" yaml:"-"`

	// ParamsRange covers the parentheses and everything between them.
	ParamsRange source.Range `json:"-" yaml:"-"`

	// BodyRange covers the braces and everything between them.
	BodyRange source.Range `json:"-" yaml:"-"`
}

// Signature renders the declaration without its body.
func (d *Declaration) Signature() string {
	var builder strings.Builder
	for _, part := range []string{d.Attributes, d.Keyword} {
		if part != "" {
			builder.WriteString(part)
			builder.WriteByte(' ')
		}
	}
	builder.WriteString(d.Name)
	builder.WriteByte('(')
	builder.WriteString(d.ParamsText)
	builder.WriteByte(')')
	builder.WriteString(strings.TrimRight(d.PostAttributes, " \t\r\n"))
	return builder.String()
}

// Lines returns the 0-based line span of the declaration.
func (d *Declaration) Lines() source.LineSpan {
	return source.LineSpan{Start: d.StartLine, End: d.EndLine}
}

// Scanner scans declarations. It holds no per-call state and may be used
// from several goroutines at once.
type Scanner struct {
	params ParamParser
}

// New returns a Scanner that decomposes parameter lists with parser.
// A nil parser selects swiftparam.NewParser.
func New(parser ParamParser) *Scanner {
	if parser == nil {
		parser = swiftparam.NewParser()
	}
	return &Scanner{params: parser}
}

// ScanSource scans the declaration starting at startLine of content with the
// default parameter parser.
func ScanSource(content []byte, startLine int) (*Declaration, error) {
	return New(nil).Scan(source.NewFile("", content), startLine)
}

// Scan extracts the declaration that begins on the 0-based startLine of file.
//
// The start line must contain the opening parenthesis of the parameter list.
// The parameter list and the body are matched against the whole remaining
// buffer, so both may span several lines.
func (s *Scanner) Scan(file *source.File, startLine int) (*Declaration, error) {
	line, ok := file.Line(startLine)
	if !ok {
		return nil, &Error{
			Line: startLine,
			Op:   "read start line",
			Err:  fmt.Errorf("%w: %d not in [0, %d)", ErrLineOutOfRange, startLine, file.LineCount()),
		}
	}

	paren := strings.IndexByte(line, '(')
	if paren < 0 {
		return nil, &Error{
			Line: startLine,
			Op:   "find parameter list",
			Err:  fmt.Errorf("%w: no '(' on start line", ErrDelimiterNotFound),
		}
	}

	prefix := line[:paren]
	attrs, name, err := SplitName(prefix)
	if err != nil {
		return nil, &Error{Line: startLine, Op: "split name", Err: fmt.Errorf("%w: %q", err, prefix)}
	}

	attrs, keyword := cutKeyword(attrs)
	lineStart := file.Lines[startLine].StartOffset

	paramSpan, err := MatchInner(file.Content, lineStart+paren, '(', ')')
	if err != nil {
		return nil, &Error{Line: startLine, Op: "match parameter list", Err: err}
	}

	params, err := s.params.Parse(paramSpan.Text)
	if err != nil {
		return nil, &Error{Line: startLine, Op: "parse parameters", Err: err}
	}

	bodySpan, err := MatchOuter(file.Content, paramSpan.Upper+1, '{', '}')
	if err != nil {
		return nil, &Error{Line: startLine, Op: "match body", Err: err}
	}

	post := string(file.Content[paramSpan.Upper+1 : bodySpan.Lower])

	newlines := countNewlines(attrs) +
		countNewlines(name) +
		countNewlines(paramSpan.Text) +
		countNewlines(post) +
		countNewlines(bodySpan.Text)

	return &Declaration{
		Attributes:     attrs,
		Keyword:        keyword,
		Name:           name,
		Parameters:     params,
		ParamsText:     paramSpan.Text,
		PostAttributes: post,
		Body:           bodySpan.Text,
		StartLine:      startLine,
		EndLine:        startLine + newlines,
		Range:          source.Range{Start: lineStart + len(prefix) - len(name), End: bodySpan.Upper + 1},
		ParamsRange:    source.Range{Start: paramSpan.Lower, End: paramSpan.Upper + 1},
		BodyRange:      source.Range{Start: bodySpan.Lower, End: bodySpan.Upper + 1},
	}, nil
}

// declKeyword is the keyword separated from the modifiers.
const declKeyword = "func"

// cutKeyword removes a trailing declaration keyword from attrs.
func cutKeyword(attrs string) (string, string) {
	idx := strings.LastIndexFunc(attrs, unicode.IsSpace)
	if attrs[idx+1:] != declKeyword {
		return attrs, ""
	}
	return strings.TrimSpace(attrs[:idx+1]), declKeyword
}

func countNewlines(text string) int {
	return strings.Count(text, "\n")
}
