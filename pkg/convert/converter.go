// Package convert finds function declarations in Swift source and generates
// their counterparts: a completion-handler variant of a synchronous function
// or an async variant of a completion-handler function.
package convert

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/syncasync/pkg/fix"
	"github.com/yaklabco/syncasync/pkg/scan"
	"github.com/yaklabco/syncasync/pkg/source"
)

// Conversion is one generated counterpart.
type Conversion struct {
	Declaration *scan.Declaration `json:"declaration" yaml:"declaration"`
	Generated   string            `json:"generated" yaml:"generated"`
	Edit        fix.TextEdit      `json:"-" yaml:"-"`
}

// Result is the outcome of converting one file.
type Result struct {
	Path         string              `json:"path" yaml:"path"`
	Declarations []*scan.Declaration `json:"declarations" yaml:"declarations"`
	Conversions  []Conversion        `json:"conversions" yaml:"conversions"`
	Skips        []Skip              `json:"skips" yaml:"skips"`
}

// Edits returns the insertion edits of every conversion.
func (r *Result) Edits() []fix.TextEdit {
	edits := make([]fix.TextEdit, len(r.Conversions))
	for i, c := range r.Conversions {
		edits[i] = c.Edit
	}
	return edits
}

// Apply returns content with every conversion inserted.
func (r *Result) Apply(content []byte) ([]byte, error) {
	return fix.Apply(content, r.Edits())
}

// Converter drives the scanner and the generator over whole files.
type Converter struct {
	scanner   *scan.Scanner
	generator *Generator
	span      *source.LineSpan
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithScanner replaces the default scanner.
func WithScanner(s *scan.Scanner) ConverterOption {
	return func(c *Converter) { c.scanner = s }
}

// WithLineSpan restricts conversion to declarations starting in span.
func WithLineSpan(span source.LineSpan) ConverterOption {
	return func(c *Converter) { c.span = &span }
}

// NewConverter creates a Converter around gen.
func NewConverter(gen *Generator, opts ...ConverterOption) *Converter {
	c := &Converter{
		scanner:   scan.New(nil),
		generator: gen,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Find scans file without generating anything.
func (c *Converter) Find(file *source.File) *Result {
	found, skips := FindDeclarations(file, c.scanner, c.span)
	return &Result{Path: file.Path, Declarations: found, Skips: skips}
}

// Convert scans file and generates a counterpart for each declaration.
// Each counterpart is inserted after its declaration's closing brace,
// separated by a blank line. A declaration whose counterpart is already
// declared in file is skipped, so converting converted output is a no-op.
func (c *Converter) Convert(file *source.File) *Result {
	res := c.Find(file)

	declared := c.selectors(file, res.Declarations)
	builder := fix.NewEditBuilder()
	for _, decl := range res.Declarations {
		sel := c.generator.CounterpartSelector(decl)
		if sel != "" && declared[sel] {
			err := fmt.Errorf("%w: %s is already declared", ErrUnsupported, sel)
			res.Skips = append(res.Skips, newSkip(decl.StartLine, decl.Name, err))
			continue
		}

		indent := file.Indentation(decl.StartLine)
		text, err := c.generator.Generate(decl, indent)
		if err != nil {
			res.Skips = append(res.Skips, newSkip(decl.StartLine, decl.Name, err))
			continue
		}

		builder.Insert(decl.Range.End, "\n\n"+text)
		res.Conversions = append(res.Conversions, Conversion{
			Declaration: decl,
			Generated:   text,
			Edit:        builder.Edits[builder.Len()-1],
		})
		declared[sel] = true
	}

	slices.SortStableFunc(res.Skips, func(a, b Skip) int { return cmp.Compare(a.Line, b.Line) })
	return res
}

// selectors returns the Selector of every declaration in file. found covers
// the whole file unless a line span restricts it.
func (c *Converter) selectors(file *source.File, found []*scan.Declaration) map[string]bool {
	if c.span != nil {
		found, _ = FindDeclarations(file, c.scanner, nil)
	}
	set := make(map[string]bool, len(found))
	for _, decl := range found {
		set[Selector(decl)] = true
	}
	return set
}
