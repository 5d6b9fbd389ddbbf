package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/syncasync/pkg/runner"
)

// yamlIndent matches the indentation of generated config files.
const yamlIndent = 2

// encodeFunc writes one Document to w.
type encodeFunc func(w io.Writer, doc *Document) error

// StructuredReporter writes the whole run as one machine-readable Document.
type StructuredReporter struct {
	opts   Options
	name   string
	encode encodeFunc
}

// NewJSONReporter returns a reporter emitting JSON, indented unless
// Options.Compact is set.
func NewJSONReporter(opts Options) *StructuredReporter {
	return &StructuredReporter{opts: opts, name: "JSON", encode: func(w io.Writer, doc *Document) error {
		enc := json.NewEncoder(w)
		if !opts.Compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(doc)
	}}
}

// NewYAMLReporter returns a reporter emitting a single YAML document.
func NewYAMLReporter(opts Options) *StructuredReporter {
	return &StructuredReporter{opts: opts, name: "YAML", encode: func(w io.Writer, doc *Document) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}}
}

// Report implements Reporter. The count is the number of declarations found.
func (r *StructuredReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	doc := BuildDocument(result, r.opts)

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	if err := r.encode(bw, doc); err != nil {
		return 0, fmt.Errorf("encode %s: %w", r.name, err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("write %s: %w", r.name, err)
	}
	return doc.Summary.Declarations, nil
}
