// Package reporter writes runner results as styled text, JSON, YAML or
// unified diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/syncasync/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for result. It returns the number of
	// items reported: declarations for text, JSON and YAML, changed files
	// for diff.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	def := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = def.Writer
	}
	if opts.Version == "" {
		opts.Version = def.Version
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatYAML:
		return NewYAMLReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
