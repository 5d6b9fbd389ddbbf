package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/syncasync/internal/ui/pretty"
	"github.com/yaklabco/syncasync/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Files without declarations, skips or errors
// are omitted.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to scan."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	fr := file.Result
	if fr == nil || fr.Result == nil || (len(fr.Declarations) == 0 && len(fr.Skips) == 0) {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, fr.Summary()))

	generated := make(map[int]string, len(fr.Conversions))
	for _, conv := range fr.Conversions {
		generated[conv.Declaration.StartLine] = conv.Generated
	}

	// Declarations and skips are both ordered by line; merge them.
	skips := fr.Skips
	for _, decl := range fr.Declarations {
		for len(skips) > 0 && skips[0].Line < decl.StartLine {
			fmt.Fprint(r.bw, r.styles.FormatSkip(skips[0]))
			skips = skips[1:]
		}
		fmt.Fprint(r.bw, r.styles.FormatDeclaration(decl))
		if code, ok := generated[decl.StartLine]; ok && r.opts.ShowGenerated {
			fmt.Fprint(r.bw, r.styles.FormatGenerated(code))
		}
	}
	for _, skip := range skips {
		fmt.Fprint(r.bw, r.styles.FormatSkip(skip))
	}

	fmt.Fprintln(r.bw)
	return len(fr.Declarations)
}
