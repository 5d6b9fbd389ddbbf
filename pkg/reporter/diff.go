package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/syncasync/internal/ui/pretty"
	"github.com/yaklabco/syncasync/pkg/fix"
	"github.com/yaklabco/syncasync/pkg/runner"
)

// DiffReporter prints the generated counterparts of each file as a
// git-style unified diff. Files without conversions print nothing.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

type diffTotals struct {
	files, additions, deletions, conversions int
}

// Report implements Reporter. The count is the number of files with a diff.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var totals diffTotals
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		totals.files++
		totals.additions += diff.Additions
		totals.deletions += diff.Deletions
		if file.Result.Result != nil {
			totals.conversions += len(file.Result.Conversions)
		}
		r.writeDiff(diff)
	}

	if totals.files > 0 && r.opts.ShowSummary {
		r.writeSummary(totals)
	}
	return totals.files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := displayPath(diff.Path, r.opts.WorkingDir)

	r.println(r.styles.DiffHeader, fmt.Sprintf("diff --git a/%s b/%s", path, path))
	r.println(r.styles.DiffRemove, "--- a/"+path)
	r.println(r.styles.DiffAdd, "+++ b/"+path)

	for _, hunk := range diff.Hunks {
		r.println(r.styles.DiffHunk, hunk.Header())
		for _, line := range hunk.Lines {
			style := r.styles.DiffContext
			switch line.Kind {
			case fix.LineAdded:
				style = r.styles.DiffAdd
			case fix.LineRemoved:
				style = r.styles.DiffRemove
			case fix.LineContext:
			}
			r.println(style, line.String())
		}
	}
	fmt.Fprintln(r.out)
}

func (r *DiffReporter) println(style lipgloss.Style, text string) {
	fmt.Fprintln(r.out, style.Render(text))
}

func (r *DiffReporter) writeSummary(t diffTotals) {
	parts := []string{counted(t.files, "file") + " changed"}
	if t.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(counted(t.additions, "insertion")+"(+)"))
	}
	if t.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(counted(t.deletions, "deletion")+"(-)"))
	}
	if t.conversions > 0 {
		parts = append(parts, counted(t.conversions, "declaration")+" converted")
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

// counted renders "1 file" or "3 files".
func counted(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
