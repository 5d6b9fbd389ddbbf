package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/syncasync/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 declarations in 3 files, 4 converted, 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Declarations == 0 && stats.Skips == 0 {
		return s.Success.Render("No declarations found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))) +
			"\n"
	}

	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.Declarations, plural(stats.Declarations, "declaration", "declarations"),
		stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"),
	)}

	if stats.Conversions > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d converted", stats.Conversions)))
	}
	if stats.Skips > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.Skips)))
	}
	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s written",
			stats.FilesModified, plural(stats.FilesModified, "file", "files"))))
	}
	if stats.FilesPending > 0 {
		parts = append(parts, s.Pending.Render(fmt.Sprintf("%d %s pending (use --write)",
			stats.FilesPending, plural(stats.FilesPending, "file", "files"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesModified > 0 {
		row("Files written", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesPending > 0 {
		row("Files pending", s.Pending.Render, stats.FilesPending)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Error.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")
	row("Declarations", s.SummaryValue.Render, stats.Declarations)
	if stats.Conversions > 0 {
		row("Converted", s.Success.Render, stats.Conversions)
	}
	if stats.Skips > 0 {
		row("Skipped", s.Warning.Render, stats.Skips)
	}

	return builder.String()
}
