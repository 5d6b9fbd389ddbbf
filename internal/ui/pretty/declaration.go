package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/syncasync/pkg/convert"
	"github.com/yaklabco/syncasync/pkg/scan"
)

// FormatFileHeader formats a file header followed by a short status.
func (s *Styles) FormatFileHeader(path, status string) string {
	header := s.FilePath.Render(path)
	if status != "" {
		header += s.Dim.Render(" (" + status + ")")
	}
	return header
}

// FormatDeclaration formats one declaration as "  line-end  name  signature".
// Lines are printed 1-based.
func (s *Styles) FormatDeclaration(decl *scan.Declaration) string {
	location := fmt.Sprintf("%d", decl.StartLine+1)
	if decl.EndLine != decl.StartLine {
		location = fmt.Sprintf("%d-%d", decl.StartLine+1, decl.EndLine+1)
	}

	return fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(location),
		s.Name.Render(baseName(decl.Name)),
		s.Signature.Render(decl.Signature()),
	)
}

// FormatSkip formats a declaration line that was not handled.
func (s *Styles) FormatSkip(skip convert.Skip) string {
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		s.Location.Render(fmt.Sprintf("%d", skip.Line+1)),
		s.Warning.Render("skipped"),
		s.Name.Render(skip.Name),
		s.Reason.Render(skip.Reason),
	)
}

// FormatGenerated indents generated code under its declaration.
func (s *Styles) FormatGenerated(code string) string {
	var builder strings.Builder
	for line := range strings.SplitSeq(code, "\n") {
		builder.WriteString("    ")
		builder.WriteString(s.Generated.Render(line))
		builder.WriteByte('\n')
	}
	return builder.String()
}

func baseName(name string) string {
	if i := strings.IndexByte(name, '<'); i > 0 {
		return name[:i]
	}
	return name
}
