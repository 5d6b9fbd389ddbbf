package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/syncasync/internal/ui/pretty"
	"github.com/yaklabco/syncasync/pkg/convert"
	"github.com/yaklabco/syncasync/pkg/runner"
	"github.com/yaklabco/syncasync/pkg/scan"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "non-file writers are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestFormatDeclaration(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	decl := &scan.Declaration{
		Attributes:     "public",
		Keyword:        "func",
		Name:           "map<T>",
		ParamsText:     "_ f: (Int) -> T",
		PostAttributes: " -> [T] ",
		StartLine:      4,
		EndLine:        6,
	}

	got := styles.FormatDeclaration(decl)
	assert.Equal(t, "  5-7  map  public func map<T>(_ f: (Int) -> T) -> [T]\n", got)

	decl.EndLine = 4
	assert.Contains(t, styles.FormatDeclaration(decl), "  5  map  ")
}

func TestFormatSkip(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatSkip(convert.Skip{Line: 7, Name: "clear", Reason: "inout parameter"})
	assert.Equal(t, "  8  skipped  clear  inout parameter\n", got)
}

func TestFormatGenerated(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatGenerated("func a() {\n}")
	assert.Equal(t, "    func a() {\n    }\n", got)
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No declarations found (1 file checked)\n",
		},
		{
			name: "pending conversions",
			stats: runner.Stats{
				FilesProcessed: 3,
				FilesPending:   2,
				Declarations:   5,
				Conversions:    4,
				Skips:          1,
			},
			want: "5 declarations in 3 files, 4 converted, 1 skipped, 2 files pending (use --write)\n",
		},
		{
			name: "written with failure",
			stats: runner.Stats{
				FilesProcessed: 1,
				FilesModified:  1,
				FilesErrored:   1,
				Declarations:   1,
				Conversions:    1,
			},
			want: "1 declaration in 1 file, 1 converted, 1 file written, 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatSummary(runner.Stats{
		FilesProcessed: 2,
		FilesModified:  1,
		Declarations:   3,
		Conversions:    3,
	})

	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "  Files checked:     2\n")
	assert.Contains(t, got, "  Files written:     1\n")
	assert.Contains(t, got, "  Converted:         3\n")
	assert.NotContains(t, got, "Files pending")
	assert.NotContains(t, got, "Skipped")
}
