package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/syncasync/pkg/convert"
	"github.com/yaklabco/syncasync/pkg/reporter"
	"github.com/yaklabco/syncasync/pkg/runner"
)

const mathSource = "func add(a: Int, b: Int) -> Int {\n    return a + b\n}\n"

const generatedAdd = "func add(a: Int, b: Int, completion: @escaping (Int) -> Void) {\n" +
	"    DispatchQueue.global().async {\n" +
	"        completion(add(a: a, b: b))\n" +
	"    }\n" +
	"}"

// run converts files written under a fresh directory and returns the
// result with that directory.
func run(t *testing.T, files map[string]string) (*runner.Result, string) {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}

	pipeline := runner.NewPipeline(
		convert.NewGenerator(convert.DefaultOptions()),
		nil,
		runner.PipelineOptions{Action: runner.ActionConvert},
	)
	res, err := runner.New(pipeline).Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 1})
	require.NoError(t, err)
	return res, root
}

func report(t *testing.T, opts reporter.Options, res *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	n, err := rep.Report(context.Background(), res)
	require.NoError(t, err)
	return buf.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "yml", want: reporter.FormatYAML},
		{input: "diff", want: reporter.FormatDiff},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, got.IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	res, root := run(t, map[string]string{
		"Math.swift":   mathSource,
		"Broken.swift": "func broken(a: Int {\n}\n",
		"Empty.swift":  "import Foundation\n",
	})

	out, n := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true, WorkingDir: root}, res)
	assert.Equal(t, 1, n)

	assert.Contains(t, out, "Broken.swift (ok)\n  1  skipped  broken  line 1: match parameter list: unbalanced delimiter")
	assert.Contains(t, out, "Math.swift (changes pending)\n"+
		"  1-3  add  func add(a: Int, b: Int) -> Int\n"+
		"\n")
	assert.NotContains(t, out, "Empty.swift")
	assert.Less(t, strings.Index(out, "Broken.swift"), strings.Index(out, "Math.swift"))
	assert.True(t, strings.HasSuffix(out,
		"\n1 declaration in 3 files, 1 converted, 1 skipped, 1 file pending (use --write)\n"))
}

func TestTextReporter_ShowGenerated(t *testing.T) {
	t.Parallel()

	res, root := run(t, map[string]string{"Math.swift": mathSource})

	out, _ := report(t, reporter.Options{Format: reporter.FormatText, ShowGenerated: true, WorkingDir: root}, res)
	assert.Contains(t, out, "  1-3  add  func add(a: Int, b: Int) -> Int\n"+
		"    func add(a: Int, b: Int, completion: @escaping (Int) -> Void) {\n"+
		"        DispatchQueue.global().async {\n")
	assert.NotContains(t, out, "declaration in")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{ShowSummary: true}, &runner.Result{})
	assert.Zero(t, n)
	assert.Equal(t, "No files to scan.\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	res, root := run(t, map[string]string{"Math.swift": mathSource})

	out, n := report(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: root, Version: "1.2.3"}, res)
	assert.Equal(t, 1, n)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "1.2.3", doc.Version)
	require.Len(t, doc.Files, 1)

	file := doc.Files[0]
	assert.Equal(t, "Math.swift", file.Path)
	assert.Equal(t, "swift", file.Kind)
	assert.Equal(t, "changes pending", file.Status)
	require.Len(t, file.Declarations, 1)

	decl := file.Declarations[0]
	assert.Equal(t, "add", decl.Name)
	assert.Equal(t, 1, decl.StartLine)
	assert.Equal(t, 3, decl.EndLine)
	require.Len(t, decl.Parameters, 2)
	assert.Equal(t, "b", decl.Parameters[1].Name)
	assert.Equal(t, "Int", decl.Parameters[1].Type)

	require.Len(t, file.Conversions, 1)
	assert.Equal(t, generatedAdd, file.Conversions[0].Generated)

	assert.Equal(t, 1, doc.Summary.Conversions)
	assert.Equal(t, 1, doc.Summary.FilesPending)
}

func TestJSONReporter_FileError(t *testing.T) {
	t.Parallel()

	res := &runner.Result{
		Files: []runner.FileOutcome{{Path: "/x/Gone.swift", Error: runner.ErrFileNotFound}},
		Stats: runner.Stats{FilesErrored: 1},
	}

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, res)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "error", doc.Files[0].Status)
	assert.Equal(t, "file not found", doc.Files[0].Error)
	assert.Empty(t, doc.Files[0].Declarations)
}

func TestYAMLReporter(t *testing.T) {
	t.Parallel()

	res, root := run(t, map[string]string{"Math.swift": mathSource})

	out, n := report(t, reporter.Options{Format: reporter.FormatYAML, WorkingDir: root}, res)
	assert.Equal(t, 1, n)
	assert.Contains(t, out, "version: dev\n")
	assert.Contains(t, out, "start_line: 1\n")

	var doc reporter.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "func add(a: Int, b: Int) -> Int", doc.Files[0].Declarations[0].Signature)
	assert.Equal(t, generatedAdd, doc.Files[0].Conversions[0].Generated)
	assert.Equal(t, 1, doc.Summary.Declarations)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	res, root := run(t, map[string]string{
		"Math.swift":  mathSource,
		"Empty.swift": "import Foundation\n",
	})

	out, n := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true, WorkingDir: root}, res)
	assert.Equal(t, 1, n)

	want := "diff --git a/Math.swift b/Math.swift\n" +
		"--- a/Math.swift\n" +
		"+++ b/Math.swift\n" +
		"@@ -1,3 +1,9 @@\n" +
		" func add(a: Int, b: Int) -> Int {\n" +
		"     return a + b\n" +
		" }\n" +
		"+\n" +
		"+func add(a: Int, b: Int, completion: @escaping (Int) -> Void) {\n" +
		"+    DispatchQueue.global().async {\n" +
		"+        completion(add(a: a, b: b))\n" +
		"+    }\n" +
		"+}\n" +
		"\n" +
		"1 file changed, 6 insertions(+), 1 declaration converted\n"
	assert.Equal(t, want, out)
}
