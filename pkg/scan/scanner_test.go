package scan_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syncasync/pkg/scan"
	"github.com/yaklabco/syncasync/pkg/source"
	"github.com/yaklabco/syncasync/pkg/swiftparam"
)

func TestScan_SimpleFunction(t *testing.T) {
	t.Parallel()

	decl, err := scan.ScanSource([]byte("func foo(x: Int) -> Int {\n  return x\n}\n"), 0)
	require.NoError(t, err)

	assert.Empty(t, decl.Attributes)
	assert.Equal(t, "func", decl.Keyword)
	assert.Equal(t, "foo", decl.Name)
	assert.Equal(t, []swiftparam.Parameter{{Name: "x", Type: "Int"}}, decl.Parameters)
	assert.Equal(t, "x: Int", decl.ParamsText)
	assert.Equal(t, " -> Int ", decl.PostAttributes)
	assert.Equal(t, "{\n  return x\n}", decl.Body)
	assert.Equal(t, 0, decl.StartLine)
	assert.Equal(t, 2, decl.EndLine)
}

func TestScan_Attributes(t *testing.T) {
	t.Parallel()

	decl, err := scan.ScanSource([]byte("public static func bar() {\n}\n"), 0)
	require.NoError(t, err)

	assert.Equal(t, "public static", decl.Attributes)
	assert.Equal(t, "bar", decl.Name)
	assert.Empty(t, decl.Parameters)
	assert.Equal(t, 1, decl.EndLine)
	assert.Equal(t, "public static func bar()", decl.Signature())
}

func TestScan_EmbeddedDeclaration(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"import Foundation",
		"",
		"final class Loader {",
		"    @discardableResult",
		"    @objc private func load(",
		"        url: URL,",
		"        retries: Int = max(1, (2 + 3))",
		"    ) throws -> Data where Data: Sendable {",
		"        if retries > 0 {",
		"            return try fetch(url)",
		"        }",
		"        return Data()",
		"    }",
		"}",
		"",
	}, "\n")
	file := source.NewFile("Loader.swift", []byte(content))

	decl, err := scan.New(nil).Scan(file, 4)
	require.NoError(t, err)

	assert.Equal(t, "@objc private", decl.Attributes)
	assert.Equal(t, "load", decl.Name)
	require.Len(t, decl.Parameters, 2)
	assert.Equal(t, "max(1, (2 + 3))", decl.Parameters[1].Default)
	assert.Equal(t, " throws -> Data where Data: Sendable ", decl.PostAttributes)
	assert.Equal(t, 4, decl.StartLine)
	assert.Equal(t, 12, decl.EndLine)

	// The declaration ends on the line holding the closing brace.
	line, col := file.LineAt(decl.BodyRange.End - 1)
	assert.Equal(t, decl.EndLine+1, line)
	assert.Equal(t, 5, col)
}

func TestScan_Reconstruction(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		content string
		line    int
	}{
		{"func foo(x: Int) -> Int {\n  return x\n}\n", 0},
		{"// header\n\n  public func a(\n  _ x: Int,\n  y: (Int) -> Void\n  )\n  async throws\n  {\n  body { nested }\n  }\n", 2},
		{"func g<T>(a: T, b: T) -> Bool { a == b }", 0},
	}

	for _, input := range inputs {
		file := source.NewFile("t.swift", []byte(input.content))
		decl, err := scan.New(nil).Scan(file, input.line)
		require.NoError(t, err, input.content)

		rebuilt := decl.Name + "(" + decl.ParamsText + ")" + decl.PostAttributes + decl.Body
		assert.Equal(t, file.Text(decl.Range), rebuilt)

		lineText, _ := file.Line(input.line)
		prefixEnd := strings.Index(lineText, decl.Name+"(")
		require.GreaterOrEqual(t, prefixEnd, 0)
		assert.Equal(t, strings.TrimSpace(lineText[:prefixEnd]), strings.TrimSpace(decl.Attributes+" "+decl.Keyword))

		assert.Equal(t, input.line+strings.Count(rebuilt, "\n"), decl.EndLine)
		assert.GreaterOrEqual(t, decl.EndLine, decl.StartLine)
	}
}

func TestScan_NestedDefaultValue(t *testing.T) {
	t.Parallel()

	decl, err := scan.ScanSource([]byte("func f(x: Int = (1 + 2)) {}"), 0)
	require.NoError(t, err)

	assert.Equal(t, "x: Int = (1 + 2)", decl.ParamsText)
	assert.Equal(t, " ", decl.PostAttributes)
	assert.Equal(t, "{}", decl.Body)
}

func TestScan_ComparisonDefaultValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		def    string
	}{
		{"func f(flag: Bool = 1 < 2) {}", "1 < 2"},
		{"func f(flag: Bool = a > b) {}", "a > b"},
		{"func f(x: Int = a >= b ? 1 : 2) {}", "a >= b ? 1 : 2"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			decl, err := scan.ScanSource([]byte(tt.source), 0)
			require.NoError(t, err)
			require.Len(t, decl.Parameters, 1)
			assert.Equal(t, tt.def, decl.Parameters[0].Default)
		})
	}
}

func TestScan_MultiLineDelta(t *testing.T) {
	t.Parallel()

	flat, err := scan.ScanSource([]byte("func f(a: Int, b: Int) -> Int { a + b }"), 0)
	require.NoError(t, err)

	tall, err := scan.ScanSource([]byte("func f(a: Int,\n b: Int\n) -> Int\n{\n a + b\n}"), 0)
	require.NoError(t, err)

	assert.Equal(t, flat.EndLine+5, tall.EndLine)
	assert.Equal(t, flat.Parameters, tall.Parameters)
}

func TestScan_Idempotent(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("struct S {\n  mutating func m(_ v: inout [Int]) {\n    v.append(1)\n  }\n}\n"))
	scanner := scan.New(nil)

	first, err := scanner.Scan(file, 1)
	require.NoError(t, err)
	second, err := scanner.Scan(file, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScan_ConcurrentReadOnlySharing(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.swift", []byte("func a() {}\nfunc b(x: Int) {\n}\nfunc c() { { } }\n"))
	scanner := scan.New(nil)

	want := make([]*scan.Declaration, 3)
	for i := range want {
		decl, err := scanner.Scan(file, []int{0, 1, 3}[i])
		require.NoError(t, err)
		want[i] = decl
	}

	var wg sync.WaitGroup
	results := make([][]*scan.Declaration, 8)
	for worker := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, line := range []int{0, 1, 3} {
				decl, err := scanner.Scan(file, line)
				if err == nil {
					results[worker] = append(results[worker], decl)
				}
			}
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestScan_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		line    int
		kind    error
	}{
		{"no parenthesis on start line", "var x = 1\n", 0, scan.ErrDelimiterNotFound},
		{"parenthesis only on later line", "func f\n(x: Int) {}", 0, scan.ErrDelimiterNotFound},
		{"truncated body", "func f() {\n  if x {\n  }\n", 0, scan.ErrUnbalancedDelimiter},
		{"truncated parameter list", "func f(x: Int", 0, scan.ErrUnbalancedDelimiter},
		{"no body", "func f()\n", 0, scan.ErrDelimiterNotFound},
		{"no whitespace before name", "init(x: Int) {}", 0, scan.ErrNoWhitespace},
		{"line out of range", "func f() {}", 3, scan.ErrLineOutOfRange},
		{"negative line", "func f() {}", -1, scan.ErrLineOutOfRange},
		{"bad parameters", "func f(x Int) {}", 0, swiftparam.ErrMissingType},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			decl, err := scan.ScanSource([]byte(testCase.content), testCase.line)
			require.Error(t, err)
			assert.Nil(t, decl)
			assert.ErrorIs(t, err, testCase.kind)
			assert.ErrorIs(t, err, scan.ErrMalformedDeclaration)

			var scanErr *scan.Error
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, testCase.line, scanErr.Line)
		})
	}
}

func TestScan_CustomParamParser(t *testing.T) {
	t.Parallel()

	var seen []string
	parser := scan.ParamParserFunc(func(text string) ([]swiftparam.Parameter, error) {
		seen = append(seen, text)
		return []swiftparam.Parameter{{Name: "b"}, {Name: "a"}}, nil
	})

	decl, err := scan.New(parser).Scan(source.NewFile("", []byte("func f(anything goes) {}")), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"anything goes"}, seen)
	assert.Equal(t, []swiftparam.Parameter{{Name: "b"}, {Name: "a"}}, decl.Parameters)
}

func TestScan_ParamParserFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	parser := scan.ParamParserFunc(func(string) ([]swiftparam.Parameter, error) {
		return nil, boom
	})

	_, err := scan.New(parser).Scan(source.NewFile("", []byte("func f() {}")), 0)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, scan.ErrMalformedDeclaration)
	assert.Contains(t, err.Error(), "line 1: parse parameters")
}
