package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syncasync/pkg/convert"
	"github.com/yaklabco/syncasync/pkg/scan"
	"github.com/yaklabco/syncasync/pkg/source"
)

const storeSource = `import Foundation

final class Store {
    func count() -> Int {
        return items.count
    }

    func clear(keep: inout [Item]) {
    }
}
`

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	file := source.NewFile("Store.swift", []byte(storeSource))
	res := convert.NewConverter(convert.NewGenerator(convert.DefaultOptions())).Convert(file)

	assert.Equal(t, "Store.swift", res.Path)
	require.Len(t, res.Declarations, 2)
	require.Len(t, res.Conversions, 1)
	require.Len(t, res.Skips, 1)

	assert.Equal(t, "clear", res.Skips[0].Name)
	assert.Equal(t, 7, res.Skips[0].Line)
	assert.ErrorIs(t, res.Skips[0].Err, convert.ErrUnsupported)

	out, err := res.Apply(file.Content)
	require.NoError(t, err)

	want := `import Foundation

final class Store {
    func count() -> Int {
        return items.count
    }

    func count(completion: @escaping (Int) -> Void) {
        DispatchQueue.global().async {
            completion(self.count())
        }
    }

    func clear(keep: inout [Item]) {
    }
}
`
	assert.Equal(t, want, string(out))
}

func TestConverter_ConvertedOutputRescans(t *testing.T) {
	t.Parallel()

	file := source.NewFile("", []byte("func ping() {\n}\n"))
	res := convert.NewConverter(convert.NewGenerator(convert.DefaultOptions())).Convert(file)
	require.Len(t, res.Conversions, 1)

	out, err := res.Apply(file.Content)
	require.NoError(t, err)

	found, skips := convert.FindDeclarations(source.NewFile("", out), scan.New(nil), nil)
	assert.Empty(t, skips)
	require.Len(t, found, 2)
	assert.Equal(t, "ping", found[1].Name)
	assert.Equal(t, "completion: @escaping () -> Void", found[1].ParamsText)
}

func TestConverter_ConvertIsIdempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts convert.Options
		src  string
	}{
		{
			name: "completion",
			opts: convert.DefaultOptions(),
			src:  "func sum(a: Int, b: Int) -> Int {\n    return a + b\n}\n",
		},
		{
			name: "completion member with suffix",
			opts: convert.Options{Mode: convert.ModeCompletion, NameSuffix: "Later"},
			src:  "struct Math {\n    func sum(_ a: Int, _ b: Int) -> Int {\n        a + b\n    }\n}\n",
		},
		{
			name: "async",
			opts: convert.Options{Mode: convert.ModeAsync},
			src:  "func fetch(id: Int, completion: @escaping (String) -> Void) {\n    completion(\"\")\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := convert.NewConverter(convert.NewGenerator(tt.opts))
			first := conv.Convert(source.NewFile("", []byte(tt.src)))
			require.Len(t, first.Conversions, 1)

			out, err := first.Apply([]byte(tt.src))
			require.NoError(t, err)

			second := conv.Convert(source.NewFile("", out))
			assert.Empty(t, second.Conversions)
			require.NotEmpty(t, second.Skips)
			for _, skip := range second.Skips {
				assert.ErrorIs(t, skip.Err, convert.ErrUnsupported)
			}
		})
	}
}

func TestConverter_ExistingCounterpart(t *testing.T) {
	t.Parallel()

	src := "func load(id: Int) -> Data {\n}\n\n" +
		"func load(id: Int, completion: @escaping (Data) -> Void) {\n}\n\n" +
		"func save(id: Int) {\n}\n"
	file := source.NewFile("", []byte(src))

	res := convert.NewConverter(convert.NewGenerator(convert.DefaultOptions())).Convert(file)
	require.Len(t, res.Conversions, 1)
	assert.Equal(t, "save", res.Conversions[0].Declaration.Name)

	require.Len(t, res.Skips, 2)
	assert.Equal(t, 0, res.Skips[0].Line)
	assert.ErrorContains(t, res.Skips[0].Err, "load(id:completion:) is already declared")
	assert.Equal(t, 3, res.Skips[1].Line)
	assert.ErrorContains(t, res.Skips[1].Err, "already takes a \"completion\" handler")
}

func TestConverter_LineSpanSeesWholeFile(t *testing.T) {
	t.Parallel()

	src := "func ping() {\n}\n\nfunc ping(completion: @escaping () -> Void) {\n}\n"
	file := source.NewFile("", []byte(src))

	conv := convert.NewConverter(
		convert.NewGenerator(convert.DefaultOptions()),
		convert.WithLineSpan(source.LineSpan{Start: 0, End: 0}),
	)
	res := conv.Convert(file)
	assert.Empty(t, res.Conversions)
	require.Len(t, res.Skips, 1)
	assert.ErrorIs(t, res.Skips[0].Err, convert.ErrUnsupported)
}

func TestConverter_LineSpan(t *testing.T) {
	t.Parallel()

	src := "func a() {}\nfunc b() {}\nfunc c() {}\n"
	file := source.NewFile("", []byte(src))

	conv := convert.NewConverter(
		convert.NewGenerator(convert.DefaultOptions()),
		convert.WithLineSpan(source.LineSpan{Start: 1, End: 1}),
		convert.WithScanner(scan.New(nil)),
	)

	res := conv.Convert(file)
	require.Len(t, res.Conversions, 1)
	assert.Equal(t, "b", res.Conversions[0].Declaration.Name)
	assert.Equal(t, 23, res.Conversions[0].Edit.StartOffset)
	assert.True(t, res.Conversions[0].Edit.IsInsertion())
}

func TestConverter_Find(t *testing.T) {
	t.Parallel()

	file := source.NewFile("", []byte(protocolSource))
	res := convert.NewConverter(convert.NewGenerator(convert.Options{})).Find(file)

	assert.Len(t, res.Declarations, 2)
	assert.Len(t, res.Skips, 2)
	assert.Empty(t, res.Conversions)
	assert.Empty(t, res.Edits())
}
