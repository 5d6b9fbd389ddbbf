package swiftparam_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syncasync/pkg/swiftparam"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected []swiftparam.Parameter
	}{
		{
			name:     "empty",
			text:     "",
			expected: []swiftparam.Parameter{},
		},
		{
			name:     "whitespace only",
			text:     " \n\t",
			expected: []swiftparam.Parameter{},
		},
		{
			name: "single",
			text: "x: Int",
			expected: []swiftparam.Parameter{
				{Name: "x", Type: "Int"},
			},
		},
		{
			name: "label and unlabeled",
			text: "_ value: String, with other: Double",
			expected: []swiftparam.Parameter{
				{Label: "_", Name: "value", Type: "String"},
				{Label: "with", Name: "other", Type: "Double"},
			},
		},
		{
			name: "nested default value",
			text: "x: Int = (1 + 2)",
			expected: []swiftparam.Parameter{
				{Name: "x", Type: "Int", Default: "(1 + 2)"},
			},
		},
		{
			name: "generic and dictionary types keep their commas",
			text: "map: [String: Int], pair: Dictionary<String, Int>",
			expected: []swiftparam.Parameter{
				{Name: "map", Type: "[String: Int]"},
				{Name: "pair", Type: "Dictionary<String, Int>"},
			},
		},
		{
			name: "escaping closure",
			text: "completion: @escaping (Result<Data, Error>) -> Void",
			expected: []swiftparam.Parameter{
				{
					Name:       "completion",
					Type:       "(Result<Data, Error>) -> Void",
					Attributes: []string{"@escaping"},
				},
			},
		},
		{
			name: "attribute with arguments",
			text: "f: @convention(c) (Int) -> Int",
			expected: []swiftparam.Parameter{
				{Name: "f", Type: "(Int) -> Int", Attributes: []string{"@convention(c)"}},
			},
		},
		{
			name: "inout and variadic",
			text: "buffer: inout [UInt8], values: Int...",
			expected: []swiftparam.Parameter{
				{Name: "buffer", Type: "[UInt8]", InOut: true},
				{Name: "values", Type: "Int", Variadic: true},
			},
		},
		{
			name: "multi-line list",
			text: "\n    a: Int,\n    b: String = \"x\"\n",
			expected: []swiftparam.Parameter{
				{Name: "a", Type: "Int"},
				{Name: "b", Type: "String", Default: "\"x\""},
			},
		},
		{
			name:     "less-than in default",
			text:     "flag: Bool = 1 < 2",
			expected: []swiftparam.Parameter{{Name: "flag", Type: "Bool", Default: "1 < 2"}},
		},
		{
			name:     "greater-than in default",
			text:     "flag: Bool = a > b",
			expected: []swiftparam.Parameter{{Name: "flag", Type: "Bool", Default: "a > b"}},
		},
		{
			name:     "ternary with comparison in default",
			text:     "x: Int = a >= b ? 1 : 2",
			expected: []swiftparam.Parameter{{Name: "x", Type: "Int", Default: "a >= b ? 1 : 2"}},
		},
		{
			name: "comparison default followed by another parameter",
			text: "flag: Bool = 1 < 2, count: Int",
			expected: []swiftparam.Parameter{
				{Name: "flag", Type: "Bool", Default: "1 < 2"},
				{Name: "count", Type: "Int"},
			},
		},
		{
			name: "generic arguments in default",
			text: "map: [String: Int] = Dictionary<String, Int>(), x: Int",
			expected: []swiftparam.Parameter{
				{Name: "map", Type: "[String: Int]", Default: "Dictionary<String, Int>()"},
				{Name: "x", Type: "Int"},
			},
		},
		{
			name: "closure default with comparison",
			text: "isValid: (Int) -> Bool = { $0 > 0 }",
			expected: []swiftparam.Parameter{
				{Name: "isValid", Type: "(Int) -> Bool", Default: "{ $0 > 0 }"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			params, err := swiftparam.Parse(testCase.text)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, params)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		err  error
	}{
		{"empty entry", "a: Int, , b: Int", swiftparam.ErrEmptyParameter},
		{"trailing comma", "a: Int,", swiftparam.ErrEmptyParameter},
		{"no colon", "a Int", swiftparam.ErrMissingType},
		{"no type", "a: ", swiftparam.ErrMissingType},
		{"no name", ": Int", swiftparam.ErrMissingName},
		{"too many names", "a b c: Int", swiftparam.ErrInvalidName},
		{"unclosed", "a: (Int", swiftparam.ErrUnbalanced},
		{"stray close", "a: Int)", swiftparam.ErrUnbalanced},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := swiftparam.Parse(testCase.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestParameter_CallArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		param    swiftparam.Parameter
		expected string
	}{
		{swiftparam.Parameter{Name: "x", Type: "Int"}, "x: x"},
		{swiftparam.Parameter{Label: "_", Name: "x", Type: "Int"}, "x"},
		{swiftparam.Parameter{Label: "at", Name: "index", Type: "Int"}, "at: index"},
		{swiftparam.Parameter{Label: "_", Name: "buf", Type: "[UInt8]", InOut: true}, "&buf"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.expected, testCase.param.CallArgument())
	}
}

func TestParameter_StringRoundTrip(t *testing.T) {
	t.Parallel()

	text := "_ a: Int = 1, with b: @escaping (Int) -> Void, c: inout String, d: Int..."
	params, err := swiftparam.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, text, swiftparam.Join(params))
}

func TestParameter_HasAttribute(t *testing.T) {
	t.Parallel()

	param := swiftparam.Parameter{Name: "f", Type: "() -> Void", Attributes: []string{"@escaping", "@Sendable"}}

	assert.True(t, param.HasAttribute("escaping"))
	assert.True(t, param.HasAttribute("@Sendable"))
	assert.False(t, param.HasAttribute("autoclosure"))
}
