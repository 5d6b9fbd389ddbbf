package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syncasync/pkg/scan"
)

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		attrs  string
		name   string
	}{
		{"func foo", "func", "foo"},
		{"    public static func bar", "public static func", "bar"},
		{"@objc\tfunc tab", "@objc\tfunc", "tab"},
		{"func generic<T>", "func", "generic<T>"},
		{"func trailing ", "func trailing", ""},
		{"func\u00a0nbsp", "func", "nbsp"},
		{"func émoji", "func", "émoji"},
	}

	for _, testCase := range tests {
		t.Run(testCase.prefix, func(t *testing.T) {
			t.Parallel()

			attrs, name, err := scan.SplitName(testCase.prefix)
			require.NoError(t, err)
			assert.Equal(t, testCase.attrs, attrs)
			assert.Equal(t, testCase.name, name)
		})
	}
}

func TestNameStart(t *testing.T) {
	t.Parallel()

	idx, err := scan.NameStart("a b c")
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = scan.NameStart("nowhitespace")
	require.ErrorIs(t, err, scan.ErrNoWhitespace)

	_, err = scan.NameStart("")
	require.ErrorIs(t, err, scan.ErrNoWhitespace)
}
