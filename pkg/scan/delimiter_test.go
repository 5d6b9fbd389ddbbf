package scan_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syncasync/pkg/scan"
)

func TestMatchInner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		buf   string
		start int
		text  string
		lower int
		upper int
	}{
		{"simple", "f(x)", 0, "x", 1, 3},
		{"empty", "f()", 1, "", 1, 2},
		{"nested", "f(x: Int = (1 + 2)) {}", 0, "x: Int = (1 + 2)", 1, 18},
		{"deeply nested", "((((a))))", 0, "(((a)))", 0, 8},
		{"spans lines", "f(\n  a,\n  b\n)", 0, "\n  a,\n  b\n", 1, 12},
		{"close before open is ignored", ") (a)", 0, "a", 2, 4},
		{"starts mid buffer", "(a) (b)", 1, "b", 4, 6},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			span, err := scan.MatchInner([]byte(testCase.buf), testCase.start, '(', ')')
			require.NoError(t, err)
			assert.Equal(t, testCase.text, span.Text)
			assert.Equal(t, testCase.lower, span.Lower)
			assert.Equal(t, testCase.upper, span.Upper)
		})
	}
}

func TestMatchOuter(t *testing.T) {
	t.Parallel()

	buf := []byte("func f() -> Int {\n  if x { return 1 }\n  return 2\n}\nnext")
	span, err := scan.MatchOuter(buf, 8, '{', '}')
	require.NoError(t, err)

	assert.Equal(t, "{\n  if x { return 1 }\n  return 2\n}", span.Text)
	assert.Equal(t, byte('{'), buf[span.Lower])
	assert.Equal(t, byte('}'), buf[span.Upper])
	assert.Equal(t, string(buf[span.Lower:span.Upper+1]), span.Text)
}

func TestMatch_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		buf   string
		start int
		err   error
	}{
		{"no open", "abc", 0, scan.ErrDelimiterNotFound},
		{"open only before start", "(a) b", 3, scan.ErrDelimiterNotFound},
		{"start past end", "(a)", 10, scan.ErrDelimiterNotFound},
		{"empty buffer", "", 0, scan.ErrDelimiterNotFound},
		{"unclosed", "(a", 0, scan.ErrUnbalancedDelimiter},
		{"nested unclosed", "((a)", 0, scan.ErrUnbalancedDelimiter},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := scan.MatchInner([]byte(testCase.buf), testCase.start, '(', ')')
			require.ErrorIs(t, err, testCase.err)

			_, err = scan.MatchOuter([]byte(testCase.buf), testCase.start, '(', ')')
			require.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestMatchInner_DeepNestingDoesNotRecurse(t *testing.T) {
	t.Parallel()

	const depth = 200_000
	buf := strings.Repeat("(", depth) + strings.Repeat(")", depth)

	span, err := scan.MatchInner([]byte(buf), 0, '(', ')')
	require.NoError(t, err)
	assert.Equal(t, 0, span.Lower)
	assert.Equal(t, len(buf)-1, span.Upper)
}

func FuzzMatchInner(f *testing.F) {
	f.Add("func f(a: Int) {}", 0)
	f.Add("((()", 0)
	f.Add(") (x)", 1)
	f.Add("", 0)

	f.Fuzz(func(t *testing.T, buf string, start int) {
		if start < 0 || start > len(buf) {
			t.Skip()
		}

		span, err := scan.MatchInner([]byte(buf), start, '(', ')')
		if err != nil {
			if !errors.Is(err, scan.ErrDelimiterNotFound) && !errors.Is(err, scan.ErrUnbalancedDelimiter) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}

		if span.Lower < start || span.Upper <= span.Lower {
			t.Fatalf("bad span %d..%d for start %d", span.Lower, span.Upper, start)
		}
		if buf[span.Lower] != '(' || buf[span.Upper] != ')' {
			t.Fatalf("span %d..%d not on delimiters in %q", span.Lower, span.Upper, buf)
		}
		if span.Text != buf[span.Lower+1:span.Upper] {
			t.Fatalf("text %q does not match span", span.Text)
		}

		depth := 0
		for _, c := range []byte(span.Text) {
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth < 0 {
				t.Fatalf("inner text %q closes early", span.Text)
			}
		}
		if depth != 0 {
			t.Fatalf("inner text %q is unbalanced", span.Text)
		}
	})
}
