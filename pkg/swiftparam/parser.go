package swiftparam

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	// ErrEmptyParameter is returned for an empty entry such as "a: Int, , b: Int".
	ErrEmptyParameter = errors.New("empty parameter")

	// ErrMissingType is returned when an entry has no top-level ':'.
	ErrMissingType = errors.New("missing type annotation")

	// ErrMissingName is returned when the text before ':' has no name.
	ErrMissingName = errors.New("missing parameter name")

	// ErrInvalidName is returned when more than a label and a name precede ':'.
	ErrInvalidName = errors.New("invalid parameter name")

	// ErrUnbalanced is returned when brackets in the list do not balance.
	ErrUnbalanced = errors.New("unbalanced brackets in parameter list")
)

// Parser parses Swift parameter clauses. The zero value is ready to use.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decomposes text, the content between a declaration's parentheses.
// Whitespace-only text yields no parameters.
func (p *Parser) Parse(text string) ([]Parameter, error) {
	return Parse(text)
}

// Parse decomposes text with the default parser.
func Parse(text string) ([]Parameter, error) {
	if strings.TrimSpace(text) == "" {
		return []Parameter{}, nil
	}

	pieces, err := splitTopLevel(text, ',')
	if err != nil {
		return nil, err
	}

	params := make([]Parameter, 0, len(pieces))
	for idx, piece := range pieces {
		param, err := parseOne(strings.TrimSpace(piece))
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", idx+1, err)
		}
		params = append(params, param)
	}

	return params, nil
}

func parseOne(text string) (Parameter, error) {
	if text == "" {
		return Parameter{}, ErrEmptyParameter
	}

	colon := indexTopLevel(text, ':')
	if colon < 0 {
		return Parameter{}, fmt.Errorf("%w: %q", ErrMissingType, text)
	}

	var param Parameter

	names := strings.Fields(text[:colon])
	switch len(names) {
	case 0:
		return Parameter{}, fmt.Errorf("%w: %q", ErrMissingName, text)
	case 1:
		param.Name = names[0]
	case 2:
		param.Label, param.Name = names[0], names[1]
	default:
		return Parameter{}, fmt.Errorf("%w: %q", ErrInvalidName, text[:colon])
	}

	typeText := text[colon+1:]
	if eq := indexTopLevel(typeText, '='); eq >= 0 {
		param.Default = strings.TrimSpace(typeText[eq+1:])
		typeText = typeText[:eq]
	}
	typeText = strings.TrimSpace(typeText)

	for strings.HasPrefix(typeText, "@") {
		end := attributeEnd(typeText)
		param.Attributes = append(param.Attributes, typeText[:end])
		typeText = strings.TrimSpace(typeText[end:])
	}

	if rest, ok := strings.CutPrefix(typeText, "inout"); ok && startsWithSpace(rest) {
		param.InOut = true
		typeText = strings.TrimSpace(rest)
	}

	if rest, ok := strings.CutSuffix(typeText, "..."); ok {
		param.Variadic = true
		typeText = strings.TrimSpace(rest)
	}

	if typeText == "" {
		return Parameter{}, fmt.Errorf("%w: %q", ErrMissingType, text)
	}
	param.Type = typeText

	return param, nil
}

// attributeEnd returns the end of the leading "@name" or "@name(args)".
func attributeEnd(text string) int {
	depth := 0
	for idx, char := range text {
		switch {
		case char == '(':
			depth++
		case char == ')':
			depth--
			if depth == 0 {
				return idx + 1
			}
		case depth == 0 && unicode.IsSpace(char):
			return idx
		}
	}
	return len(text)
}

func startsWithSpace(text string) bool {
	return text != "" && unicode.IsSpace(rune(text[0]))
}

// splitTopLevel splits text at sep outside any (), [], {} or <> nesting.
// After a piece's top-level '=' the text is a default value, where '<' and
// '>' are comparison operators unless they enclose generic arguments.
func splitTopLevel(text string, sep byte) ([]string, error) {
	var (
		pieces    []string
		depth     int
		start     int
		inDefault bool
		angles    int
	)

	for idx := 0; idx < len(text); idx++ {
		char := text[idx]
		delta := nesting(text, idx)
		if inDefault && (char == '<' || char == '>') {
			delta = 0
			switch {
			case char == '<' && opensGenericArguments(text, idx):
				angles++
				delta = 1
			case char == '>' && angles > 0 && text[idx-1] != '-':
				angles--
				delta = -1
			}
		}

		switch {
		case delta != 0:
			depth += delta
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrUnbalanced, char, idx)
			}
		case depth == 0 && char == sep:
			pieces = append(pieces, text[start:idx])
			start = idx + 1
			inDefault, angles = false, 0
		case depth == 0 && char == '=':
			inDefault = true
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: %d unclosed", ErrUnbalanced, depth)
	}

	return append(pieces, text[start:]), nil
}

// opensGenericArguments reports whether the '<' at idx of an expression
// starts a generic argument list, as in "Array<Int>()", rather than a
// comparison such as "1 < 2" or "a <= b".
func opensGenericArguments(text string, idx int) bool {
	if idx == 0 || idx+1 >= len(text) {
		return false
	}
	prev, next := rune(text[idx-1]), rune(text[idx+1])
	if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) && prev != '_' {
		return false
	}
	return unicode.IsUpper(next) || next == '[' || next == '('
}

// indexTopLevel returns the first index of sep outside any nesting, or -1.
func indexTopLevel(text string, sep byte) int {
	depth := 0
	for idx := 0; idx < len(text); idx++ {
		if delta := nesting(text, idx); delta != 0 {
			depth += delta
			continue
		}
		if depth == 0 && text[idx] == sep {
			return idx
		}
	}
	return -1
}

// nesting returns +1 for an opening bracket at idx, -1 for a closing one and
// 0 otherwise. The '>' of "->" is not a closing bracket.
func nesting(text string, idx int) int {
	switch text[idx] {
	case '(', '[', '{', '<':
		return 1
	case ')', ']', '}':
		return -1
	case '>':
		if idx > 0 && text[idx-1] == '-' {
			return 0
		}
		return -1
	default:
		return 0
	}
}
