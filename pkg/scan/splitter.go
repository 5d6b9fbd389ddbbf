package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NameStart returns the index just after the last whitespace rune of prefix,
// which is where the declaration name begins.
func NameStart(prefix string) (int, error) {
	for idx := len(prefix); idx > 0; {
		char, size := utf8.DecodeLastRuneInString(prefix[:idx])
		if unicode.IsSpace(char) {
			return idx, nil
		}
		idx -= size
	}
	return 0, ErrNoWhitespace
}

// SplitName splits the text before a parameter list into its trimmed
// attributes and the declaration name.
func SplitName(prefix string) (string, string, error) {
	idx, err := NameStart(prefix)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(prefix[:idx]), prefix[idx:], nil
}
