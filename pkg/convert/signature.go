package convert

import (
	"regexp"
	"strings"
)

var whereClause = regexp.MustCompile(`(^|\s)where\s`)

// Signature is the effect and result information found between a
// declaration's parameter list and its body.
type Signature struct {
	Async    bool
	Throws   bool
	Rethrows bool

	// ThrownType is the error type of a typed throws clause, "" otherwise.
	ThrownType string

	// ReturnType is the text after "->", "" when absent.
	ReturnType string

	// Where is the generic where clause without the keyword.
	Where string
}

// ParseSignature reads the text between ')' and '{', e.g.
// " async throws -> [Item] where T: Codable ".
func ParseSignature(post string) Signature {
	var sig Signature

	head := strings.TrimSpace(post)
	if loc := whereClause.FindStringIndex(head); loc != nil {
		sig.Where = strings.TrimSpace(head[loc[1]:])
		head = strings.TrimSpace(head[:loc[0]])
	}

	effects := head
	if arrow := strings.Index(head, "->"); arrow >= 0 {
		sig.ReturnType = strings.TrimSpace(head[arrow+2:])
		effects = head[:arrow]
	}

	for _, word := range strings.Fields(effects) {
		switch {
		case word == "async":
			sig.Async = true
		case word == "throws":
			sig.Throws = true
		case word == "rethrows":
			sig.Rethrows = true
		case strings.HasPrefix(word, "throws(") && strings.HasSuffix(word, ")"):
			sig.Throws = true
			sig.ThrownType = strings.TrimSuffix(strings.TrimPrefix(word, "throws("), ")")
		}
	}

	return sig
}

// ReturnsVoid reports whether the declaration produces no value.
func (s Signature) ReturnsVoid() bool {
	return isVoid(s.ReturnType)
}

func isVoid(typ string) bool {
	switch strings.TrimSpace(typ) {
	case "", "Void", "()":
		return true
	default:
		return false
	}
}
