// Package fix provides text edits, their validation and application, and
// unified diffs of the result.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
// An edit with StartOffset == EndOffset is an insertion.
type TextEdit struct {
	StartOffset int    `json:"startOffset" yaml:"start_offset"`
	EndOffset   int    `json:"endOffset" yaml:"end_offset"`
	NewText     string `json:"newText" yaml:"new_text"`
}

// IsInsertion reports whether the edit removes nothing.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

func (e TextEdit) removed() int {
	return e.EndOffset - e.StartOffset
}

// EditBuilder accumulates the edits for one buffer in the order they are
// produced. Insertions at one offset are applied in that order.
type EditBuilder struct {
	Edits []TextEdit
}

func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// Insert adds text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: offset, EndOffset: offset, NewText: text})
}

// ReplaceRange replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
