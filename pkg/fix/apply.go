package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidEdit is matched by every *ValidationError.
	ErrInvalidEdit = errors.New("invalid edit")

	// ErrConflictingEdits is matched by every *ConflictError.
	ErrConflictingEdits = errors.New("conflicting edits")
)

// ValidationError reports an edit whose range does not fit the buffer.
type ValidationError struct {
	Edit   TextEdit
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidEdit }

// ConflictError reports two edits whose ranges overlap.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("edit [%d:%d] overlaps edit [%d:%d]",
		e.Second.StartOffset, e.Second.EndOffset,
		e.First.StartOffset, e.First.EndOffset)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflictingEdits }

func checkRange(edit TextEdit, contentLen int) error {
	var reason string
	switch {
	case edit.StartOffset < 0:
		reason = "start offset is negative"
	case edit.EndOffset < edit.StartOffset:
		reason = "end offset is before start offset"
	case edit.EndOffset > contentLen:
		reason = fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen)
	default:
		return nil
	}
	return &ValidationError{Edit: edit, Reason: reason}
}

// PrepareEdits returns a copy of edits ordered by position after checking
// each range against a buffer of contentLen bytes. The ordering is stable,
// so insertions sharing an offset keep their order. Overlapping
// replacements are rejected.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	for _, edit := range edits {
		if err := checkRange(edit, contentLen); err != nil {
			return nil, err
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartOffset < sorted[i-1].EndOffset {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// ApplyEdits splices prepared edits into content and returns the new buffer.
// content is not modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - e.removed()
	}

	out := make([]byte, 0, size)
	cursor := 0
	for _, e := range edits {
		out = append(out, content[cursor:e.StartOffset]...)
		out = append(out, e.NewText...)
		cursor = e.EndOffset
	}
	return append(out, content[cursor:]...)
}

// Apply prepares and applies edits in one step.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	prepared, err := PrepareEdits(edits, len(content))
	if err != nil {
		return nil, err
	}
	return ApplyEdits(content, prepared), nil
}
