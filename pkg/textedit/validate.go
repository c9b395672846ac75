package textedit

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose span does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Span.Start, e.Edit.Span.End(), e.Message)
}

// ConflictError describes two edits with overlapping spans.
// Overlapping edits are a provider bug: spans are defined against the
// original text and cannot be applied unambiguously.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.Span.Start, e.Edit1.Span.End(),
		e.Edit2.Span.Start, e.Edit2.Span.End())
}

// Validate checks that every edit has a non-negative, in-bounds span for
// content of the given length. Returns the first violation found.
func Validate(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if edit.Span.Start < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.Span.Length < 0 {
			return &ValidationError{Edit: edit, Message: "span length is negative"}
		}
		if edit.Span.End() > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.Span.End(), contentLen),
			}
		}
	}
	return nil
}

// SortDescending sorts edits in-place by descending start offset, ties broken
// by descending end offset. This is the application order: replacements at
// higher offsets never invalidate the original-text coordinates of lower ones.
func SortDescending(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start > edits[j].Span.Start
		}
		return edits[i].Span.End() > edits[j].Span.End()
	})
}

// detectConflicts checks a descending-sorted slice for overlapping spans.
// Two zero-length edits at the same offset do not conflict; a zero-length
// edit inside a non-empty span does.
func detectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		hi := edits[i-1]
		lo := edits[i]
		if spansOverlap(lo.Span, hi.Span) {
			return &ConflictError{Edit1: lo, Edit2: hi}
		}
	}
	return nil
}

func spansOverlap(a, b Span) bool {
	if a.Length == 0 && b.Length == 0 {
		return false
	}
	if a.Length == 0 {
		return b.Start < a.Start && a.Start < b.End()
	}
	if b.Length == 0 {
		return a.Start < b.Start && b.Start < a.End()
	}
	return a.Start < b.End() && b.Start < a.End()
}

// prepare validates edits, copies them, and returns the copy sorted in
// application (descending) order, rejecting overlapping spans.
func prepare(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := Validate(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortDescending(sorted)

	if err := detectConflicts(sorted); err != nil {
		return nil, err
	}

	return sorted, nil
}
