// Package textedit provides span-based text edit types and deterministic
// edit application.
package textedit

// Span identifies the half-open byte range [Start, Start+Length) of an edit
// in the coordinates of the original, unmodified text.
type Span struct {
	// Start is the byte offset where the edit begins (inclusive).
	Start int `json:"start"`

	// Length is the number of bytes the edit replaces. Zero means a pure
	// insertion at Start.
	Length int `json:"length"`
}

// End returns the exclusive end offset of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// TextEdit represents "replace the Length bytes at Start with NewText".
type TextEdit struct {
	Span Span `json:"span"`

	// NewText is the replacement text.
	NewText string `json:"newText"`
}

// Replace builds an edit that replaces bytes [start, start+length) with newText.
func Replace(start, length int, newText string) TextEdit {
	return TextEdit{Span: Span{Start: start, Length: length}, NewText: newText}
}

// Insert builds an edit that inserts text at the given offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, 0, text)
}

// Delete builds an edit that deletes bytes [start, start+length).
func Delete(start, length int) TextEdit {
	return Replace(start, length, "")
}
