package textedit

// Apply replaces each edit's span in content with its replacement text and
// returns the result. It is pure and deterministic: the outcome does not
// depend on the presentation order of edits.
//
// Edits are applied in descending start-offset order. Spans are defined
// against the original content, so replacing high offsets first keeps the
// coordinates of lower-offset edits valid even when replacement lengths
// differ from span lengths.
//
// Edits with overlapping spans are rejected with a *ConflictError rather
// than silently producing corrupted output; out-of-bounds or negative spans
// are rejected with a *ValidationError.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	sorted, err := prepare(edits, len(content))
	if err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		return content, nil
	}

	out := append([]byte(nil), content...)

	// Spans index the original content. Descending application means every
	// offset at or below the current edit's span is still untouched in out.
	for _, e := range sorted {
		patched := make([]byte, 0, len(out)+len(e.NewText)-e.Span.Length)
		patched = append(patched, out[:e.Span.Start]...)
		patched = append(patched, e.NewText...)
		patched = append(patched, out[e.Span.End():]...)
		out = patched
	}

	return out, nil
}

// ApplyString is Apply for string content.
func ApplyString(content string, edits []TextEdit) (string, error) {
	out, err := Apply([]byte(content), edits)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
