package pretty

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Render is the signature of a lipgloss style's Render method.
type Render func(...string) string

// splitDiffLines splits a diff segment into lines without the trailing
// newline artifact.
func splitDiffLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// RenderDiff formats a line-level diff between original and modified content
// for dry-run output: a header naming the file, then -/+ prefixed lines,
// each truncated to width columns (0 disables truncation). Returns "" when
// the contents are identical.
func RenderDiff(styles *Styles, path string, original, modified []byte, width int) string {
	if string(original) == string(modified) {
		return ""
	}

	dmp := diffmatchpatch.New()
	origChars, modChars, lines := dmp.DiffLinesToChars(string(original), string(modified))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(origChars, modChars, false), lines)

	var b strings.Builder
	b.WriteString(styles.DiffHeader.Render("--- "+path) + "\n")
	b.WriteString(styles.DiffHeader.Render("+++ "+path+" (fixed)") + "\n")

	// Up to this many unchanged lines are shown verbatim; longer equal runs
	// collapse to an ellipsis marker.
	const maxContextLines = 3

	for _, d := range diffs {
		var prefix string
		var style Render
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, style = "+", styles.DiffAdd.Render
		case diffmatchpatch.DiffDelete:
			prefix, style = "-", styles.DiffRemove.Render
		default:
			prefix, style = " ", styles.DiffContext.Render
		}

		lines := splitDiffLines(d.Text)
		if d.Type == diffmatchpatch.DiffEqual && len(lines) > maxContextLines {
			b.WriteString(styles.Dim.Render("…") + "\n")
			continue
		}
		for _, line := range lines {
			b.WriteString(style(truncateToWidth(prefix+line, width)) + "\n")
		}
	}

	return b.String()
}
