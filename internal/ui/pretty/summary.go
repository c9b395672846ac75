package pretty

import (
	"fmt"
	"strings"
)

// Summary carries the run counts the CLI renders after a run.
type Summary struct {
	FilesResolved int
	FilesChanged  int
	FilesSkipped  int
	InvalidPaths  int
	EditsApplied  int
	FilesWritten  int
	DryRun        bool
	Status        string
}

// RenderSummary formats the end-of-run summary block.
func RenderSummary(styles *Styles, s Summary) string {
	var b strings.Builder

	b.WriteString(styles.SummaryTitle.Render("Run summary") + "\n")
	writeCount(&b, styles, "files in project", s.FilesResolved)
	writeCount(&b, styles, "files changed", s.FilesChanged)
	writeCount(&b, styles, "files unchanged", s.FilesSkipped)
	writeCount(&b, styles, "edits applied", s.EditsApplied)

	if s.InvalidPaths > 0 {
		line := fmt.Sprintf("  %-18s %d", "invalid requests", s.InvalidPaths)
		b.WriteString(styles.Warning.Render(line) + "\n")
	}

	switch {
	case s.DryRun:
		b.WriteString(styles.Dim.Render("dry run, no files written (use --write to persist)") + "\n")
	default:
		writeCount(&b, styles, "files written", s.FilesWritten)
	}

	if s.Status != "" {
		b.WriteString(styles.Success.Render(s.Status) + "\n")
	}

	return b.String()
}

func writeCount(b *strings.Builder, styles *Styles, label string, n int) {
	line := fmt.Sprintf("  %-18s %s", label, styles.SummaryValue.Render(fmt.Sprintf("%d", n)))
	b.WriteString(line + "\n")
}
