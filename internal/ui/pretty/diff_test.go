package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsfix/internal/ui/pretty"
)

func TestRenderDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := pretty.RenderDiff(styles, "src/a.ts", []byte("same\n"), []byte("same\n"), 0)
	assert.Empty(t, out)
}

func TestRenderDiffShowsChangedLines(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	original := "export const x = 1\nexport const y = 2\n"
	modified := "export const x: number = 1\nexport const y = 2\n"

	out := pretty.RenderDiff(styles, "src/a.ts", []byte(original), []byte(modified), 0)
	require.NotEmpty(t, out)

	assert.Contains(t, out, "--- src/a.ts")
	assert.Contains(t, out, "+++ src/a.ts (fixed)")
	assert.Contains(t, out, "-export const x = 1")
	assert.Contains(t, out, "+export const x: number = 1")
	assert.Contains(t, out, " export const y = 2")
}

func TestRenderDiffCollapsesLongEqualRuns(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	var lines []string
	for range 10 {
		lines = append(lines, "unchanged line")
	}
	original := strings.Join(lines, "\n") + "\nold tail\n"
	modified := strings.Join(lines, "\n") + "\nnew tail\n"

	out := pretty.RenderDiff(styles, "big.ts", []byte(original), []byte(modified), 0)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, " unchanged line")
	assert.Contains(t, out, "-old tail")
	assert.Contains(t, out, "+new tail")
}

func TestRenderDiffPureAddition(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := pretty.RenderDiff(styles, "a.ts", []byte("line\n"), []byte("line\nadded\n"), 0)

	assert.Contains(t, out, "+added")
	assert.NotContains(t, out, "-line")
}

func TestRenderDiffTruncatesToWidth(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	long := strings.Repeat("x", 200)
	out := pretty.RenderDiff(styles, "a.ts", []byte("short\n"), []byte(long+"\n"), 20)

	assert.NotContains(t, out, long)
	assert.Contains(t, out, "+"+strings.Repeat("x", 18)+"…")
}
