package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/tsfix/pkg/batch"
	"github.com/yaklabco/tsfix/pkg/codefix"
	"github.com/yaklabco/tsfix/pkg/overlay"
	"github.com/yaklabco/tsfix/pkg/project"
	"github.com/yaklabco/tsfix/pkg/textedit"
)

// writeTree writes the given relative-path-to-content files under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// loadView builds a compilation view over a fresh overlay.
func loadView(t *testing.T, dir string) *project.View {
	t.Helper()
	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return view
}

// annotateEverything is a provider that returns one single-edit change for
// every requested file.
func annotateEverything() codefix.Provider {
	return codefix.ProviderFunc(func(_ context.Context, req codefix.Request) (*codefix.CombinedFix, error) {
		return &codefix.CombinedFix{
			Changes: []codefix.FileChange{{
				FileName: req.File,
				Edits:    []textedit.TextEdit{textedit.Insert(0, "// typed\n")},
			}},
		}, nil
	})
}

func collect(t *testing.T, seq func(func(batch.FixResult, error) bool)) []batch.FixResult {
	t.Helper()
	var results []batch.FixResult
	for fr, err := range seq {
		if err != nil {
			t.Fatalf("enumeration error = %v", err)
		}
		results = append(results, fr)
	}
	return results
}

func TestEnumerateSkipsDeclarationFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json":  `{"include": ["src"]}`,
		"src/a.ts":       "a\n",
		"src/types.d.ts": "declare const a: number\n",
		"src/m.d.mts":    "declare const m: number\n",
	})
	view := loadView(t, dir)

	results := collect(t, batch.Enumerate(context.Background(), view, annotateEverything(), nil, nil))

	if len(results) != 1 || filepath.Base(results[0].Path) != "a.ts" {
		t.Errorf("results = %+v, want only src/a.ts", results)
	}
}

func TestEnumerateSkipsDependencyDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		// node_modules listed explicitly so resolution includes it; the
		// enumerator must still refuse to touch it.
		"tsconfig.json":         `{"files": ["src/a.ts", "node_modules/pkg/b.ts"]}`,
		"src/a.ts":              "a\n",
		"node_modules/pkg/b.ts": "b\n",
	})
	view := loadView(t, dir)

	results := collect(t, batch.Enumerate(context.Background(), view, annotateEverything(), nil, nil))

	if len(results) != 1 || filepath.Base(results[0].Path) != "a.ts" {
		t.Errorf("results = %+v, want only src/a.ts", results)
	}
}

func TestEnumerateSubsetFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"include": ["src"]}`,
		"src/a.ts":      "a\n",
		"src/b.ts":      "b\n",
		"src/c.ts":      "c\n",
	})
	view := loadView(t, dir)

	subset := map[string]struct{}{
		filepath.Join(dir, "src", "b.ts"): {},
	}

	results := collect(t, batch.Enumerate(context.Background(), view, annotateEverything(), subset, nil))

	if len(results) != 1 || filepath.Base(results[0].Path) != "b.ts" {
		t.Errorf("results = %+v, want only src/b.ts", results)
	}
}

func TestEnumeratePreservesViewOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["z.ts", "a.ts", "m.ts"]}`,
		"z.ts":          "z\n",
		"a.ts":          "a\n",
		"m.ts":          "m\n",
	})
	view := loadView(t, dir)

	results := collect(t, batch.Enumerate(context.Background(), view, annotateEverything(), nil, nil))

	want := []string{"z.ts", "a.ts", "m.ts"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, name := range want {
		if filepath.Base(results[i].Path) != name {
			t.Errorf("results[%d] = %q, want %q", i, filepath.Base(results[i].Path), name)
		}
	}
}

func TestEnumerateFirstCandidateWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["a.ts"]}`,
		"a.ts":          "a\n",
	})
	view := loadView(t, dir)

	provider := codefix.ProviderFunc(func(_ context.Context, req codefix.Request) (*codefix.CombinedFix, error) {
		return &codefix.CombinedFix{
			Changes: []codefix.FileChange{
				{FileName: req.File, Edits: []textedit.TextEdit{textedit.Insert(0, "first")}},
				{FileName: req.File, Edits: []textedit.TextEdit{textedit.Insert(0, "second")}},
			},
		}, nil
	})

	results := collect(t, batch.Enumerate(context.Background(), view, provider, nil, nil))

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Candidates != 2 {
		t.Errorf("Candidates = %d, want 2", results[0].Candidates)
	}
	if len(results[0].Edits) != 1 || results[0].Edits[0].NewText != "first" {
		t.Errorf("Edits = %+v, want the first candidate's edits", results[0].Edits)
	}
}

func TestEnumerateSkipsEmptyFixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["none.ts", "empty.ts", "real.ts"]}`,
		"none.ts":       "a\n",
		"empty.ts":      "b\n",
		"real.ts":       "c\n",
	})
	view := loadView(t, dir)

	provider := codefix.ProviderFunc(func(_ context.Context, req codefix.Request) (*codefix.CombinedFix, error) {
		switch filepath.Base(req.File) {
		case "none.ts":
			return &codefix.CombinedFix{}, nil
		case "empty.ts":
			return &codefix.CombinedFix{Changes: []codefix.FileChange{{FileName: req.File}}}, nil
		default:
			return &codefix.CombinedFix{
				Changes: []codefix.FileChange{{
					FileName: req.File,
					Edits:    []textedit.TextEdit{textedit.Insert(0, "x")},
				}},
			}, nil
		}
	})

	results := collect(t, batch.Enumerate(context.Background(), view, provider, nil, nil))

	if len(results) != 1 || filepath.Base(results[0].Path) != "real.ts" {
		t.Errorf("results = %+v, want only real.ts", results)
	}
}

func TestEnumerateStopsOnProviderError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["a.ts", "b.ts"]}`,
		"a.ts":          "a\n",
		"b.ts":          "b\n",
	})
	view := loadView(t, dir)

	providerErr := errors.New("engine crashed")
	calls := 0
	provider := codefix.ProviderFunc(func(_ context.Context, _ codefix.Request) (*codefix.CombinedFix, error) {
		calls++
		return nil, providerErr
	})

	var got error
	for _, err := range batch.Enumerate(context.Background(), view, provider, nil, nil) {
		if err != nil {
			got = err
			break
		}
	}

	if !errors.Is(got, providerErr) {
		t.Errorf("enumeration error = %v, want %v", got, providerErr)
	}
	if calls != 1 {
		t.Errorf("provider called %d times after a fatal error, want 1", calls)
	}
}

func TestEnumerateHonorsCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["a.ts"]}`,
		"a.ts":          "a\n",
	})
	view := loadView(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got error
	for _, err := range batch.Enumerate(ctx, view, annotateEverything(), nil, nil) {
		got = err
		break
	}

	if !errors.Is(got, context.Canceled) {
		t.Errorf("enumeration error = %v, want context.Canceled", got)
	}
}

func TestEnumerateLazy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["a.ts", "b.ts", "c.ts"]}`,
		"a.ts":          "a\n",
		"b.ts":          "b\n",
		"c.ts":          "c\n",
	})
	view := loadView(t, dir)

	calls := 0
	provider := codefix.ProviderFunc(func(_ context.Context, req codefix.Request) (*codefix.CombinedFix, error) {
		calls++
		return &codefix.CombinedFix{
			Changes: []codefix.FileChange{{
				FileName: req.File,
				Edits:    []textedit.TextEdit{textedit.Insert(0, "x")},
			}},
		}, nil
	})

	for range batch.Enumerate(context.Background(), view, provider, nil, nil) {
		break // consume one element only
	}

	if calls != 1 {
		t.Errorf("provider called %d times before the break, want 1", calls)
	}
}
