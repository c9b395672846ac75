package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/tsfix/pkg/overlay"
	"github.com/yaklabco/tsfix/pkg/project"
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

func TestLoadResolvesIncludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json":       `{"include": ["src"]}`,
		"src/a.ts":            "export const a = 1\n",
		"src/deep/b.tsx":      "export const b = 2\n",
		"src/readme.md":       "not a source file\n",
		"src/util.js":         "ignored without allowJs\n",
		"node_modules/x/c.ts": "dependency code\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "src", "a.ts"),
		filepath.Join(dir, "src", "deep", "b.tsx"),
	}
	got := view.Files()
	if len(got) != len(want) {
		t.Fatalf("Files() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if !view.Contains(want[0]) {
		t.Error("Contains() = false for a resolved file")
	}
	if view.Contains(filepath.Join(dir, "src", "readme.md")) {
		t.Error("Contains() = true for a non-source file")
	}
	if view.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", view.Dir(), dir)
	}
}

func TestLoadAllowJsWidensExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"compilerOptions": {"allowJs": true}, "include": ["src"]}`,
		"src/a.ts":      "a\n",
		"src/b.js":      "b\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(view.Files()) != 2 {
		t.Errorf("Files() = %v, want both .ts and .js", view.Files())
	}
	if !view.Options().AllowJs {
		t.Error("Options().AllowJs = false")
	}
}

func TestLoadFilesListOrderPreserved(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["z.ts", "a.ts"]}`,
		"z.ts":          "z\n",
		"a.ts":          "a\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := view.Files()
	if len(got) != 2 ||
		filepath.Base(got[0]) != "z.ts" ||
		filepath.Base(got[1]) != "a.ts" {
		t.Errorf("Files() = %v, want listed order z.ts, a.ts", got)
	}
}

func TestLoadMissingListedFileIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"files": ["gone.ts"]}`,
	})

	_, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if !errors.Is(err, project.ErrConfig) {
		t.Fatalf("Load() error = %v, want ErrConfig", err)
	}
}

func TestLoadNoSourceFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"include": ["src"]}`,
	})

	_, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if !errors.Is(err, project.ErrNoSourceFiles) {
		t.Fatalf("Load() error = %v, want ErrNoSourceFiles", err)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	t.Parallel()

	_, err := project.Load(filepath.Join(t.TempDir(), "tsconfig.json"), overlay.NewStore())
	if !errors.Is(err, project.ErrConfig) {
		t.Fatalf("Load() error = %v, want ErrConfig", err)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"include": [`,
	})

	_, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if !errors.Is(err, project.ErrConfig) {
		t.Fatalf("Load() error = %v, want ErrConfig", err)
	}
}

func TestLoadJSONCDialect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{
  // project roots
  "include": ["src",], /* trailing comma above */
}`,
		"src/a.ts": "a\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(view.Files()) != 1 {
		t.Errorf("Files() = %v, want one file", view.Files())
	}
}

func TestLoadExtendsChain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"base.json":     `{"compilerOptions": {"allowJs": true, "outDir": "build"}, "include": ["lib"]}`,
		"tsconfig.json": `{"extends": "./base", "compilerOptions": {"outDir": "dist"}, "include": ["src"]}`,
		"src/a.ts":      "a\n",
		"lib/b.ts":      "b\n",
		"dist/c.ts":     "generated\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Child include wins wholesale; compiler options merge key by key.
	if len(view.Files()) != 1 || filepath.Base(view.Files()[0]) != "a.ts" {
		t.Errorf("Files() = %v, want only src/a.ts", view.Files())
	}
	if !view.Options().AllowJs {
		t.Error("Options().AllowJs = false, want inherited true")
	}
	if view.Options().OutDir != "dist" {
		t.Errorf("Options().OutDir = %q, want child override %q", view.Options().OutDir, "dist")
	}
}

func TestLoadExtendsCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.json": `{"extends": "./b"}`,
		"b.json": `{"extends": "./a"}`,
	})

	_, err := project.Load(filepath.Join(dir, "a.json"), overlay.NewStore())
	if !errors.Is(err, project.ErrConfig) {
		t.Fatalf("Load() error = %v, want ErrConfig", err)
	}
}

func TestLoadOutDirExcluded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"compilerOptions": {"outDir": "dist"}, "include": ["**/*"]}`,
		"src/a.ts":      "a\n",
		"dist/a.ts":     "generated\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(view.Files()) != 1 || filepath.Base(filepath.Dir(view.Files()[0])) != "src" {
		t.Errorf("Files() = %v, want only src/a.ts", view.Files())
	}
}

func TestLoadReferences(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"include": ["src"], "references": [{"path": "../core"}]}`,
		"src/a.ts":      "a\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	refs := view.References()
	if len(refs) != 1 || refs[0].Path != "../core" {
		t.Errorf("References() = %v, want one entry ../core", refs)
	}
}

func TestViewTextReadsThroughOverlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"include": ["src"]}`,
		"src/a.ts":      "original\n",
	})

	ov := overlay.NewStore()
	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), ov)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	path := view.Files()[0]

	content, ok, err := view.Text(path)
	if err != nil || !ok {
		t.Fatalf("Text() = (%q, %v, %v)", content, ok, err)
	}
	if string(content) != "original\n" {
		t.Errorf("Text() = %q, want disk content", content)
	}

	ov.Record(path, []byte("original\n"), []byte("patched\n"))

	content, ok, err = view.Text(path)
	if err != nil || !ok {
		t.Fatalf("Text() after record = (%q, %v, %v)", content, ok, err)
	}
	if string(content) != "patched\n" {
		t.Errorf("Text() = %q, want overlay content", content)
	}
}

func TestViewTextUnknownPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"include": ["src"]}`,
		"src/a.ts":      "a\n",
	})

	view, err := project.Load(filepath.Join(dir, "tsconfig.json"), overlay.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_, ok, err := view.Text(filepath.Join(dir, "src", "other.ts"))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if ok {
		t.Error("Text() ok = true for a path outside the view")
	}
}
