package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/tsfix/pkg/overlay"
)

// defaultExcludes mirrors the configuration language's implicit excludes.
var defaultExcludes = []string{"node_modules", "bower_components", "jspm_packages"}

// sourceExtensions returns the extensions eligible as root files.
func sourceExtensions(opts CompilerOptions) []string {
	exts := []string{".ts", ".tsx", ".mts", ".cts"}
	if opts.AllowJs {
		exts = append(exts, ".js", ".jsx", ".mjs", ".cjs")
	}
	return exts
}

// resolveRootFiles computes the view's file list: explicit "files" entries in
// listed order, then "include" matches in sorted order, deduplicated. All
// returned paths are absolute and cleaned.
func resolveRootFiles(configDir string, cfg *Config, ov *overlay.Store) ([]string, error) {
	seen := make(map[string]struct{})
	var roots []string

	for _, rel := range cfg.Files {
		abs := rel
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(configDir, rel)
		}
		abs = filepath.Clean(abs)

		if !fileUsable(abs, ov) {
			return nil, fmt.Errorf("%w: file %q listed in configuration does not exist", ErrConfig, rel)
		}
		if _, ok := seen[abs]; !ok {
			seen[abs] = struct{}{}
			roots = append(roots, abs)
		}
	}

	include := cfg.Include
	if len(include) == 0 && len(cfg.Files) == 0 {
		include = []string{"**/*"}
	}
	if len(include) == 0 {
		return roots, nil
	}

	exclude := cfg.Exclude
	if exclude == nil {
		exclude = defaultExcludes
	}
	if cfg.CompilerOptions.OutDir != "" {
		exclude = append(append([]string(nil), exclude...), cfg.CompilerOptions.OutDir)
	}

	matched, err := walkIncludes(configDir, include, exclude, sourceExtensions(cfg.CompilerOptions))
	if err != nil {
		return nil, err
	}

	sort.Strings(matched)
	for _, abs := range matched {
		if _, ok := seen[abs]; !ok {
			seen[abs] = struct{}{}
			roots = append(roots, abs)
		}
	}

	return roots, nil
}

// fileUsable reports whether a "files" entry can be read, consulting the
// overlay before the disk.
func fileUsable(abs string, ov *overlay.Store) bool {
	if _, ok := ov.Get(abs); ok {
		return true
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// walkIncludes walks configDir collecting files that match any include
// pattern, are not excluded, and carry an eligible extension. Vendored and
// generated paths are screened out even when no exclude pattern names them.
func walkIncludes(configDir string, include, exclude, exts []string) ([]string, error) {
	var matched []string

	err := filepath.WalkDir(configDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel, relErr := filepath.Rel(configDir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if matchesAny(rel, exclude) || enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if !hasExtension(path, exts) {
			return nil
		}
		if matchesAny(rel, exclude) || enry.IsVendor(rel) {
			return nil
		}
		if !matchesAny(rel, include) {
			return nil
		}

		matched = append(matched, filepath.Clean(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", ErrConfig, configDir, err)
	}

	return matched, nil
}

func hasExtension(path string, exts []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// matchesAny reports whether the slash-separated relative path matches any of
// the patterns. A pattern without glob metacharacters names a file or a
// directory prefix; "dir" behaves as "dir/**/*".
func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPattern(rel, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

func matchPattern(rel, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return rel == pattern || strings.HasPrefix(rel, pattern+"/")
	}
	return matchSegments(strings.Split(rel, "/"), strings.Split(pattern, "/"))
}

// matchSegments matches path segments against pattern segments, where "**"
// spans any number of segments (including zero) and other segments use
// filepath.Match semantics.
func matchSegments(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}

	if pattern[0] == "**" {
		// "**" as the final segment matches everything below this point.
		if len(pattern) == 1 {
			return true
		}
		for skip := 0; skip <= len(path); skip++ {
			if matchSegments(path[skip:], pattern[1:]) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(path[1:], pattern[1:])
}
