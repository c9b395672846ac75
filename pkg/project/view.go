package project

import (
	"fmt"
	"path/filepath"

	"github.com/yaklabco/tsfix/pkg/overlay"
)

// View is an immutable-per-run compilation view: the resolved configuration
// plus a queryable surface over its source files. Content is treated as
// static for the duration of the run; any override happens through the
// overlay consulted by Text, never by mutating the view.
type View struct {
	configPath string
	configDir  string
	files      []string
	fileSet    map[string]struct{}
	options    CompilerOptions
	references []Reference
	ov         *overlay.Store
}

// Load resolves configPath, parses the configuration through the overlay
// reader, resolves root files, and constructs the view.
//
// Unrecoverable configuration problems return an error wrapping ErrConfig;
// a configuration that resolves to zero root files returns ErrNoSourceFiles.
// Both are fatal for the run.
func Load(configPath string, ov *overlay.Store) (*View, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrConfig, configPath, err)
	}

	raw, err := parseConfig(abs, ov, 0, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	cfg, err := raw.finalize(abs)
	if err != nil {
		return nil, err
	}

	configDir := filepath.Dir(abs)
	files, err := resolveRootFiles(configDir, cfg, ov)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFiles, abs)
	}

	fileSet := make(map[string]struct{}, len(files))
	for _, f := range files {
		fileSet[f] = struct{}{}
	}

	return &View{
		configPath: abs,
		configDir:  configDir,
		files:      files,
		fileSet:    fileSet,
		options:    cfg.CompilerOptions,
		references: cfg.References,
		ov:         ov,
	}, nil
}

// ConfigPath returns the absolute path of the loaded configuration file.
func (v *View) ConfigPath() string {
	return v.configPath
}

// Dir returns the directory containing the configuration file. Output paths
// are computed relative to it.
func (v *View) Dir() string {
	return v.configDir
}

// Files returns the resolved root files in enumeration order. Callers must
// not mutate the returned slice.
func (v *View) Files() []string {
	return v.files
}

// Contains reports whether path is part of the view's file list.
func (v *View) Contains(path string) bool {
	_, ok := v.fileSet[path]
	return ok
}

// Text returns the current content of a view file: the overlay's text when
// the file has been patched this run, the on-disk text otherwise. ok is
// false when path is not part of the view at all.
func (v *View) Text(path string) (content []byte, ok bool, err error) {
	if !v.Contains(path) {
		return nil, false, nil
	}
	content, err = v.ov.ReadFile(path)
	if err != nil {
		return nil, true, fmt.Errorf("read %s: %w", path, err)
	}
	return content, true, nil
}

// Options returns the compiler options subset the tool consults.
func (v *View) Options() CompilerOptions {
	return v.options
}

// References returns the project references declared by the configuration.
func (v *View) References() []Reference {
	return v.references
}
