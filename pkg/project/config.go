// Package project loads a TypeScript-style project configuration and exposes
// an immutable compilation view over its source files. All file content is
// read through an overlay store, so edits recorded earlier in the run are
// visible to later reads without touching disk.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/tsfix/pkg/overlay"
)

// Sentinel errors for run-fatal load failures.
var (
	// ErrConfig categorizes unrecoverable configuration errors: a missing,
	// unreadable, or malformed configuration file. These abort the run.
	ErrConfig = errors.New("configuration error")

	// ErrNoSourceFiles is returned when a parsed configuration resolves to
	// zero root files; no usable compilation view can be constructed.
	ErrNoSourceFiles = errors.New("configuration matched no source files")
)

// maxExtendsDepth bounds extends chains to keep cycles diagnosable.
const maxExtendsDepth = 16

// CompilerOptions is the subset of compiler options the batch tool consults.
// The full option set belongs to the fix provider's language engine.
type CompilerOptions struct {
	// AllowJs widens root-file resolution to JavaScript extensions.
	AllowJs bool `json:"allowJs"`

	// OutDir is excluded from root-file resolution when set.
	OutDir string `json:"outDir"`
}

// Reference is a project reference entry.
type Reference struct {
	Path string `json:"path"`
}

// Config is a resolved project configuration with extends chains flattened.
type Config struct {
	CompilerOptions CompilerOptions
	Files           []string
	Include         []string
	Exclude         []string
	References      []Reference
}

// rawConfig mirrors the on-disk shape. RawMessage fields distinguish "absent"
// from "empty" so extends merging only overrides what the child sets.
type rawConfig struct {
	Extends         string                     `json:"extends"`
	CompilerOptions map[string]json.RawMessage `json:"compilerOptions"`
	Files           json.RawMessage            `json:"files"`
	Include         json.RawMessage            `json:"include"`
	Exclude         json.RawMessage            `json:"exclude"`
	References      []Reference                `json:"references"`
}

// parseConfig reads and decodes the configuration at absPath through the
// overlay, following extends chains. Returned slices of Files/Include/Exclude
// are relative to the directory of absPath's config (TypeScript resolves
// these against the config that declares them; tsfix resolves against the
// leaf config directory, which matches the single-project scope here).
func parseConfig(absPath string, ov *overlay.Store, depth int, seen map[string]bool) (*rawConfig, error) {
	if depth > maxExtendsDepth {
		return nil, fmt.Errorf("%w: extends chain exceeds %d levels at %s", ErrConfig, maxExtendsDepth, absPath)
	}
	if seen[absPath] {
		return nil, fmt.Errorf("%w: extends cycle through %s", ErrConfig, absPath)
	}
	seen[absPath] = true

	src, err := ov.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, absPath, err)
	}

	var raw rawConfig
	if err := json.Unmarshal(stripJSONC(src), &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrConfig, absPath, err)
	}

	if raw.Extends == "" {
		return &raw, nil
	}

	basePath := raw.Extends
	if filepath.Ext(basePath) == "" {
		basePath += ".json"
	}
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(filepath.Dir(absPath), basePath)
	}

	base, err := parseConfig(basePath, ov, depth+1, seen)
	if err != nil {
		return nil, err
	}

	return mergeConfigs(base, &raw), nil
}

// mergeConfigs layers child over base: scalar lists win wholesale when the
// child declares them, compiler options merge key by key.
func mergeConfigs(base, child *rawConfig) *rawConfig {
	merged := *base
	merged.Extends = ""
	merged.References = child.References

	if child.Files != nil {
		merged.Files = child.Files
	}
	if child.Include != nil {
		merged.Include = child.Include
	}
	if child.Exclude != nil {
		merged.Exclude = child.Exclude
	}

	if len(child.CompilerOptions) > 0 {
		opts := make(map[string]json.RawMessage, len(base.CompilerOptions)+len(child.CompilerOptions))
		for k, v := range base.CompilerOptions {
			opts[k] = v
		}
		for k, v := range child.CompilerOptions {
			opts[k] = v
		}
		merged.CompilerOptions = opts
	}

	return &merged
}

// finalize decodes a flattened rawConfig into the typed Config.
func (r *rawConfig) finalize(configPath string) (*Config, error) {
	cfg := &Config{References: r.References}

	if len(r.CompilerOptions) > 0 {
		blob, err := json.Marshal(r.CompilerOptions)
		if err != nil {
			return nil, fmt.Errorf("%w: compiler options in %s: %w", ErrConfig, configPath, err)
		}
		if err := json.Unmarshal(blob, &cfg.CompilerOptions); err != nil {
			return nil, fmt.Errorf("%w: compiler options in %s: %w", ErrConfig, configPath, err)
		}
	}

	decodeList := func(raw json.RawMessage, name string) ([]string, error) {
		if raw == nil {
			return nil, nil
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %q in %s: %w", ErrConfig, name, configPath, err)
		}
		return list, nil
	}

	var err error
	if cfg.Files, err = decodeList(r.Files, "files"); err != nil {
		return nil, err
	}
	if cfg.Include, err = decodeList(r.Include, "include"); err != nil {
		return nil, err
	}
	if cfg.Exclude, err = decodeList(r.Exclude, "exclude"); err != nil {
		return nil, err
	}

	return cfg, nil
}
