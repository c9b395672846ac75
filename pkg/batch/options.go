// Package batch orchestrates a single fix run: load the compilation view,
// enumerate per-file combined fixes, apply their edits in memory, and
// optionally persist the results.
package batch

import (
	"errors"
	"path/filepath"
)

// ErrNoConfigPath is returned when Options carries no configuration path.
var ErrNoConfigPath = errors.New("no configuration path given")

// Options is the immutable run configuration. It is validated once, before
// any fix is computed.
type Options struct {
	// WorkingDir resolves relative paths. Empty means the process working
	// directory.
	WorkingDir string

	// ConfigPath locates the project configuration file. Required.
	ConfigPath string

	// OutputDir receives changed files, mirroring the directory structure
	// under the configuration directory. Empty means the configuration's
	// own directory (fix in place).
	OutputDir string

	// FileSubset restricts the run to the given paths, resolved relative to
	// the configuration directory. Empty means all eligible files.
	FileSubset []string

	// Write enables persisting changed files. False is the designed dry-run
	// mode: results live only in the overlay.
	Write bool
}

// validate checks the options and returns the absolute configuration path.
func (o Options) validate() (string, error) {
	if o.ConfigPath == "" {
		return "", ErrNoConfigPath
	}
	configPath := o.ConfigPath
	if !filepath.IsAbs(configPath) && o.WorkingDir != "" {
		configPath = filepath.Join(o.WorkingDir, configPath)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", err
	}
	return abs, nil
}

// outputDir resolves the effective output directory given the configuration
// directory.
func (o Options) outputDir(configDir string) string {
	if o.OutputDir == "" {
		return configDir
	}
	out := o.OutputDir
	if !filepath.IsAbs(out) && o.WorkingDir != "" {
		out = filepath.Join(o.WorkingDir, out)
	}
	return filepath.Clean(out)
}
