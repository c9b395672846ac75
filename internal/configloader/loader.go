// Package configloader resolves the tool-level configuration for tsfix:
// a .tsfix.yaml discovered from the working directory, TSFIX_* environment
// variables, and CLI flags merged in ascending precedence.
//
// This is the tool's own configuration surface. The project configuration
// (the compilation unit) is separate and owned by pkg/project.
package configloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileNames are the discovered project-local file names, in order.
var configFileNames = []string{".tsfix.yaml", ".tsfix.yml"}

// Config is the tool configuration.
type Config struct {
	// Project is the default path to the project configuration file.
	Project string `yaml:"project"`

	// OutputDir is the default output directory. Empty means the project
	// configuration's directory.
	OutputDir string `yaml:"output_dir"`

	// Write enables persisting results by default. The zero value keeps
	// dry-run as the default mode.
	Write bool `yaml:"write"`

	// Files is a default file subset, relative to the project
	// configuration's directory.
	Files []string `yaml:"files"`

	// Provider is the external fix provider command.
	Provider string `yaml:"provider"`

	// LogLevel sets the default log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Project:  "tsconfig.json",
		LogLevel: "info",
	}
}

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory searched for a project-local config file.
	// Empty means the process working directory.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config). When
	// set, discovery is skipped and a missing file is an error.
	ExplicitPath string

	// IgnoreEnv skips the TSFIX_* environment variables.
	IgnoreEnv bool
}

// LoadResult is the resolved configuration plus provenance.
type LoadResult struct {
	// Config is the merged configuration.
	Config *Config

	// LoadedFrom lists the files that contributed, in merge order.
	LoadedFrom []string

	// Warnings holds non-fatal issues encountered while loading.
	Warnings []string
}

// Load resolves the tool configuration. Precedence, lowest to highest:
// built-in defaults, discovered or explicit config file, environment.
// CLI flags are merged by the caller on top of the returned config.
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	path, required, err := configFilePath(opts)
	if err != nil {
		return nil, err
	}

	if path != "" {
		loaded, err := readConfigFile(path)
		switch {
		case err != nil && required:
			return nil, err
		case err != nil:
			result.Warnings = append(result.Warnings, fmt.Sprintf("ignoring config file %s: %v", path, err))
		default:
			mergeConfig(result.Config, loaded)
			result.LoadedFrom = append(result.LoadedFrom, path)
		}
	}

	if !opts.IgnoreEnv {
		applyEnv(result.Config)
	}

	return result, nil
}

// configFilePath decides which file to read. required marks the explicit
// path, where failures are fatal rather than warnings.
func configFilePath(opts LoadOptions) (path string, required bool, err error) {
	if opts.ExplicitPath != "" {
		return opts.ExplicitPath, true, nil
	}

	dir := opts.WorkingDir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return "", false, fmt.Errorf("get working directory: %w", err)
		}
	}

	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, false, nil
		}
	}
	return "", false, nil
}

func readConfigFile(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(src))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty config file contributes nothing.
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig layers src over dst, field by field; zero values in src leave
// dst untouched (Write is the exception: files setting write true sticks).
func mergeConfig(dst, src *Config) {
	if src.Project != "" {
		dst.Project = src.Project
	}
	if src.OutputDir != "" {
		dst.OutputDir = src.OutputDir
	}
	if src.Write {
		dst.Write = true
	}
	if len(src.Files) > 0 {
		dst.Files = src.Files
	}
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}
