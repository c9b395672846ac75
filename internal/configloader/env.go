package configloader

import (
	"os"
	"strconv"
)

// Environment variable names recognized by the loader.
const (
	envProject   = "TSFIX_PROJECT"
	envOutputDir = "TSFIX_OUTPUT_DIR"
	envWrite     = "TSFIX_WRITE"
	envProvider  = "TSFIX_PROVIDER"
	envLogLevel  = "TSFIX_LOG_LEVEL"
)

// applyEnv overlays TSFIX_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(envProject); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv(envOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(envWrite); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Write = b
		}
	}
	if v := os.Getenv(envProvider); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
