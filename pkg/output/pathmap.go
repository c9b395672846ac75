package output

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathFor computes the output location for filePath: its path relative to
// configDir, resolved against outputDir. Directory structure under the
// configuration root is thereby mirrored under the output root.
//
// A file outside configDir cannot be remapped and is an error; with the
// default outputDir (the configuration directory itself) the mapping is the
// identity.
func PathFor(filePath, configDir, outputDir string) (string, error) {
	rel, err := filepath.Rel(configDir, filePath)
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", filePath, configDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s lies outside the configuration directory %s", filePath, configDir)
	}
	return filepath.Join(outputDir, rel), nil
}
