// Package output handles the disk-facing tail of a run: validating a
// user-supplied file subset, mapping changed files to their output location,
// and writing final content through the host collaborator.
package output

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/tsfix/pkg/hostfs"
)

// ErrAllFilesInvalid is returned when every explicitly requested file fails
// existence validation. It aborts the run before any fix is computed.
var ErrAllFilesInvalid = errors.New("all requested files are invalid")

// ValidateSubset resolves each requested path against configDir and checks
// existence through the host. It returns the valid and invalid absolute
// paths, preserving request order.
//
// The error is non-nil only when requestedPaths is non-empty and every entry
// is invalid; a partially invalid subset is the caller's to report as a
// warning while the run proceeds with the valid part.
func ValidateSubset(requestedPaths []string, configDir string, host hostfs.Host) (valid, invalid []string, err error) {
	for _, req := range requestedPaths {
		abs := req
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(configDir, req)
		}
		abs = filepath.Clean(abs)

		if host.Exists(abs) {
			valid = append(valid, abs)
		} else {
			invalid = append(invalid, abs)
		}
	}

	if len(requestedPaths) > 0 && len(valid) == 0 {
		return nil, invalid, fmt.Errorf("%w: %v", ErrAllFilesInvalid, invalid)
	}
	return valid, invalid, nil
}
