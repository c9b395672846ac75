package cli

import (
	"errors"

	"github.com/yaklabco/tsfix/pkg/batch"
	"github.com/yaklabco/tsfix/pkg/codefix/execprovider"
	"github.com/yaklabco/tsfix/pkg/output"
	"github.com/yaklabco/tsfix/pkg/project"
)

// Exit codes for tsfix, following the BSD sysexits convention.
const (
	// ExitSuccess indicates a completed run.
	ExitSuccess = 0

	// ExitFailure indicates a generic fatal failure.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage, including a
	// requested file subset where nothing exists.
	ExitInvalidUsage = 64

	// ExitConfigError indicates project or tool configuration errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal consistency error.
	ExitInternalError = 70
)

// CodeForError maps a fatal run error to a process exit code.
func CodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, project.ErrConfig), errors.Is(err, project.ErrNoSourceFiles):
		return ExitConfigError
	case errors.Is(err, output.ErrAllFilesInvalid),
		errors.Is(err, batch.ErrNoConfigPath),
		errors.Is(err, execprovider.ErrEmptyCommand),
		errors.Is(err, ErrNoProviderCommand):
		return ExitInvalidUsage
	case errors.Is(err, batch.ErrMissingSource):
		return ExitInternalError
	default:
		return ExitFailure
	}
}
