package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/pkg/codefix"
	"github.com/yaklabco/tsfix/pkg/hostfs"
	"github.com/yaklabco/tsfix/pkg/output"
	"github.com/yaklabco/tsfix/pkg/overlay"
	"github.com/yaklabco/tsfix/pkg/project"
	"github.com/yaklabco/tsfix/pkg/textedit"
)

// ErrMissingSource indicates that a file enumerated during the fix phase
// could not be re-fetched from the compilation view. The view and the
// enumerator disagreeing about the file list is a consistency bug, so this
// aborts the run.
var ErrMissingSource = errors.New("source file missing from compilation view")

// ErrNoProvider is returned when a Runner is constructed without a fix
// provider.
var ErrNoProvider = errors.New("no fix provider configured")

// Runner executes one batch-fix run: a single synchronous pass over the
// compilation view's files. The overlay store is created per run and owned
// exclusively by it; nothing is shared across runs.
type Runner struct {
	provider codefix.Provider
	host     hostfs.Host
	logger   *log.Logger

	// Overlay holds the run's overlay store after Run returns, for callers
	// that render diffs from it. nil before the first Run.
	Overlay *overlay.Store
}

// NewRunner creates a runner over the given collaborators. A nil host
// defaults to the operating system; a nil logger to the package default.
func NewRunner(provider codefix.Provider, host hostfs.Host, logger *log.Logger) *Runner {
	if host == nil {
		host = hostfs.NewOS()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{provider: provider, host: host, logger: logger}
}

// Run performs the whole pipeline: load view, validate subset, enumerate
// fixes, apply edits into the overlay, and, when opts.Write is set, persist
// changed files. Fatal conditions return an error and write nothing;
// otherwise the result carries StatusDone.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r.provider == nil {
		return nil, ErrNoProvider
	}

	configPath, err := opts.validate()
	if err != nil {
		return nil, err
	}

	ov := overlay.NewStore()
	r.Overlay = ov

	view, err := project.Load(configPath, ov)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("compilation view loaded",
		logging.FieldProject, view.ConfigPath(),
		logging.FieldFilesResolved, len(view.Files()),
	)

	subset, invalid, err := r.validateSubset(opts, view)
	if err != nil {
		return nil, err
	}

	result := &Result{InvalidPaths: invalid}
	result.Stats.FilesResolved = len(view.Files())

	if err := r.applyFixes(ctx, view, subset, result); err != nil {
		return nil, err
	}

	if opts.Write {
		writer := output.NewWriter(r.host, r.logger)
		written, err := writer.WriteChanged(ctx, ov, view.Dir(), opts.outputDir(view.Dir()))
		if err != nil {
			return nil, err
		}
		result.WrittenPaths = written
	}

	result.Status = StatusDone
	return result, nil
}

// validateSubset resolves and checks the requested file subset, logging a
// warning per invalid path. All paths invalid is fatal.
func (r *Runner) validateSubset(opts Options, view *project.View) (map[string]struct{}, []string, error) {
	if len(opts.FileSubset) == 0 {
		return nil, nil, nil
	}

	valid, invalid, err := output.ValidateSubset(opts.FileSubset, view.Dir(), r.host)
	if err != nil {
		return nil, invalid, err
	}

	for _, p := range invalid {
		r.logger.Warn("requested file does not exist, skipping", logging.FieldPath, p)
	}

	subset := make(map[string]struct{}, len(valid))
	for _, p := range valid {
		subset[p] = struct{}{}
	}
	return subset, invalid, nil
}

// applyFixes consumes the enumerator sequentially and records each file's
// patched text in the overlay.
func (r *Runner) applyFixes(
	ctx context.Context,
	view *project.View,
	subset map[string]struct{},
	result *Result,
) error {
	for fr, err := range Enumerate(ctx, view, r.provider, subset, r.logger) {
		if err != nil {
			return fmt.Errorf("fix %s: %w", fr.Path, err)
		}
		result.Stats.FilesConsidered++

		before, ok, err := view.Text(fr.Path)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSource, fr.Path)
		}

		after, err := textedit.Apply(before, fr.Edits)
		if err != nil {
			// Overlapping or out-of-bounds spans mean the provider broke
			// its contract; corrupting output silently would be worse.
			return fmt.Errorf("apply edits to %s: %w", fr.Path, err)
		}

		r.Overlay.Record(fr.Path, before, after)

		outcome := FileOutcome{
			Path:      fr.Path,
			Changed:   !bytes.Equal(before, after),
			EditCount: len(fr.Edits),
			Ambiguous: fr.Candidates > 1,
		}
		result.Outcomes = append(result.Outcomes, outcome)

		result.Stats.EditsApplied += outcome.EditCount
		if outcome.Changed {
			result.Stats.FilesChanged++
		} else {
			result.Stats.FilesSkipped++
		}
		if outcome.Ambiguous {
			result.Stats.AmbiguousFixes++
		}

		r.logger.Debug("applied combined fix",
			logging.FieldPath, fr.Path,
			logging.FieldEditsApplied, outcome.EditCount,
		)
	}

	return nil
}
