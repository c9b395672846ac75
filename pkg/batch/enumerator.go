package batch

import (
	"context"
	"iter"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/pkg/codefix"
	"github.com/yaklabco/tsfix/pkg/project"
	"github.com/yaklabco/tsfix/pkg/textedit"
)

// dependencyDirName is the path segment that marks third-party code. The
// check is segment-literal and slash-normalized, not OS-specific.
const dependencyDirName = "node_modules"

// FixResult pairs a file with the ordered edit list of its combined fix.
// Files with no qualifying edits never appear in the sequence.
type FixResult struct {
	// Path is the absolute path of the file the edits apply to.
	Path string

	// Edits is the first candidate change's edit list, spans in the
	// coordinates of the file's current (overlay-visible) text.
	Edits []textedit.TextEdit

	// Candidates is the number of candidate changes the provider offered;
	// values above one mean the first was taken.
	Candidates int
}

// Enumerate produces a lazy, finite, single-pass sequence of FixResult over
// the view's files, in the view's enumeration order. The sequence is not
// restartable: each iteration issues fresh provider requests.
//
// Eligibility filtering, in order and short-circuiting:
//  1. files under a node_modules path segment are skipped;
//  2. declaration-only files are skipped;
//  3. with a non-empty subset, files outside it are skipped.
//
// A provider error or context cancellation is yielded as the error half of
// the pair and ends the sequence.
func Enumerate(
	ctx context.Context,
	view *project.View,
	provider codefix.Provider,
	subset map[string]struct{},
	logger *log.Logger,
) iter.Seq2[FixResult, error] {
	if logger == nil {
		logger = logging.Default()
	}

	return func(yield func(FixResult, error) bool) {
		for _, path := range view.Files() {
			if err := ctx.Err(); err != nil {
				yield(FixResult{Path: path}, err)
				return
			}

			if !eligible(path, subset) {
				continue
			}

			req := codefix.Request{
				File:    path,
				FixID:   codefix.FixMissingTypeAnnotations,
				Project: view.ConfigPath(),
				Options: codefix.DefaultFixOptions(),
			}

			fix, err := provider.GetCombinedFix(ctx, req)
			if err != nil {
				yield(FixResult{Path: path}, err)
				return
			}

			if fix == nil || len(fix.Changes) == 0 {
				logger.Debug("no applicable fix", logging.FieldPath, path)
				continue
			}

			if len(fix.Changes) > 1 {
				// Not an error: first candidate wins, but leave a trace.
				logger.Warn("provider returned multiple candidate changes, taking the first",
					logging.FieldPath, path,
					logging.FieldCandidates, len(fix.Changes),
				)
			}

			first := fix.Changes[0]
			if len(first.Edits) == 0 {
				logger.Debug("fix has no edits", logging.FieldPath, path)
				continue
			}

			result := FixResult{
				Path:       path,
				Edits:      first.Edits,
				Candidates: len(fix.Changes),
			}
			if !yield(result, nil) {
				return
			}
		}
	}
}

// eligible applies the enumeration filters to one file path.
func eligible(path string, subset map[string]struct{}) bool {
	if underDependencyDir(path) {
		return false
	}
	if isDeclarationFile(path) {
		return false
	}
	if len(subset) > 0 {
		if _, ok := subset[filepath.Clean(path)]; !ok {
			return false
		}
	}
	return true
}

// underDependencyDir reports whether any path segment is literally the
// dependency directory name.
func underDependencyDir(path string) bool {
	for seg := range strings.SplitSeq(filepath.ToSlash(path), "/") {
		if seg == dependencyDirName {
			return true
		}
	}
	return false
}

// isDeclarationFile reports whether path is a declaration-only source file.
func isDeclarationFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".d.ts") ||
		strings.HasSuffix(lower, ".d.mts") ||
		strings.HasSuffix(lower, ".d.cts")
}
