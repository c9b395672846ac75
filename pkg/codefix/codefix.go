// Package codefix defines the boundary to the external fix provider: the
// engine that computes combined code fixes for a file. tsfix never generates
// fixes itself; it only requests, applies, and persists them.
package codefix

import (
	"context"

	"github.com/yaklabco/tsfix/pkg/textedit"
)

// FixMissingTypeAnnotations is the one fix kind tsfix supports: add explicit
// type annotations to exported symbols that rely on inference.
const FixMissingTypeAnnotations = "fixMissingTypeAnnotationOnExports"

// jsxRuntimeModulePattern suppresses auto-import suggestions for JSX runtime
// style modules, which must never be imported explicitly.
const jsxRuntimeModulePattern = "/jsx-runtime$"

// FixOptions is the fixed per-request configuration.
type FixOptions struct {
	// AllowRenameOfImportPath permits the provider to rewrite import paths
	// while fixing. Always false for this tool.
	AllowRenameOfImportPath bool `json:"allowRenameOfImportPath"`

	// ExcludeAutoImportPattern suppresses auto-import suggestions whose
	// module specifier matches the pattern.
	ExcludeAutoImportPattern string `json:"excludeAutoImportPattern,omitempty"`
}

// DefaultFixOptions returns the run configuration used for every request:
// import-path renames disallowed, JSX runtime modules excluded from
// auto-import.
func DefaultFixOptions() FixOptions {
	return FixOptions{
		AllowRenameOfImportPath:  false,
		ExcludeAutoImportPattern: jsxRuntimeModulePattern,
	}
}

// Request asks the provider for the combined fix of one kind across one file.
type Request struct {
	// File is the absolute path of the file to fix.
	File string `json:"file"`

	// FixID identifies the fix kind.
	FixID string `json:"fixId"`

	// Project is the absolute path of the project configuration, so the
	// provider can construct its own compilation of the same unit.
	Project string `json:"project"`

	// Options is the fixed per-request configuration.
	Options FixOptions `json:"options"`
}

// FileChange is one candidate change: the ordered edits for a single file,
// with spans in the coordinates of that file's unmodified text.
type FileChange struct {
	FileName string              `json:"fileName"`
	Edits    []textedit.TextEdit `json:"textChanges"`
}

// CombinedFix is the provider's answer: zero or more candidate changes.
// Zero changes means nothing qualifies in the requested file; more than one
// is not an error, the caller takes the first.
type CombinedFix struct {
	Changes []FileChange `json:"changes"`
}

// Provider computes combined code fixes. Implementations must be
// re-invocable per file without cross-file state, and must report spans
// against the text as the overlay presented it at request time.
type Provider interface {
	GetCombinedFix(ctx context.Context, req Request) (*CombinedFix, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, req Request) (*CombinedFix, error)

// GetCombinedFix implements Provider.
func (f ProviderFunc) GetCombinedFix(ctx context.Context, req Request) (*CombinedFix, error) {
	return f(ctx, req)
}
