package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldProject    = "project"
	FieldWorkingDir = "working_dir"

	// Run configuration fields.
	FieldOutputDir = "output_dir"
	FieldWrite     = "write"
	FieldSubset    = "subset"
	FieldProvider  = "provider"
	FieldFixID     = "fix_id"

	// Statistics fields.
	FieldFilesResolved = "files_resolved"
	FieldFilesChanged  = "files_changed"
	FieldFilesSkipped  = "files_skipped"
	FieldFilesInvalid  = "files_invalid"
	FieldEditsApplied  = "edits_applied"
	FieldCandidates    = "candidates"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
