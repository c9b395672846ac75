package batch

// StatusDone is the terminal status string of a successful run. Fatal
// failures surface as errors instead and never produce a status.
const StatusDone = "Done"

// FileOutcome records what happened to one enumerated file.
type FileOutcome struct {
	// Path is the absolute path of the source file.
	Path string

	// Changed is true when applying the fix produced different text.
	Changed bool

	// EditCount is the number of edits applied to this file.
	EditCount int

	// Ambiguous is true when the provider offered more than one candidate
	// change and the first was taken.
	Ambiguous bool
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesResolved is the size of the compilation view's file list.
	FilesResolved int

	// FilesConsidered is the number of files the provider returned a
	// combined fix for. Filtered files and files with no applicable fix
	// are absent from the sequence and not counted.
	FilesConsidered int

	// FilesChanged is the number of files whose text changed.
	FilesChanged int

	// FilesSkipped counts files whose fix applied cleanly but produced no
	// textual change.
	FilesSkipped int

	// EditsApplied is the total edit count across all files.
	EditsApplied int

	// AmbiguousFixes counts files where the first of several candidate
	// changes was taken.
	AmbiguousFixes int
}

// Result is the overall outcome of a run.
type Result struct {
	// Outcomes holds one entry per file that yielded a fix, in enumeration
	// order.
	Outcomes []FileOutcome

	// InvalidPaths lists requested subset paths that failed validation
	// (absolute). The run proceeded without them.
	InvalidPaths []string

	// WrittenPaths lists the output files persisted by the write phase, or
	// nil in dry-run mode.
	WrittenPaths []string

	// Stats aggregates counts for the run.
	Stats Stats

	// Status is the terminal status string, StatusDone on success.
	Status string
}

// ChangedPaths returns the source paths that changed, in enumeration order.
func (r *Result) ChangedPaths() []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.Changed {
			paths = append(paths, o.Path)
		}
	}
	return paths
}
