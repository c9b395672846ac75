// Package overlay provides an in-memory override layer for file content.
//
// A Store maps absolute file paths to the text they have become during a run.
// Every file read in the system is routed through ReadFile, so a fix computed
// against a file and recorded here is visible to any later read of that file
// within the same run, without touching disk.
package overlay

import (
	"bytes"
	"os"
	"sort"
)

// Entry holds both sides of an overridden file.
type Entry struct {
	// Original is the text that was active before the first recorded patch.
	// It is fixed at first-record time.
	Original []byte

	// Current is the text produced by the most recent patch.
	Current []byte
}

// Store is an explicit key-value overlay, passed by reference into every
// component that reads file content. It is owned by a single run and is not
// safe for concurrent use; runs are single-threaded.
type Store struct {
	entries map[string]*Entry
}

// NewStore creates an empty overlay store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Record stores the outcome of a patch for path. On the first record for a
// path, before becomes the entry's Original; later records only advance
// Current.
func (s *Store) Record(path string, before, after []byte) {
	if e, ok := s.entries[path]; ok {
		e.Current = after
		return
	}
	s.entries[path] = &Entry{
		Original: append([]byte(nil), before...),
		Current:  after,
	}
}

// Get returns the entry for path, if present.
func (s *Store) Get(path string) (*Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

// Len returns the number of overridden paths.
func (s *Store) Len() int {
	return len(s.entries)
}

// Paths returns the overridden paths in sorted order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Changed returns the entries whose Current text differs from their
// Original text, keyed by path.
func (s *Store) Changed() map[string]*Entry {
	changed := make(map[string]*Entry)
	for p, e := range s.entries {
		if !bytes.Equal(e.Original, e.Current) {
			changed[p] = e
		}
	}
	return changed
}

// ReadFile is the single read path for the run: it returns the overlay's
// current text when path has an entry and falls back to the real file system
// otherwise.
func (s *Store) ReadFile(path string) ([]byte, error) {
	if e, ok := s.entries[path]; ok {
		return append([]byte(nil), e.Current...), nil
	}
	return os.ReadFile(path)
}
