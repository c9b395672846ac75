package hostfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mem is an in-memory Host for tests. It records every write, which makes
// the dry-run guarantee (no writes at all) directly observable.
type Mem struct {
	files map[string][]byte
	dirs  map[string]bool

	// Writes lists the paths passed to WriteFile, in call order.
	Writes []string
}

var _ Host = (*Mem)(nil)

// NewMem returns an empty in-memory host.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Seed stores content for path without recording a write.
func (m *Mem) Seed(path string, content []byte) {
	m.files[path] = append([]byte(nil), content...)
	for dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
}

// ReadFile implements Host.
func (m *Mem) ReadFile(_ context.Context, path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), content...), nil
}

// WriteFile implements Host.
func (m *Mem) WriteFile(_ context.Context, path string, content []byte, _ fs.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != string(filepath.Separator) && !m.dirs[dir] {
		return fmt.Errorf("write %s: directory %s does not exist", path, dir)
	}
	m.files[path] = append([]byte(nil), content...)
	m.Writes = append(m.Writes, path)
	return nil
}

// Exists implements Host.
func (m *Mem) Exists(path string) bool {
	if _, ok := m.files[path]; ok {
		return true
	}
	return m.dirs[path]
}

// MkdirAll implements Host.
func (m *Mem) MkdirAll(path string) error {
	path = filepath.Clean(path)
	parts := strings.Split(path, string(filepath.Separator))
	cur := ""
	for _, part := range parts {
		if part == "" {
			cur = string(filepath.Separator)
			continue
		}
		cur = filepath.Join(cur, part)
		m.dirs[cur] = true
	}
	return nil
}

// Content returns the stored content for path, if any.
func (m *Mem) Content(path string) ([]byte, bool) {
	content, ok := m.files[path]
	return content, ok
}

// Files returns the stored paths in sorted order.
func (m *Mem) Files() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
