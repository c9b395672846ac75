// Package hostfs abstracts the file-system side effects of a run behind a
// narrow host interface. The patch pipeline itself never touches this
// package; only subset validation and the output writer do.
package hostfs

import (
	"context"
	"io/fs"
	"os"
)

// DefaultFileMode is the permission mode for files the host creates.
const DefaultFileMode fs.FileMode = 0o644

// DefaultDirMode is the permission mode for directories the host creates.
const DefaultDirMode fs.FileMode = 0o755

// Host is the file-system collaborator of a run.
type Host interface {
	// ReadFile returns the content of path from the real file system.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile writes content to path with the given mode.
	WriteFile(ctx context.Context, path string, content []byte, mode fs.FileMode) error

	// Exists reports whether path exists.
	Exists(path string) bool

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
}

// OS is the production Host backed by the operating system.
type OS struct{}

var _ Host = OS{}

// NewOS returns a Host backed by the real file system.
func NewOS() OS {
	return OS{}
}

// ReadFile implements Host.
func (OS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return os.ReadFile(path)
}

// WriteFile implements Host using an atomic temp-file-and-rename write, so a
// failed write never leaves a truncated file behind.
func (OS) WriteFile(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	return writeAtomic(ctx, path, content, mode)
}

// Exists implements Host.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MkdirAll implements Host.
func (OS) MkdirAll(path string) error {
	return os.MkdirAll(path, DefaultDirMode)
}
