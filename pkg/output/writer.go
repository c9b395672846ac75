package output

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/pkg/hostfs"
	"github.com/yaklabco/tsfix/pkg/overlay"
)

// Writer persists changed overlay entries to the output directory.
type Writer struct {
	host   hostfs.Host
	logger *log.Logger
}

// NewWriter creates a writer over the given host. A nil logger falls back to
// the package default.
func NewWriter(host hostfs.Host, logger *log.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{host: host, logger: logger}
}

// WriteChanged writes every changed entry of the overlay to its mapped
// location under outputDir, creating directories on demand. It returns the
// written output paths in sorted input order.
//
// Callers gate this on the run's write flag: in dry-run mode WriteChanged is
// never invoked and no host write occurs at all.
func (w *Writer) WriteChanged(ctx context.Context, ov *overlay.Store, configDir, outputDir string) ([]string, error) {
	changed := ov.Changed()
	written := make([]string, 0, len(changed))

	for _, path := range ov.Paths() {
		entry, ok := changed[path]
		if !ok {
			continue
		}

		outPath, err := PathFor(path, configDir, outputDir)
		if err != nil {
			return written, fmt.Errorf("map output path: %w", err)
		}

		dir := filepath.Dir(outPath)
		if !w.host.Exists(dir) {
			if err := w.host.MkdirAll(dir); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}

		if err := w.host.WriteFile(ctx, outPath, entry.Current, hostfs.DefaultFileMode); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}

		w.logger.Debug("wrote output file",
			logging.FieldInput, path,
			logging.FieldOutput, outPath,
		)
		written = append(written, outPath)
	}

	return written, nil
}
