// Package fs provides file-based storage: Markdown result files and the
// JSON checkpoints of batch runs.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/firescrape"
)

// Ensure Writer implements firescrape.ResultWriter at compile time.
var _ firescrape.ResultWriter = (*Writer)(nil)

// Writer writes result files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
// The directory is created on first write.
func NewWriter(baseDir string) *Writer {
	if baseDir == "" {
		baseDir = "."
	}
	return &Writer{baseDir: baseDir}
}

// Dir returns the directory files are written to.
func (w *Writer) Dir() string {
	return w.baseDir
}

// Write stores content as baseDir/name and returns the path.
func (w *Writer) Write(name, content string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", firescrape.Errorf(firescrape.EINVALID, "invalid file name %q", name)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
