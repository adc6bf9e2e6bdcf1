// Package writer exposes sinks for rendered transcripts.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a fully rendered document.
type Sink interface {
	WriteDocument(buf []byte) error
}

// FileWriter writes a document to a filesystem path atomically, so a failed
// render never leaves a partial transcript behind.
type FileWriter struct {
	Path string
	Perm os.FileMode // zero means 0o644
}

// WriteDocument writes buf to the configured path via temp file + rename.
func (w *FileWriter) WriteDocument(buf []byte) error {
	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".qhfkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	// Close before rename
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}
