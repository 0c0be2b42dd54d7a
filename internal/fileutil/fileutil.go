// Package fileutil writes CLI output files.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to dst with default permissions (0o644).
func WriteFile(dst string, data []byte) error {
	return WriteFileMode(dst, data, 0o644)
}

// WriteFileMode writes data to a temporary file next to dst, verifies the
// written bytes by SHA256, and renames it over dst. dst is never left
// partially written.
func WriteFileMode(dst string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return err
	}

	written, err := os.ReadFile(tmpPath)
	if err != nil {
		return err
	}
	want := sha256.Sum256(data)
	got := sha256.Sum256(written)
	if !bytes.Equal(want[:], got[:]) {
		return fmt.Errorf("write hash mismatch: file corrupted during write")
	}

	return os.Rename(tmpPath, dst)
}
