// Package output writes generated files to disk.
//
// Every file is written with github.com/natefinch/atomic (temp file in the
// same directory, then rename), so a concurrent reader such as a bundler in
// watch mode sees either the old contents or the new ones, never a partial
// file.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// File is one output path and the bytes destined for it.
type File struct {
	Path string
	Data []byte
}

// FileMode is the permission given to files WriteFile creates. An existing
// file keeps its own mode.
const FileMode os.FileMode = 0o644

// WriteFile writes data to path atomically, creating parent directories
// if they don't exist.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	created := !Exists(path)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// atomic creates its temp file 0600 and only copies the mode of a file
	// it replaces.
	if created {
		if err := os.Chmod(path, FileMode); err != nil {
			return fmt.Errorf("failed to set mode on %s: %w", path, err)
		}
	}
	return nil
}

// WriteAll writes files in order and stops at the first failure.
//
// Callers render everything before calling WriteAll. The returned error
// names the failing path; files before it have already been replaced.
func WriteAll(files []File) error {
	for _, f := range files {
		if err := WriteFile(f.Path, f.Data); err != nil {
			return err
		}
	}
	return nil
}

// Status describes how an existing file compares with freshly rendered bytes.
type Status string

const (
	// StatusUpToDate means the file exists and matches.
	StatusUpToDate Status = "up-to-date"

	// StatusStale means the file exists but differs.
	StatusStale Status = "stale"

	// StatusMissing means the file does not exist.
	StatusMissing Status = "missing"
)

// Compare reports whether the file at path already holds want.
func Compare(path string, want []byte) (Status, error) {
	got, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if bytes.Equal(got, want) {
		return StatusUpToDate, nil
	}
	return StatusStale, nil
}

// Exists reports whether path exists. Errors other than not-exist count as
// existing so callers never overwrite something they could not inspect.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
