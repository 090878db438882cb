package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultStateDir is the default location for cudaprep state files
	DefaultStateDir = "/var/lib/cudaprep"
	// DefaultDirPermissions is the default permission for created directories
	DefaultDirPermissions = 0o750
)

// StateDir returns the state directory from environment or the default.
// It returns an absolute path when possible.
func StateDir() string {
	if env := os.Getenv("CUDAPREP_STATE_DIR"); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
		return env
	}
	return DefaultStateDir
}

// EnsureDir creates a directory (and parents) if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// AtomicWriteFile writes data to a file atomically by first writing to a temp
// file and then renaming it to the target path. Repeated writes with the same
// data leave the file byte-identical, which is what makes callers idempotent.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("failed to rename file: %w (temp file left at %s)", err, tmpPath)
		}
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
