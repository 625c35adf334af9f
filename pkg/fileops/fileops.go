// Package fileops provides secure, atomic file operations shared by the EA MCP
// servers and the course CLI. All storage writes in this repository go through
// AtomicWriteFile so a crashed server never leaves a half-written JSON file
// behind.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AtomicWriteFile writes data to path atomically. The data is first written to
// a temporary file in the same directory, synced to disk, and then renamed
// over the destination. The destination either contains the previous content
// or the full new content, never a partial write.
//
// Parameters:
//   - path: Absolute path to the destination file
//   - data: Content to write
//   - perm: File mode for the destination (e.g. 0644)
//
// Returns:
//   - error: Creation, write, sync, or rename errors; the temporary file is
//     removed on any failure
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tempPath := path + ".tmp"
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var writeSuccess bool
	defer func() {
		if !writeSuccess {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	// Sync before rename so the rename never publishes unflushed data
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize file write: %w", err)
	}

	writeSuccess = true
	return nil
}

// EnsureDirectoryExists creates the directory at path (and any parents) if it
// does not already exist. Existing directories are left untouched.
func EnsureDirectoryExists(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

// IsDirEmpty reports whether the directory at path contains no entries.
func IsDirEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}
	return len(entries) == 0, nil
}

// ExpandPath expands a path that starts with "~/" to the user's home
// directory. Paths without the prefix are returned unchanged, as is the
// original path when the home directory cannot be determined.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}

// ValidatePathSecurity performs static validation on a file path before it is
// used for storage or cloning. It rejects empty paths, path traversal
// attempts, and absolute paths that point into reserved system directories.
//
// The function does not touch the filesystem; callers that need write checks
// should stat the path separately.
func ValidatePathSecurity(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	if filepath.IsAbs(cleanPath) && isReservedDirectory(cleanPath) {
		return fmt.Errorf("cannot use system or reserved directories")
	}

	return nil
}

// isReservedDirectory reports whether path is, or is directly inside, a
// well-known system directory that user data must never be written to.
func isReservedDirectory(path string) bool {
	reserved := []string{
		"/bin", "/boot", "/dev", "/etc", "/lib", "/lib64",
		"/proc", "/root", "/run", "/sbin", "/sys", "/usr",
		"/var", "/System", "/Library", "/private",
	}

	clean := filepath.Clean(path)
	for _, dir := range reserved {
		if clean == dir || strings.HasPrefix(clean, dir+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
