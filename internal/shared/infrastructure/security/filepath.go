// Package security validates user-supplied file paths.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned for an empty path.
var ErrEmptyPath = errors.New("file path cannot be empty")

// forbiddenChars are shell metacharacters never accepted in a path.
const forbiddenChars = ";&|$`(){}<>!\n\r"

// ValidateFilePath cleans path, makes it absolute and resolves symlinks.
// Paths that do not exist yet are returned cleaned.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if i := strings.IndexAny(path, forbiddenChars); i >= 0 {
		return "", fmt.Errorf("file path contains forbidden character %q: %s", path[i], path)
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolved, nil
}

// SafeWriteFile validates path, creates its parent directory and writes
// data with owner-only permissions.
func SafeWriteFile(path string, data []byte) (string, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	// #nosec G306 - path is validated above
	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return "", err
	}
	return cleanPath, nil
}
