// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	ErrInvalidLimit = errors.New("size limit must be positive")
)

// Opener opens a named file for reading.
type Opener func(name string) (io.ReadCloser, error)

// OSOpener opens files from the operating system filesystem.
func OSOpener(name string) (io.ReadCloser, error) {
	return os.Open(name) // #nosec G304 -- path comes from caller configuration
}

// FSOpener returns an Opener reading from fsys.
// A leading slash is stripped so absolute-looking names resolve against
// the root of fsys, which only accepts unrooted paths.
func FSOpener(fsys fs.FS) Opener {
	return func(name string) (io.ReadCloser, error) {
		return fsys.Open(strings.TrimPrefix(name, "/"))
	}
}

// ReadFileLimited opens name with open and reads at most limit bytes.
// Returns ErrFileTooLarge if the file holds more than limit bytes.
// The file is closed before returning.
func ReadFileLimited(open Opener, name string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	f, err := open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	// Read one extra byte to detect oversize input without a Stat call,
	// which fs.FS implementations are not required to support cheaply.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrFileTooLarge, name, limit)
	}
	return data, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "production" -> false (name)
//   - "./encore.yaml" -> true (relative path)
//   - "/etc/encore/site.yaml" -> true (absolute)
//   - "C:\config\site.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an absolute or
// protocol-relative URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "//")
}
