package main

import (
	"errors"
	"os"

	encore "github.com/alnah/go-encore"
	"github.com/alnah/go-encore/internal/config"
	"github.com/alnah/go-encore/internal/fileutil"
)

// Exit codes for the encore CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitDocument = 4 // Build document unavailable or check failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Build document errors (exit 4). Checked first: a missing document
	// is a build problem, not a plain I/O error.
	if errors.Is(err, encore.ErrDocumentUnavailable) ||
		errors.Is(err, encore.ErrIntegrityMismatch) ||
		errors.Is(err, ErrCheckFailed) {
		return ExitDocument
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, encore.ErrUnsupportedAlgorithm) ||
		errors.Is(err, encore.ErrEmptyTemplate) ||
		errors.Is(err, encore.ErrTemplateParse) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrOutputRequired) ||
		errors.Is(err, ErrUnknownEntry) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrFileTooLarge) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
