package main

import (
	"errors"
	"os"

	terse "github.com/alnah/go-terse"
	"github.com/alnah/go-terse/internal/config"
)

// Exit codes for the terse CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or source structure
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for err. It relies on errors.Is, so
// callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, terse.ErrBrowserConnect) ||
		errors.Is(err, terse.ErrPageCreate) ||
		errors.Is(err, terse.ErrPageLoad) ||
		errors.Is(err, terse.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage, config, and source errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, terse.ErrStructure) ||
		errors.Is(err, terse.ErrEmptySource) ||
		errors.Is(err, terse.ErrInvalidIndentWidth) ||
		errors.Is(err, terse.ErrUnknownHighlightStyle) ||
		errors.Is(err, terse.ErrInvalidPageSize) ||
		errors.Is(err, terse.ErrInvalidOrientation) ||
		errors.Is(err, terse.ErrInvalidMargin) ||
		errors.Is(err, terse.ErrStyleNotFound) ||
		errors.Is(err, terse.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
