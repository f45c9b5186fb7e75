package main

import (
	"errors"
	"os"

	htmlindex "github.com/alnah/go-htmlindex"
	"github.com/alnah/go-htmlindex/internal/assets"
	"github.com/alnah/go-htmlindex/internal/config"
	"github.com/alnah/go-htmlindex/internal/fileutil"
)

// Exit codes for the htmlindex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful command
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, manifest, or validation
	ExitIO      = 3 // File not found, permission denied, refused overwrite
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, htmlindex.ErrBrowserConnect) ||
		errors.Is(err, htmlindex.ErrPageCreate) ||
		errors.Is(err, htmlindex.ErrPageLoad) ||
		errors.Is(err, htmlindex.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, htmlindex.ErrEmptyMarkdown) ||
		errors.Is(err, htmlindex.ErrFrontMatter) ||
		errors.Is(err, htmlindex.ErrUnknownHighlightStyle) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrStarterNotFound) ||
		errors.Is(err, assets.ErrIncompleteStarter) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadBody) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, fileutil.ErrFileExists) {
		return ExitIO
	}

	return ExitGeneral
}
