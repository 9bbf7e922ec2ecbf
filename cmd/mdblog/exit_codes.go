package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
)

// Exit codes for the mdblog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 130=SIGINT.
const (
	ExitSuccess     = 0   // Blog built
	ExitGeneral     = 1   // General/unexpected error
	ExitUsage       = 2   // Invalid flags, config, or assets
	ExitIO          = 3   // Unreadable source, no posts, unwritable output
	ExitInterrupted = 130 // Canceled by signal
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// I/O errors (exit 3)
	if errors.Is(err, mdblog.ErrReadSource) ||
		errors.Is(err, mdblog.ErrNoPosts) ||
		errors.Is(err, mdblog.ErrWriteOutput) ||
		errors.Is(err, mdblog.ErrListingShell) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/asset errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdblog.ErrInvalidAssetPath) ||
		errors.Is(err, mdblog.ErrStyleNotFound) ||
		errors.Is(err, mdblog.ErrTemplateSetNotFound) ||
		errors.Is(err, mdblog.ErrIncompleteTemplateSet) ||
		errors.Is(err, mdblog.ErrTemplate) ||
		errors.Is(err, mdblog.ErrListingAnchor) ||
		errors.Is(err, mdblog.ErrInvalidDateFormat) ||
		errors.Is(err, mdblog.ErrHighlightStyle) ||
		errors.Is(err, mdblog.ErrInvalidCollision) ||
		errors.Is(err, mdblog.ErrUnsafeClean) {
		return ExitUsage
	}

	return ExitGeneral
}
