// Package errors provides error handling conventions for the vibery CLI.
//
// This package defines sentinel errors for kit operations, re-exports the
// wrapping helpers from github.com/cockroachdb/errors, and provides an
// ExitError type for CLI exit code handling with exit code constants
// following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrKitNotInstalled) {
//	    // nothing to uninstall
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown kit, invalid flags, configuration)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. [Classify] converts kit operation errors into ExitErrors:
//
//	exitErr := errors.Classify(err)
//	if exitErr.Suggestion != "" {
//	    fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
//	}
//	os.Exit(exitErr.Code)
package errors
