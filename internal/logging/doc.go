// Package logging provides structured logging for the vibery CLI using slog.
//
// The package supports text and JSON output formats, verbosity-derived log
// levels, a context carrier for the active logger, and helpers for testing.
//
// Logging is diagnostic output. Installer progress that the user is meant to
// read (copied files, merged hooks, skipped files) is written by the report
// package instead.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("resolved kit", "dir", dir)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	inst := installer.New(ws, src, installer.WithLogger(logging.ForTest(t)))
package logging
