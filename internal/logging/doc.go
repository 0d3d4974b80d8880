// Package logging provides logging utilities for laravel-maker.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("running rule", "index", i, "name", rule.Name)
//	logging.Warn("hosts file unreadable", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating project %s...", name)
//	logging.UserStep(2, 8, "Scaffolding %s", name)
//	logging.UserSuccess("Project %s created", name)
//	logging.UserWarning("Could not save journal: %v", err)
//	logging.UserError("%v", err)
//
// Output destinations (redirectable with SetUserOutput):
//   - UserInfo, UserSuccess, UserStep: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
