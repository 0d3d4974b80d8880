// Package errors provides typed errors with exit codes for laravel-maker.
//
// # Error Types
//
// MakerError is the base error type. It carries the failure category (Kind),
// a user-facing message and an optional wrapped cause:
//
//	type MakerError struct {
//	    Kind    Kind   // Failure category
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Kinds
//
//	KindIO            // filesystem or stream failure
//	KindInterrupted   // the user opted out at a prompt
//	KindValidation    // malformed input or a failed privilege escalation
//	KindDocker        // container runtime or in-container command failure
//	KindNotFound      // a required directory or file could not be located
//	KindProcessLaunch // an external program could not be started
//
// # Exit Codes
//
// Every failure exits with ExitGeneralError (1); success exits with 0.
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
