package errors

import (
	"errors"
	"fmt"
)

// Exit codes for laravel-maker
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// Kind classifies a MakerError.
type Kind int

const (
	KindIO Kind = iota
	KindInterrupted
	KindValidation
	KindDocker
	KindNotFound
	KindProcessLaunch
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInterrupted:
		return "interrupted"
	case KindValidation:
		return "validation"
	case KindDocker:
		return "docker"
	case KindNotFound:
		return "not-found"
	case KindProcessLaunch:
		return "process-launch"
	default:
		return "unknown"
	}
}

// MakerError is the base error type for laravel-maker
type MakerError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *MakerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MakerError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error
func (e *MakerError) ExitCode() int {
	return ExitGeneralError
}

// New creates a new MakerError
func New(kind Kind, message string) *MakerError {
	return &MakerError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with a MakerError
func Wrap(kind Kind, message string, cause error) *MakerError {
	return &MakerError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// IOError returns an error for filesystem or stream failures
func IOError(message string, cause error) *MakerError {
	return Wrap(KindIO, message, cause)
}

// Interrupted returns an error for an explicit user opt-out
func Interrupted(message string) *MakerError {
	return New(KindInterrupted, message)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *MakerError {
	return New(KindValidation, message)
}

// DockerError returns an error for container runtime failures
func DockerError(message string, cause error) *MakerError {
	return Wrap(KindDocker, message, cause)
}

// NotFound returns an error for a missing directory or file
func NotFound(message string) *MakerError {
	return New(KindNotFound, message)
}

// ProcessLaunch returns an error for a program that could not be started
func ProcessLaunch(name string, cause error) *MakerError {
	return Wrap(KindProcessLaunch, fmt.Sprintf("failed to launch %s", name), cause)
}

// IsKind reports whether err's chain contains a MakerError of the given kind
func IsKind(err error, kind Kind) bool {
	var makerErr *MakerError
	if errors.As(err, &makerErr) {
		return makerErr.Kind == kind
	}
	return false
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var makerErr *MakerError
	if errors.As(err, &makerErr) {
		return makerErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
