package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output functions with status prefixes.
// These write to the user streams directly for CLI output,
// separate from the structured debug logging.

var (
	// Stdout receives UserInfo, UserSuccess and UserStep output.
	Stdout io.Writer = os.Stdout
	// Stderr receives UserWarning and UserError output.
	Stderr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output. Nil writers keep the current value.
func SetUserOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		Stdout = stdout
	}
	if stderr != nil {
		Stderr = stderr
	}
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "✓ "+format+"\n", args...)
}

// UserStep prints a numbered progress line to stdout.
func UserStep(n, total int, format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "[%d/%d] "+format+"\n", append([]interface{}{n, total}, args...)...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "✗ "+format+"\n", args...)
}
