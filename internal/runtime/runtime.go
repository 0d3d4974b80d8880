// Package runtime defines the container runtime interface for laravel-maker.
// The pipeline talks to containers only through this abstraction, which
// keeps the Docker CLI behind a mockable seam.
package runtime

import (
	"context"

	"github.com/srRodolfo/dev-container/internal/system"
)

// ContainerStatus represents the state of a container
type ContainerStatus string

const (
	StatusRunning  ContainerStatus = "running"
	StatusStopped  ContainerStatus = "stopped"
	StatusNotFound ContainerStatus = "not-found"
	StatusUnknown  ContainerStatus = "unknown"
)

// ContainerInfo holds information about a container
type ContainerInfo struct {
	Name   string
	ID     string
	Image  string
	Status ContainerStatus
}

// ExecOptions holds options for executing a command in a container
type ExecOptions struct {
	// WorkingDir is entered with `cd` before the command runs
	WorkingDir string
}

// StatusChecker answers whether a named container is running.
type StatusChecker interface {
	IsRunning(ctx context.Context, name string) (bool, error)
}

// Runtime is the set of container operations the provisioning pipeline needs.
type Runtime interface {
	StatusChecker

	// Name returns the runtime identifier (e.g., "docker")
	Name() string

	// ComposeUp starts every service of the compose environment in the background
	ComposeUp(ctx context.Context) error

	// ComposeRestart restarts one compose service
	ComposeRestart(ctx context.Context, service string) error

	// Exec runs a command inside a container with inherited streams.
	// A non-zero exit is reported through the result, not the error.
	Exec(ctx context.Context, container string, command []string, opts ExecOptions) (system.ExitResult, error)

	// ExecCapture runs a command inside a container and captures its stdout
	ExecCapture(ctx context.Context, container string, command []string, opts ExecOptions) (system.ExitResult, string, error)
}
