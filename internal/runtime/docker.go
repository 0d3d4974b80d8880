package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

// DockerRuntime implements Runtime by shelling out to the docker CLI.
type DockerRuntime struct {
	// Command is the container command to use (docker or podman)
	Command string

	// Runner executes the CLI
	Runner system.Runner

	// IsTerminal reports whether stdin is a terminal; exec gets -it when it is
	IsTerminal func() bool
}

// NewDockerRuntime creates a runtime for the given CLI command.
func NewDockerRuntime(command string, runner system.Runner) *DockerRuntime {
	if command == "" {
		command = "docker"
	}
	if runner == nil {
		runner = system.DefaultRunner()
	}
	return &DockerRuntime{
		Command:    command,
		Runner:     runner,
		IsTerminal: stdinIsTerminal,
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Name returns the runtime identifier
func (r *DockerRuntime) Name() string {
	return r.Command
}

// IsRunning checks if a container is currently running. Any container id on
// stdout of `ps -q -f name=<name>` counts as running.
func (r *DockerRuntime) IsRunning(ctx context.Context, name string) (bool, error) {
	res, out, err := r.Runner.RunCapturing(ctx, r.Command, "ps", "-q", "-f", "name="+name)
	if err != nil {
		return false, errors.DockerError(fmt.Sprintf("failed to query status of %s", name), err)
	}
	if !res.Success {
		return false, errors.DockerError(fmt.Sprintf("status query for %s failed (%s)", name, res.Status), nil)
	}

	running := strings.TrimSpace(out) != ""
	logging.Debug("container status", "container", name, "running", running)
	return running, nil
}

// ComposeUp starts the compose environment in detached mode
func (r *DockerRuntime) ComposeUp(ctx context.Context) error {
	return r.compose(ctx, "up", "-d")
}

// ComposeRestart restarts a single compose service
func (r *DockerRuntime) ComposeRestart(ctx context.Context, service string) error {
	return r.compose(ctx, "restart", service)
}

func (r *DockerRuntime) compose(ctx context.Context, args ...string) error {
	full := append([]string{"compose"}, args...)
	logging.Debug("running compose", "args", full)

	res, err := r.Runner.Run(ctx, r.Command, full...)
	if err != nil {
		return errors.DockerError(fmt.Sprintf("failed to run '%s %s'", r.Command, strings.Join(full, " ")), err)
	}
	if !res.Success {
		return errors.DockerError(fmt.Sprintf("'%s %s' failed (%s)", r.Command, strings.Join(full, " "), res.Status), nil)
	}
	return nil
}

// Exec executes a command inside a container
func (r *DockerRuntime) Exec(ctx context.Context, container string, command []string, opts ExecOptions) (system.ExitResult, error) {
	args := r.execArgs(container, command, opts, true)
	logging.Debug("exec in container", "container", container, "command", command, "dir", opts.WorkingDir)

	res, err := r.Runner.Run(ctx, r.Command, args...)
	if err != nil {
		return res, errors.DockerError(fmt.Sprintf("failed to exec in container '%s'", container), err)
	}
	return res, nil
}

// ExecCapture executes a command inside a container and returns its stdout
func (r *DockerRuntime) ExecCapture(ctx context.Context, container string, command []string, opts ExecOptions) (system.ExitResult, string, error) {
	// Captured output must not be mixed with a pseudo-terminal's line discipline.
	args := r.execArgs(container, command, opts, false)
	logging.Debug("exec in container (captured)", "container", container, "command", command, "dir", opts.WorkingDir)

	res, out, err := r.Runner.RunCapturing(ctx, r.Command, args...)
	if err != nil {
		return res, "", errors.DockerError(fmt.Sprintf("failed to exec in container '%s'", container), err)
	}
	return res, out, nil
}

func (r *DockerRuntime) execArgs(container string, command []string, opts ExecOptions, allowTTY bool) []string {
	args := []string{"exec"}
	if allowTTY && r.IsTerminal != nil && r.IsTerminal() {
		args = append(args, "-it")
	} else {
		args = append(args, "-i")
	}
	args = append(args, container)
	return append(args, InDir(opts.WorkingDir, command)...)
}

// InDir wraps command so that it runs from dir. Commands without a
// directory are returned unchanged.
func InDir(dir string, command []string) []string {
	if dir == "" {
		return command
	}
	return []string{"sh", "-c", fmt.Sprintf("cd %s && %s", shellquote.Join(dir), JoinScript(command))}
}

// JoinScript renders argv as a shell command line. A single element is
// treated as a ready-made script.
func JoinScript(command []string) string {
	if len(command) == 1 {
		return command[0]
	}
	return shellquote.Join(command...)
}

// Ensure DockerRuntime implements Runtime
var _ Runtime = (*DockerRuntime)(nil)
