package system

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	makererrors "github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
)

// OSRunner implements Runner with os/exec.
type OSRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSRunner returns a runner wired to the process's own streams.
func NewOSRunner() *OSRunner {
	return &OSRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (ExitResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return finish(name, args, cmd.Run())
}

func (r *OSRunner) RunCapturing(ctx context.Context, name string, args ...string) (ExitResult, string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = &out
	cmd.Stderr = r.Stderr
	res, err := finish(name, args, cmd.Run())
	return res, out.String(), err
}

// finish maps the outcome of cmd.Run onto ExitResult. Only a failure to
// start the program becomes an error.
func finish(name string, args []string, err error) (ExitResult, error) {
	if err == nil {
		logging.Debug("command finished", "cmd", name, "args", args, "code", 0)
		return ExitResult{Success: true, Code: 0, Status: "exit status 0"}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logging.Debug("command failed", "cmd", name, "args", args, "code", exitErr.ExitCode())
		return ExitResult{
			Success: false,
			Code:    exitErr.ExitCode(),
			Status:  exitErr.ProcessState.String(),
		}, nil
	}

	return ExitResult{Code: -1}, makererrors.ProcessLaunch(name, err)
}
