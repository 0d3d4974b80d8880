package patch

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/runtime"
	"github.com/srRodolfo/dev-container/internal/system"
)

// Executor runs commands inside a container.
type Executor interface {
	Exec(ctx context.Context, container string, command []string, opts runtime.ExecOptions) (system.ExitResult, error)
	ExecCapture(ctx context.Context, container string, command []string, opts runtime.ExecOptions) (system.ExitResult, string, error)
}

// Patcher edits files inside a container with sed.
type Patcher struct {
	Exec Executor
}

// New creates a Patcher.
func New(exec Executor) *Patcher {
	return &Patcher{Exec: exec}
}

// ApplyRules runs each rule against file, from workdir, in order. The first
// failing rule stops the run; rules already applied stay applied.
func (p *Patcher) ApplyRules(ctx context.Context, container, workdir, file string, rules []Rule) error {
	opts := runtime.ExecOptions{WorkingDir: workdir}

	for i, rule := range rules {
		logging.Debug("applying rule", "index", i+1, "name", rule.Name, "file", file, "container", container)

		res, err := p.Exec.Exec(ctx, container, []string{"sed", "-i", rule.Script, file}, opts)
		if err != nil {
			return errors.DockerError(fmt.Sprintf("rule %d (%s) on %s could not run", i+1, rule, file), err)
		}
		if !res.Success {
			return errors.DockerError(fmt.Sprintf("rule %d (%s) on %s failed (%s)", i+1, rule, file, res.Status), nil)
		}
	}

	return nil
}

// Verify reads file back and checks that every assignment rule holds.
func (p *Patcher) Verify(ctx context.Context, container, workdir, file string, rules []Rule) error {
	res, out, err := p.Exec.ExecCapture(ctx, container, []string{"cat", file}, runtime.ExecOptions{WorkingDir: workdir})
	if err != nil {
		return errors.DockerError(fmt.Sprintf("failed to read %s for verification", file), err)
	}
	if !res.Success {
		return errors.DockerError(fmt.Sprintf("failed to read %s for verification (%s)", file, res.Status), nil)
	}

	values, err := godotenv.Unmarshal(out)
	if err != nil {
		return errors.DockerError(fmt.Sprintf("%s is not valid dotenv after patching", file), err)
	}

	for i, rule := range rules {
		if !rule.IsAssignment() {
			continue
		}
		got, ok := values[rule.Key]
		if !ok {
			return errors.DockerError(fmt.Sprintf("rule %d (%s) left %s unset in %s", i+1, rule.Name, rule.Key, file), nil)
		}
		if got != rule.Value {
			return errors.DockerError(fmt.Sprintf("rule %d (%s): %s is %q, want %q", i+1, rule.Name, rule.Key, got, rule.Value), nil)
		}
	}

	logging.Debug("verified patched file", "file", file, "rules", len(rules))
	return nil
}
