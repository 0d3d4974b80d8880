package health

import (
	"context"
	"fmt"
	"time"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/runtime"
)

const (
	// DefaultAttempts is the number of status polls after starting the environment
	DefaultAttempts = 3

	// DefaultInterval is the wait before each status poll
	DefaultInterval = 3 * time.Second
)

// EnvironmentStarter starts every service of the environment.
type EnvironmentStarter interface {
	ComposeUp(ctx context.Context) error
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poller brings a container service to the running state.
type Poller struct {
	Status   runtime.StatusChecker
	Starter  EnvironmentStarter
	Attempts int
	Interval time.Duration
	Sleep    SleepFunc
}

// NewPoller creates a poller with the default attempt budget.
func NewPoller(status runtime.StatusChecker, starter EnvironmentStarter) *Poller {
	return &Poller{
		Status:   status,
		Starter:  starter,
		Attempts: DefaultAttempts,
		Interval: DefaultInterval,
		Sleep:    Sleep,
	}
}

// EnsureReady returns once service is running. If the first status query
// shows it stopped (or fails), the environment is started and polled up to
// Attempts times, Interval apart.
func (p *Poller) EnsureReady(ctx context.Context, service string) error {
	running, err := p.Status.IsRunning(ctx, service)
	if err != nil {
		logging.Warn("initial status query failed, treating service as stopped", "service", service, "error", err)
	} else if running {
		logging.Debug("service already running", "service", service)
		return nil
	}

	logging.UserInfo("Container %s is not running. Starting the environment...", service)
	if err := p.Starter.ComposeUp(ctx); err != nil {
		return errors.DockerError("failed to start the environment", err)
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 1; attempt <= p.Attempts; attempt++ {
		logging.Debug("waiting for service", "service", service, "attempt", attempt, "of", p.Attempts)
		if err := sleep(ctx, p.Interval); err != nil {
			return errors.Wrap(errors.KindInterrupted, fmt.Sprintf("stopped waiting for %s", service), err)
		}

		running, err := p.Status.IsRunning(ctx, service)
		if err != nil {
			return errors.DockerError(fmt.Sprintf("status query for %s failed", service), err)
		}
		if running {
			logging.UserSuccess("Container %s is running", service)
			return nil
		}
	}

	return errors.DockerError(fmt.Sprintf("service %s failed to start after %d attempts", service, p.Attempts), nil)
}

// Status summarizes the environment containers.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusStopped  Status = "stopped"
)

// CheckResult reports which environment containers are running.
type CheckResult struct {
	Containers map[string]bool
	Errors     map[string]error
}

// Status reduces the result to a single health value.
func (r *CheckResult) Status() Status {
	up := 0
	for _, running := range r.Containers {
		if running {
			up++
		}
	}
	switch {
	case up == 0:
		return StatusStopped
	case up == len(r.Containers):
		return StatusHealthy
	default:
		return StatusDegraded
	}
}

// Check queries each container once without starting anything.
func Check(ctx context.Context, status runtime.StatusChecker, containers ...string) *CheckResult {
	result := &CheckResult{
		Containers: make(map[string]bool, len(containers)),
		Errors:     make(map[string]error),
	}
	for _, name := range containers {
		running, err := status.IsRunning(ctx, name)
		if err != nil {
			result.Errors[name] = err
		}
		result.Containers[name] = running
	}
	return result
}
