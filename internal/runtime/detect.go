package runtime

import (
	"fmt"
	"os/exec"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

// RuntimeType identifies which container CLI to use
type RuntimeType string

const (
	RuntimeDocker RuntimeType = "docker"
	RuntimePodman RuntimeType = "podman"
	RuntimeAuto   RuntimeType = "auto"
)

// StatusBackend selects how container status is queried
type StatusBackend string

const (
	StatusCLI StatusBackend = "cli"
	StatusAPI StatusBackend = "api"
)

// Config holds runtime configuration
type Config struct {
	// Type specifies which CLI to use (or "auto" for auto-detection)
	Type RuntimeType

	// Status selects the CLI or the Engine API for status queries
	Status StatusBackend

	// DockerHost overrides DOCKER_HOST for the Engine API backend
	DockerHost string
}

// DefaultConfig returns the default runtime configuration
func DefaultConfig() *Config {
	return &Config{
		Type:   RuntimeDocker,
		Status: StatusCLI,
	}
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// Detect determines which container CLI is available on the system.
// Docker is preferred since the environment is driven by `docker compose`.
func Detect() (RuntimeType, error) {
	if _, err := lookPath("docker"); err == nil {
		logging.Debug("detected docker")
		return RuntimeDocker, nil
	}

	if _, err := lookPath("podman"); err == nil {
		logging.Debug("detected podman")
		return RuntimePodman, nil
	}

	return "", errors.NotFound("no supported container runtime found (tried: docker, podman)")
}

// New creates a DockerRuntime based on the configuration.
// If Type is RuntimeAuto, it auto-detects the CLI.
func New(cfg *Config, runner system.Runner) (*DockerRuntime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	runtimeType := cfg.Type
	if runtimeType == "" {
		runtimeType = RuntimeDocker
	}
	if runtimeType == RuntimeAuto {
		detected, err := Detect()
		if err != nil {
			return nil, err
		}
		runtimeType = detected
	}

	logging.Debug("creating runtime", "type", runtimeType)

	switch runtimeType {
	case RuntimeDocker, RuntimePodman:
		return NewDockerRuntime(string(runtimeType), runner), nil
	default:
		return nil, errors.ValidationError(fmt.Sprintf("unknown runtime type: %s", runtimeType))
	}
}

// NewStatusChecker returns the status backend selected by cfg. The CLI
// backend reuses rt.
func NewStatusChecker(cfg *Config, rt *DockerRuntime) (StatusChecker, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Status {
	case "", StatusCLI:
		return rt, nil
	case StatusAPI:
		return NewEngineStatus(cfg.DockerHost)
	default:
		return nil, errors.ValidationError(fmt.Sprintf("unknown status backend: %s", cfg.Status))
	}
}

// Available returns a list of available CLIs on this system
func Available() []RuntimeType {
	var available []RuntimeType

	if _, err := lookPath("docker"); err == nil {
		available = append(available, RuntimeDocker)
	}

	if _, err := lookPath("podman"); err == nil {
		available = append(available, RuntimePodman)
	}

	return available
}
