package runtime

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
)

// engineAPI is the subset of the Docker SDK client used here.
type engineAPI interface {
	Ping(ctx context.Context) (types.Ping, error)
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	Close() error
}

// EngineStatus answers status queries through the Docker Engine API
// instead of the CLI.
type EngineStatus struct {
	api engineAPI
}

// NewEngineStatus connects using DOCKER_HOST and friends, or host when set.
func NewEngineStatus(host string) (*EngineStatus, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, errors.DockerError("failed to create docker client", err)
	}
	return &EngineStatus{api: cli}, nil
}

// Ping validates connectivity to the Docker daemon and returns its API version.
func (e *EngineStatus) Ping(ctx context.Context) (string, error) {
	ping, err := e.api.Ping(ctx)
	if err != nil {
		return "", errors.DockerError("docker daemon unreachable", err)
	}
	if ping.APIVersion == "" {
		return "", errors.DockerError("docker ping returned empty API version", nil)
	}
	return ping.APIVersion, nil
}

// IsRunning reports whether a running container matches the name filter.
// Matching follows the CLI's `ps -f name=` semantics.
func (e *EngineStatus) IsRunning(ctx context.Context, name string) (bool, error) {
	list, err := e.list(ctx, name)
	if err != nil {
		return false, err
	}
	logging.Debug("container status (api)", "container", name, "matches", len(list))
	return len(list) > 0, nil
}

func (e *EngineStatus) list(ctx context.Context, name string) ([]types.Container, error) {
	list, err := e.api.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return nil, errors.DockerError(fmt.Sprintf("failed to list containers matching %s", name), err)
	}
	return list, nil
}

// Close releases resources held by the Docker client.
func (e *EngineStatus) Close() error {
	if e.api == nil {
		return nil
	}
	return e.api.Close()
}

var _ StatusChecker = (*EngineStatus)(nil)
