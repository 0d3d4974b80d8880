package runtime

import (
	"context"
	"fmt"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"

	"github.com/srRodolfo/dev-container/internal/errors"
)

type fakeEngine struct {
	containers []types.Container
	listErr    error
	ping       types.Ping
	pingErr    error
	lastOpts   container.ListOptions
}

func (f *fakeEngine) Ping(ctx context.Context) (types.Ping, error) {
	return f.ping, f.pingErr
}

func (f *fakeEngine) ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error) {
	f.lastOpts = options
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []types.Container
	for _, c := range f.containers {
		if !options.All && c.State != "running" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeEngine) Close() error { return nil }

func TestEngineStatus_IsRunning(t *testing.T) {
	fake := &fakeEngine{containers: []types.Container{
		{ID: "abc", Names: []string{"/dev_container_php"}, State: "running"},
		{ID: "def", Names: []string{"/dev_container_node"}, State: "exited"},
	}}
	e := &EngineStatus{api: fake}

	running, err := e.IsRunning(context.Background(), "dev_container_php")
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if !running {
		t.Error("php container should be running")
	}
	if got := fake.lastOpts.Filters.Get("name"); len(got) != 1 || got[0] != "dev_container_php" {
		t.Errorf("name filter = %v", got)
	}
}

func TestEngineStatus_ListError(t *testing.T) {
	e := &EngineStatus{api: &fakeEngine{listErr: fmt.Errorf("connection refused")}}

	_, err := e.IsRunning(context.Background(), "php")
	if !errors.IsKind(err, errors.KindDocker) {
		t.Errorf("error = %v, want docker error", err)
	}
}

func TestEngineStatus_Ping(t *testing.T) {
	e := &EngineStatus{api: &fakeEngine{ping: types.Ping{APIVersion: "1.45"}}}
	v, err := e.Ping(context.Background())
	if err != nil || v != "1.45" {
		t.Errorf("Ping() = %q, %v", v, err)
	}

	e = &EngineStatus{api: &fakeEngine{}}
	if _, err := e.Ping(context.Background()); err == nil {
		t.Error("empty API version should be an error")
	}
}
