// Package runtime wraps the container engine for laravel-maker.
//
// DockerRuntime drives the docker (or podman) CLI through a system.Runner:
//   - IsRunning: `ps -q -f name=<name>`, non-empty output means running
//   - ComposeUp, ComposeRestart: `compose up -d`, `compose restart <svc>`
//   - Exec, ExecCapture: `exec -it|-i <container> ...`, with an optional
//     working directory entered through `sh -c "cd <dir> && ..."`
//
// Exec allocates a TTY only when stdin is a terminal.
//
// EngineStatus is an alternative StatusChecker backed by the Docker Engine
// API. NewStatusChecker picks one based on Config.Status.
//
// # Mock Runtime
//
// For testing, use NewMockRuntime() to create a mock implementation that can
// be configured with scripted status answers and exec outcomes, and used to
// verify the calls made.
package runtime
