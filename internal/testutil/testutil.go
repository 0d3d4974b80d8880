package testutil

import (
	"bytes"
	"testing"

	"github.com/srRodolfo/dev-container/internal/app"
	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/journal"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/runtime"
	"github.com/srRodolfo/dev-container/internal/system"
)

// TestEnv is a mocked development environment: an environment root with
// the docker folder, compose file, dotenv file and hosts file, a mock
// runtime and a mock process runner.
type TestEnv struct {
	T       *testing.T
	FS      *system.MockFS
	Runner  *system.MockRunner
	Runtime *runtime.MockRuntime
	Options *config.Options
	App     *app.App

	// Stdout and Stderr capture user-facing output
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// NewTestEnv creates a test environment seeded from the fixtures. User
// output is captured until the test ends.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := logging.Stdout, logging.Stderr
	logging.SetUserOutput(stdout, stderr)
	t.Cleanup(func() { logging.SetUserOutput(oldOut, oldErr) })

	opts := config.DefaultOptions()

	fs := system.NewMockFS()
	fs.AddDir(opts.RootMarker)
	fs.AddDir(opts.VhostsDir)
	fs.AddFile(config.EnvFile, MustFixture(EnvFixture), 0644)
	fs.AddFile(config.ExampleEnvFile, MustFixture(ExampleEnvFixture), 0644)
	fs.AddFile(ComposeFixture, MustFixture(ComposeFixture), 0644)
	fs.AddFile(opts.HostsFile, []byte("127.0.0.1 localhost\n"), 0644)

	runner := system.NewMockRunner()
	rt := runtime.NewMockRuntime()

	return &TestEnv{
		T:       t,
		FS:      fs,
		Runner:  runner,
		Runtime: rt,
		Options: opts,
		App: app.New(
			app.WithOptions(opts),
			app.WithFS(fs),
			app.WithRunner(runner),
			app.WithRuntime(rt),
			app.WithLookupEnv(NoEnv),
		),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// NoEnv is a LookupEnv that finds nothing, so settings come from the
// dotenv file alone.
func NoEnv(string) (string, bool) {
	return "", false
}

// Settings resolves the environment's dotenv file, ignoring the process
// environment.
func (e *TestEnv) Settings() *config.Settings {
	e.T.Helper()

	settings, err := e.App.Resolver(nil).Resolve()
	if err != nil {
		e.T.Fatalf("Failed to resolve settings: %v", err)
	}
	return settings
}

// StartContainers marks the PHP and node containers of settings as running.
func (e *TestEnv) StartContainers(settings *config.Settings) {
	e.Runtime.AddContainer(settings.PHPContainer, runtime.StatusRunning)
	e.Runtime.AddContainer(settings.NodeContainer, runtime.StatusRunning)
}

// AddJournal saves j in the environment's journal store.
func (e *TestEnv) AddJournal(j *journal.Journal) {
	e.T.Helper()

	store, err := e.App.JournalStore()
	if err != nil {
		e.T.Fatalf("Failed to open journal store: %v", err)
	}
	if err := store.Save(j); err != nil {
		e.T.Fatalf("Failed to save journal: %v", err)
	}
}

// GetJournal loads the journal for name, or nil if there is none.
func (e *TestEnv) GetJournal(name string) *journal.Journal {
	e.T.Helper()

	store, err := e.App.JournalStore()
	if err != nil {
		return nil
	}
	j, err := store.Load(name)
	if err != nil {
		return nil
	}
	return j
}

// Request builds a project request with the environment's options.
func (e *TestEnv) Request(name, version string) *config.ProjectRequest {
	e.T.Helper()

	req, err := config.NewProjectRequest(name, version, e.Options)
	if err != nil {
		e.T.Fatalf("Invalid request %q: %v", name, err)
	}
	return req
}
