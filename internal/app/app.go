package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/srRodolfo/dev-container/internal/compose"
	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/generator"
	"github.com/srRodolfo/dev-container/internal/health"
	"github.com/srRodolfo/dev-container/internal/hosts"
	"github.com/srRodolfo/dev-container/internal/journal"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/provision"
	"github.com/srRodolfo/dev-container/internal/runtime"
	"github.com/srRodolfo/dev-container/internal/system"
	"github.com/srRodolfo/dev-container/internal/tui"
)

// RootDirs are searched, in order, for the environment root.
var RootDirs = []string{".", ".."}

// App holds the application dependencies
type App struct {
	// Options are the tool's own settings
	Options *config.Options

	// FS is the host filesystem
	FS system.FileSystem

	// Runner launches host processes
	Runner system.Runner

	// Runtime is the container runtime
	Runtime runtime.Runtime

	// Status answers container status queries. Defaults to Runtime.
	Status runtime.StatusChecker

	// LookupEnv reads the process environment overriding dotenv values.
	// Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// runtimeErr records why Runtime could not be created
	runtimeErr error
}

// Option is a function that configures the App
type Option func(*App)

// WithOptions sets the tool options
func WithOptions(opts *config.Options) Option {
	return func(a *App) {
		a.Options = opts
	}
}

// WithFS sets a custom filesystem
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithRunner sets a custom process runner
func WithRunner(r system.Runner) Option {
	return func(a *App) {
		a.Runner = r
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithStatus sets a custom status backend
func WithStatus(s runtime.StatusChecker) Option {
	return func(a *App) {
		a.Status = s
	}
}

// WithLookupEnv sets how process environment overrides are read
func WithLookupEnv(lookup func(key string) (string, bool)) Option {
	return func(a *App) {
		a.LookupEnv = lookup
	}
}

// New creates a new App with the given options.
// If runtime is not provided via WithRuntime, it is built from Options.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Options == nil {
		app.Options = config.DefaultOptions()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Runner == nil {
		app.Runner = system.DefaultRunner()
	}
	if app.LookupEnv == nil {
		app.LookupEnv = os.LookupEnv
	}

	cfg := app.runtimeConfig()

	if app.Runtime == nil {
		rt, err := runtime.New(cfg, app.Runner)
		if err != nil {
			logging.Debug("failed to initialize runtime", "error", err)
			app.runtimeErr = err
		} else {
			app.Runtime = rt
		}
	}

	if app.Status == nil && app.Runtime != nil {
		app.Status = app.Runtime
		if docker, ok := app.Runtime.(*runtime.DockerRuntime); ok {
			status, err := runtime.NewStatusChecker(cfg, docker)
			if err != nil {
				logging.Warn("falling back to the CLI status backend", "error", err)
			} else {
				app.Status = status
			}
		}
	}

	return app
}

func (a *App) runtimeConfig() *runtime.Config {
	return &runtime.Config{
		Type:       runtime.RuntimeType(a.Options.Runtime),
		Status:     runtime.StatusBackend(a.Options.StatusBackend),
		DockerHost: a.Options.DockerHost,
	}
}

// RequireRuntime returns the runtime or the reason there is none.
func (a *App) RequireRuntime() (runtime.Runtime, error) {
	if a.Runtime != nil {
		return a.Runtime, nil
	}
	if a.runtimeErr != nil {
		return nil, a.runtimeErr
	}
	return nil, errors.NotFound("no container runtime configured")
}

// Close releases the status backend, if it holds a connection.
func (a *App) Close() error {
	if c, ok := a.Status.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Resolver returns the dotenv settings resolver.
func (a *App) Resolver(confirm config.Confirmer) *config.Resolver {
	r := config.NewResolver(a.FS, confirm)
	r.LookupEnv = a.LookupEnv
	return r
}

// Collector returns the input collector.
func (a *App) Collector() *tui.Collector {
	return tui.NewCollector(a.Options, a.FS)
}

// EnvRoot returns the directory holding the environment's docker folder.
func (a *App) EnvRoot() (string, error) {
	return generator.FindRoot(a.FS, RootDirs, a.Options.RootMarker)
}

// JournalStore returns the journal store under the environment root.
func (a *App) JournalStore() (*journal.Store, error) {
	root, err := a.EnvRoot()
	if err != nil {
		return nil, err
	}
	return journal.NewStore(a.FS, filepath.Join(root, a.Options.JournalDir)), nil
}

// VhostWriter returns the virtual host writer.
func (a *App) VhostWriter() *generator.VhostWriter {
	w := generator.NewVhostWriter(a.FS, a.Options)
	w.RootDirs = RootDirs
	return w
}

// HostsRegistrar returns the hosts file registrar.
func (a *App) HostsRegistrar() *hosts.Registrar {
	r := hosts.NewRegistrar(a.FS, a.Runner)
	r.Path = a.Options.HostsFile
	r.IP = a.Options.HostsIP
	return r
}

// ComposeInspector returns the compose file reader.
func (a *App) ComposeInspector() *compose.Inspector {
	return compose.NewInspector(a.FS)
}

// Pipeline assembles the provisioning pipeline. A missing environment root
// only disables the journal; the vhost stage reports it later.
func (a *App) Pipeline(resume bool) (*provision.Pipeline, error) {
	rt, err := a.RequireRuntime()
	if err != nil {
		return nil, err
	}

	p := provision.New(rt, a.Options)

	poller := health.NewPoller(a.Status, rt)
	poller.Attempts = a.Options.PollAttempts
	poller.Interval = a.Options.PollInterval
	p.Readiness = poller

	p.Vhosts = a.VhostWriter()
	p.Hosts = a.HostsRegistrar()
	p.Resume = resume

	if store, err := a.JournalStore(); err != nil {
		logging.UserWarning("Progress will not be recorded: %v", err)
		if resume {
			return nil, err
		}
	} else {
		p.Journal = store
	}

	return p, nil
}
