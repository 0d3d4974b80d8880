package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/generator"
	"github.com/srRodolfo/dev-container/internal/health"
	"github.com/srRodolfo/dev-container/internal/hosts"
	"github.com/srRodolfo/dev-container/internal/journal"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/patch"
	"github.com/srRodolfo/dev-container/internal/runtime"
)

const (
	// EnvFile is the framework config file patched after scaffolding
	EnvFile = ".env"

	// ViteConfigFile is the asset-build config patched to listen on all interfaces
	ViteConfigFile = "vite.config.js"
)

// Readiness brings a container to the running state.
type Readiness interface {
	EnsureReady(ctx context.Context, service string) error
}

// ConfigPatcher edits files inside a container.
type ConfigPatcher interface {
	ApplyRules(ctx context.Context, container, workdir, file string, rules []patch.Rule) error
	Verify(ctx context.Context, container, workdir, file string, rules []patch.Rule) error
}

// VhostWriter writes the virtual host for a project.
type VhostWriter interface {
	Write(req *config.ProjectRequest) (string, error)
}

// AliasRegistrar makes a host name resolve locally.
type AliasRegistrar interface {
	EnsureAlias(ctx context.Context, host string) (bool, error)
}

// JournalStore persists provisioning progress.
type JournalStore interface {
	Load(name string) (*journal.Journal, error)
	Save(j *journal.Journal) error
}

// Pipeline provisions a project end to end. Stages run strictly in order;
// the first failure aborts the run and nothing already done is undone.
type Pipeline struct {
	Runtime   runtime.Runtime
	Readiness Readiness
	Patcher   ConfigPatcher
	Vhosts    VhostWriter
	Hosts     AliasRegistrar

	// Journal is optional. Without it progress is not persisted and
	// Resume has no effect.
	Journal JournalStore

	ProxyService string
	SettleDelay  time.Duration
	VerifyEnv    bool

	// Resume skips stages a previous run of the same request completed
	Resume bool

	Sleep health.SleepFunc
}

// New creates a pipeline whose collaborators all go through rt.
func New(rt runtime.Runtime, opts *config.Options) *Pipeline {
	if opts == nil {
		opts = config.DefaultOptions()
	}

	poller := health.NewPoller(rt, rt)
	poller.Attempts = opts.PollAttempts
	poller.Interval = opts.PollInterval

	registrar := hosts.NewRegistrar(nil, nil)
	registrar.Path = opts.HostsFile
	registrar.IP = opts.HostsIP

	return &Pipeline{
		Runtime:      rt,
		Readiness:    poller,
		Patcher:      patch.New(rt),
		Vhosts:       generator.NewVhostWriter(nil, opts),
		Hosts:        registrar,
		ProxyService: opts.ProxyService,
		SettleDelay:  opts.SettleDelay,
		VerifyEnv:    opts.VerifyEnv,
		Sleep:        health.Sleep,
	}
}

// Result describes a finished run.
type Result struct {
	RunID      string
	URL        string
	VhostPath  string
	AliasAdded bool
	Ran        []Stage
	Skipped    []Stage
}

type step struct {
	stage Stage
	title string
	// always steps run even when resuming past them
	always bool
	run    func(ctx context.Context) error
}

// Run provisions req using settings.
func (p *Pipeline) Run(ctx context.Context, req *config.ProjectRequest, settings *config.Settings) (*Result, error) {
	j, err := p.openJournal(req)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: j.RunID, URL: req.URL(settings.ServerPort)}
	steps := p.steps(req, settings, result)

	for i, s := range steps {
		if p.Resume && !s.always && j.Done(string(s.stage)) {
			logging.UserInfo("Skipping %s (already done)", s.title)
			result.Skipped = append(result.Skipped, s.stage)
			continue
		}

		logging.UserStep(i+1, len(steps), "%s", s.title)
		logging.Debug("running stage", "stage", s.stage, "project", req.Name, "run", j.RunID)

		if err := s.run(ctx); err != nil {
			j.Record(journal.EventError, string(s.stage), err.Error())
			p.saveJournal(j)
			return nil, err
		}

		j.MarkDone(string(s.stage))
		p.saveJournal(j)
		result.Ran = append(result.Ran, s.stage)
	}

	return result, nil
}

func (p *Pipeline) steps(req *config.ProjectRequest, settings *config.Settings, result *Result) []step {
	dir := req.ContainerDir()
	php := settings.PHPContainer
	node := settings.NodeContainer

	return []step{
		{
			stage:  StageContainerReady,
			title:  fmt.Sprintf("Checking container %s", php),
			always: true,
			run: func(ctx context.Context) error {
				return p.Readiness.EnsureReady(ctx, php)
			},
		},
		{
			stage: StageProjectScaffolded,
			title: fmt.Sprintf("Creating Laravel %s project %s", req.Version, req.Name),
			run: func(ctx context.Context) error {
				return p.exec(ctx, php, config.ContainerWebRoot,
					"composer", "create-project", "laravel/laravel", req.Name, req.Version)
			},
		},
		{
			stage: StageConfigPatched,
			title: "Configuring " + EnvFile,
			run: func(ctx context.Context) error {
				rules := patch.LaravelEnvRules(req, settings)
				if err := p.Patcher.ApplyRules(ctx, php, dir, EnvFile, rules); err != nil {
					return err
				}
				if p.VerifyEnv {
					return p.Patcher.Verify(ctx, php, dir, EnvFile, rules)
				}
				return nil
			},
		},
		{
			stage: StageDependenciesInstalled,
			title: "Installing dependencies",
			run: func(ctx context.Context) error {
				commands := []struct {
					container string
					argv      []string
				}{
					{php, []string{"php", "artisan", "config:clear"}},
					{php, []string{"php", "artisan", "migrate", "--force"}},
					{php, []string{"composer", "update"}},
					{node, []string{"npm", "install"}},
				}
				for _, c := range commands {
					if err := p.exec(ctx, c.container, dir, c.argv...); err != nil {
						return err
					}
				}
				return p.Patcher.ApplyRules(ctx, php, dir, ViteConfigFile, []patch.Rule{patch.ViteServerRule()})
			},
		},
		{
			stage: StageVhostWritten,
			title: "Writing virtual host",
			run: func(ctx context.Context) error {
				path, err := p.Vhosts.Write(req)
				if err != nil {
					return err
				}
				result.VhostPath = path
				logging.UserSuccess("Virtual host written to %s", path)
				return nil
			},
		},
		{
			stage: StageHostAliasRegistered,
			title: "Registering " + req.Host,
			run: func(ctx context.Context) error {
				added, err := p.Hosts.EnsureAlias(ctx, req.Host)
				result.AliasAdded = added
				return err
			},
		},
		{
			stage: StageProxyRestarted,
			title: fmt.Sprintf("Restarting %s", p.ProxyService),
			run:   p.restartProxy,
		},
	}
}

// exec runs argv in container from dir and turns any failure into a
// DockerError.
func (p *Pipeline) exec(ctx context.Context, container, dir string, argv ...string) error {
	res, err := p.Runtime.Exec(ctx, container, argv, runtime.ExecOptions{WorkingDir: dir})
	line := runtime.JoinScript(argv)
	if err != nil {
		return dockerError(fmt.Sprintf("'%s' could not run in %s", line, container), err)
	}
	if !res.Success {
		return errors.DockerError(fmt.Sprintf("'%s' failed in %s (%s)", line, container, res.Status), nil)
	}
	return nil
}

func (p *Pipeline) restartProxy(ctx context.Context) error {
	if err := p.Runtime.ComposeRestart(ctx, p.ProxyService); err != nil {
		return dockerError(fmt.Sprintf("failed to restart %s", p.ProxyService), err)
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = health.Sleep
	}
	if err := sleep(ctx, p.SettleDelay); err != nil {
		return errors.Wrap(errors.KindInterrupted, fmt.Sprintf("interrupted while %s restarts", p.ProxyService), err)
	}
	return nil
}

// dockerError keeps errors that are already classified and wraps the rest.
func dockerError(message string, err error) error {
	var me *errors.MakerError
	if errors.As(err, &me) {
		return err
	}
	return errors.DockerError(message, err)
}

func (p *Pipeline) openJournal(req *config.ProjectRequest) (*journal.Journal, error) {
	if p.Journal == nil || !p.Resume {
		return journal.New(req), nil
	}

	j, err := p.Journal.Load(req.Name)
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			logging.UserInfo("No previous run recorded for %s, starting from the beginning", req.Name)
			return journal.New(req), nil
		}
		return nil, err
	}

	if !j.Matches(req) {
		return nil, errors.ValidationError(fmt.Sprintf(
			"the recorded run for %s used version %s at %s; remove the journal or start a new project",
			j.Name, j.Version, j.Path))
	}
	for _, done := range j.Completed {
		if !Stage(done).Valid() {
			return nil, errors.ValidationError(fmt.Sprintf(
				"the recorded run for %s lists unknown stage %q; remove the journal with 'laravel-maker status %s --reset'",
				j.Name, done, j.Name))
		}
	}

	logging.UserInfo("Resuming run %s (%d stages done)", j.RunID, len(j.Completed))
	j.Record(journal.EventResume, "", "")
	return j, nil
}

func (p *Pipeline) saveJournal(j *journal.Journal) {
	if p.Journal == nil {
		return
	}
	if err := p.Journal.Save(j); err != nil {
		logging.UserWarning("Could not save progress: %v", err)
	}
}
