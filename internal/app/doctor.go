package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/health"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/runtime"
)

// CheckState is the outcome of a single doctor check.
type CheckState string

const (
	CheckOK   CheckState = "ok"
	CheckWarn CheckState = "warn"
	CheckFail CheckState = "fail"
)

// Check is one line of the doctor report.
type Check struct {
	Name   string
	State  CheckState
	Detail string
}

// DoctorReport lists the preflight checks in the order they ran.
type DoctorReport struct {
	Checks []Check
}

func (r *DoctorReport) add(name string, state CheckState, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, State: state, Detail: fmt.Sprintf(format, args...)})
}

// Failed reports whether any check failed.
func (r *DoctorReport) Failed() bool {
	for _, c := range r.Checks {
		if c.State == CheckFail {
			return true
		}
	}
	return false
}

// Doctor checks that the environment can provision a project without
// changing anything.
func (a *App) Doctor(ctx context.Context, settings *config.Settings) *DoctorReport {
	report := &DoctorReport{}

	a.checkRuntime(ctx, report)

	root, err := a.EnvRoot()
	if err != nil {
		report.add("environment root", CheckFail, "%v", err)
	} else {
		report.add("environment root", CheckOK, "%s", root)
		a.checkCompose(ctx, report, root, settings)
	}

	if a.Status != nil {
		result := health.Check(ctx, a.Status, settings.PHPContainer, settings.NodeContainer)
		state := CheckOK
		if result.Status() != health.StatusHealthy {
			state = CheckWarn
		}
		var parts []string
		for _, name := range []string{settings.PHPContainer, settings.NodeContainer} {
			switch {
			case result.Errors[name] != nil:
				parts = append(parts, name+" unknown")
			case result.Containers[name]:
				parts = append(parts, name+" running")
			default:
				parts = append(parts, name+" stopped")
			}
		}
		report.add("containers", state, "%s (%s)", result.Status(), strings.Join(parts, ", "))
	}

	if _, err := a.FS.ReadFile(a.Options.HostsFile); err != nil {
		report.add("hosts file", CheckWarn, "cannot read %s: %v", a.Options.HostsFile, err)
	} else {
		report.add("hosts file", CheckOK, "%s", a.Options.HostsFile)
	}

	return report
}

func (a *App) checkRuntime(ctx context.Context, report *DoctorReport) {
	rt, err := a.RequireRuntime()
	if err != nil {
		available := runtime.Available()
		report.add("container runtime", CheckFail, "%v (available: %v)", err, available)
		return
	}
	report.add("container runtime", CheckOK, "%s", rt.Name())

	if engine, ok := a.Status.(*runtime.EngineStatus); ok {
		version, err := engine.Ping(ctx)
		if err != nil {
			report.add("engine api", CheckFail, "%v", err)
		} else {
			report.add("engine api", CheckOK, "API version %s", version)
		}
	}
}

func (a *App) checkCompose(ctx context.Context, report *DoctorReport, root string, settings *config.Settings) {
	project, err := a.ComposeInspector().Inspect(ctx, root, a.composeEnv(settings))
	if err != nil {
		report.add("compose file", CheckFail, "%v", err)
		return
	}
	report.add("compose file", CheckOK, "%s (%d services)", project.File, len(project.Services))

	for _, container := range []string{settings.PHPContainer, settings.NodeContainer} {
		if svc, ok := project.ServiceByContainer(container); ok {
			report.add("container "+container, CheckOK, "service %s", svc.Name)
		} else {
			report.add("container "+container, CheckFail, "no service declares container_name %s", container)
		}
	}

	if _, ok := project.Service(a.Options.ProxyService); ok {
		report.add("proxy service", CheckOK, "%s", a.Options.ProxyService)
	} else {
		report.add("proxy service", CheckFail, "no %s service in %s", a.Options.ProxyService, project.File)
	}

	if _, ok := project.Service(settings.DBHost); !ok {
		report.add("database service", CheckWarn, "DB_HOST %s is not a service of %s", settings.DBHost, project.File)
	} else {
		report.add("database service", CheckOK, "%s", settings.DBHost)
	}
}

// Preflight warns when the compose file does not declare the containers
// the pipeline will use. It never fails.
func (a *App) Preflight(ctx context.Context, settings *config.Settings) {
	root, err := a.EnvRoot()
	if err != nil {
		logging.Debug("skipping compose preflight", "error", err)
		return
	}

	project, err := a.ComposeInspector().Inspect(ctx, root, a.composeEnv(settings))
	if err != nil {
		logging.Debug("skipping compose preflight", "error", err)
		return
	}

	for _, container := range []string{settings.PHPContainer, settings.NodeContainer} {
		if _, ok := project.ServiceByContainer(container); !ok {
			logging.UserWarning("%s does not declare a container named %s", project.File, container)
		}
	}
}

// composeEnv returns the variables used to interpolate the compose file:
// the dotenv file overlaid with the resolved settings.
func (a *App) composeEnv(settings *config.Settings) map[string]string {
	env := map[string]string{}
	if settings.EnvPath != "" {
		if data, err := a.FS.ReadFile(settings.EnvPath); err == nil {
			if values, err := godotenv.Unmarshal(string(data)); err == nil {
				env = values
			}
		}
	}

	env[config.KeyContainerName] = settings.ContainerName
	env[config.KeyServerPort] = strconv.Itoa(int(settings.ServerPort))
	env[config.KeyDBPort] = strconv.Itoa(int(settings.DBPort))
	env[config.KeyDBRootPassword] = settings.DBRootPassword
	env[config.KeyDBHost] = settings.DBHost
	return env
}

