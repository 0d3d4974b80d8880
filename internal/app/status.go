package app

import (
	"context"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/hosts"
	"github.com/srRodolfo/dev-container/internal/journal"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/provision"
)

// ProjectStatus is what is known about a provisioned (or partly
// provisioned) project.
type ProjectStatus struct {
	Journal        *journal.Journal
	Pending        []provision.Stage
	URL            string
	HostRegistered bool
	PHPRunning     bool
}

// Complete reports whether every stage has run.
func (s *ProjectStatus) Complete() bool {
	return len(s.Pending) == 0
}

// ProjectStatus loads the journal for name and checks the live state of
// the host alias and PHP container. A project without a journal is a
// NotFound error.
func (a *App) ProjectStatus(ctx context.Context, name string, settings *config.Settings) (*ProjectStatus, error) {
	store, err := a.JournalStore()
	if err != nil {
		return nil, err
	}

	j, err := store.Load(config.NormalizeName(name))
	if err != nil {
		return nil, err
	}

	status := &ProjectStatus{
		Journal: j,
		URL:     (&config.ProjectRequest{Host: j.Host}).URL(settings.ServerPort),
	}
	for _, stage := range provision.Stages[1:] {
		if !j.Done(string(stage)) {
			status.Pending = append(status.Pending, stage)
		}
	}

	if data, err := a.FS.ReadFile(a.Options.HostsFile); err == nil {
		_, status.HostRegistered = hosts.HasHost(string(data), j.Host)
	} else {
		logging.Debug("could not read hosts file", "path", a.Options.HostsFile, "error", err)
	}

	if a.Status != nil {
		running, err := a.Status.IsRunning(ctx, settings.PHPContainer)
		if err != nil {
			logging.Debug("status query failed", "container", settings.PHPContainer, "error", err)
		}
		status.PHPRunning = running
	}

	return status, nil
}

// ResetProject forgets the recorded run for name so the next provisioning
// starts from the beginning. Files already created are left alone.
func (a *App) ResetProject(name string) error {
	store, err := a.JournalStore()
	if err != nil {
		return err
	}
	return store.Remove(config.NormalizeName(name))
}
