package tui

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

// Collector gathers the project request, from arguments when given and
// interactively otherwise.
type Collector struct {
	Options  *config.Options
	FS       system.FileSystem
	Prompter *LinePrompter

	// IsTerminal decides between the wizard and the line prompter in
	// auto mode
	IsTerminal func() bool

	// Wizard runs the full-screen wizard
	Wizard func(ctx context.Context, opts *config.Options, exists ExistsFunc, version string) (*config.ProjectRequest, error)

	// Name and Version are preset from the command line
	Name    string
	Version string

	// Resume allows an existing project directory
	Resume bool
}

// NewCollector creates a collector on the process's standard streams.
func NewCollector(opts *config.Options, fs system.FileSystem) *Collector {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Collector{
		Options:    opts,
		FS:         fs,
		Prompter:   NewLinePrompter(os.Stdin, os.Stdout, os.Stderr),
		IsTerminal: isInteractive,
		Wizard:     RunWizard,
	}
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Confirmer returns the yes/no prompt used outside the wizard.
func (c *Collector) Confirmer() config.Confirmer {
	return c.Prompter
}

// Mode returns the prompt mode that Collect will use.
func (c *Collector) Mode() string {
	switch c.Options.Prompt {
	case config.PromptTUI, config.PromptLine:
		return c.Options.Prompt
	}
	if c.IsTerminal != nil && c.IsTerminal() {
		return config.PromptTUI
	}
	return config.PromptLine
}

// Collect returns a validated request whose project path is free (or, when
// resuming, may already exist).
func (c *Collector) Collect(ctx context.Context) (*config.ProjectRequest, error) {
	if c.Name != "" {
		return c.fromArgs()
	}

	if c.Version != "" {
		if _, err := config.ParseVersion(c.Version); err != nil {
			return nil, err
		}
	}

	if c.Mode() == config.PromptTUI {
		logging.Debug("collecting input with the wizard")
		return c.Wizard(ctx, c.Options, c.exists, c.Version)
	}

	logging.Debug("collecting input line by line")
	name, err := c.Prompter.AskName(ctx, c.Options, c.exists)
	if err != nil {
		return nil, err
	}

	version := c.Version
	if version == "" {
		version, err = c.Prompter.AskVersion(ctx)
		if err != nil {
			return nil, err
		}
	}
	return config.NewProjectRequest(name, version, c.Options)
}

func (c *Collector) fromArgs() (*config.ProjectRequest, error) {
	req, err := config.NewProjectRequest(c.Name, c.Version, c.Options)
	if err != nil {
		return nil, err
	}
	if req.Name != c.Name {
		logging.UserInfo("Formatted '%s' as '%s'", c.Name, req.Name)
	}
	if c.exists(req.Path) {
		return nil, errors.ValidationError(fmt.Sprintf("directory %s already exists; choose another name or pass --resume", req.Path))
	}
	return req, nil
}

func (c *Collector) exists(path string) bool {
	if c.Resume {
		return false
	}
	return c.FS.Exists(path)
}
