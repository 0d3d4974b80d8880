package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
)

// wizardStep identifies the current step.
type wizardStep int

const (
	stepName wizardStep = iota
	stepVersion
	stepCustomVersion
	stepConfirm
)

// ExistsFunc reports whether a project path is already taken.
type ExistsFunc func(path string) bool

// wizardModel drives the project creation wizard.
type wizardModel struct {
	step   wizardStep
	opts   *config.Options
	exists ExistsFunc

	// presetVersion skips the version steps when set
	presetVersion string

	nameInput    textinput.Model
	versionList  list.Model
	versionInput textinput.Model

	errMsg          string
	selectedName    string
	selectedVersion string
	request         *config.ProjectRequest

	width  int
	height int
}

// versionItem implements list.Item for version selection. An empty
// version is the "other" entry.
type versionItem struct {
	version     string
	description string
}

func (v versionItem) Title() string {
	if v.version == "" {
		return "Other..."
	}
	return "Laravel " + v.version
}
func (v versionItem) Description() string { return v.description }
func (v versionItem) FilterValue() string { return v.version }

var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

func newWizardModel(opts *config.Options, exists ExistsFunc, version string) wizardModel {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if exists == nil {
		exists = func(string) bool { return false }
	}

	ni := textinput.New()
	ni.Placeholder = "example-app"
	ni.Focus()
	ni.CharLimit = 64
	ni.Width = 40

	vi := textinput.New()
	vi.Placeholder = strconv.Itoa(config.DefaultLaravelVersion)
	vi.CharLimit = 3
	vi.Width = 10

	return wizardModel{
		step:          stepName,
		opts:          opts,
		exists:        exists,
		presetVersion: version,
		nameInput:     ni,
		versionList:   newVersionList(),
		versionInput:  vi,
	}
}

func newVersionList() list.Model {
	var items []list.Item
	for v := config.DefaultLaravelVersion; v >= config.MinimumLaravelVersion; v-- {
		desc := ""
		switch v {
		case config.DefaultLaravelVersion:
			desc = "Default"
		case config.MinimumLaravelVersion:
			desc = "Oldest supported"
		}
		items = append(items, versionItem{version: strconv.Itoa(v), description: desc})
	}
	items = append(items, versionItem{description: "Type a major version"})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 40, 14)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, request, cmd).
// done=true with a nil request means the wizard was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *config.ProjectRequest, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.versionList.SetWidth(msg.Width - 4)
		return false, nil, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	switch w.step {
	case stepName:
		return w.updateName(msg)
	case stepVersion:
		return w.updateVersion(msg)
	case stepCustomVersion:
		return w.updateCustomVersion(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *config.ProjectRequest, tea.Cmd) {
	w.errMsg = ""
	switch w.step {
	case stepName:
		return true, nil, nil
	case stepVersion:
		w.step = stepName
		w.nameInput.Focus()
		return false, nil, textinput.Blink
	case stepCustomVersion:
		w.step = stepVersion
		w.versionInput.Blur()
		return false, nil, nil
	case stepConfirm:
		if w.presetVersion != "" {
			w.step = stepName
			w.nameInput.Focus()
			return false, nil, textinput.Blink
		}
		w.step = stepVersion
		return false, nil, nil
	}
	return false, nil, nil
}

func (w *wizardModel) updateName(msg tea.Msg) (bool, *config.ProjectRequest, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		raw := strings.TrimSpace(w.nameInput.Value())
		if raw == "" {
			w.errMsg = "The project name cannot be empty."
			return false, nil, nil
		}

		name := config.NormalizeName(raw)
		if err := config.ValidateName(name); err != nil {
			w.errMsg = errorMessage(err)
			return false, nil, nil
		}

		req, err := config.NewProjectRequest(name, "", w.opts)
		if err != nil {
			w.errMsg = errorMessage(err)
			return false, nil, nil
		}
		if w.exists(req.Path) {
			w.errMsg = fmt.Sprintf("Directory %s already exists. Try another name.", req.Path)
			return false, nil, nil
		}

		w.errMsg = ""
		w.selectedName = name
		w.nameInput.SetValue(name)
		w.nameInput.Blur()
		if w.presetVersion != "" {
			return w.selectVersion(w.presetVersion)
		}
		w.step = stepVersion
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateVersion(msg tea.Msg) (bool, *config.ProjectRequest, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		item, ok := w.versionList.SelectedItem().(versionItem)
		if !ok {
			return false, nil, nil
		}
		if item.version == "" {
			w.step = stepCustomVersion
			w.versionInput.Focus()
			return false, nil, textinput.Blink
		}
		return w.selectVersion(item.version)
	}

	var cmd tea.Cmd
	w.versionList, cmd = w.versionList.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateCustomVersion(msg tea.Msg) (bool, *config.ProjectRequest, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		return w.selectVersion(w.versionInput.Value())
	}

	var cmd tea.Cmd
	w.versionInput, cmd = w.versionInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) selectVersion(input string) (bool, *config.ProjectRequest, tea.Cmd) {
	req, err := config.NewProjectRequest(w.selectedName, input, w.opts)
	if err != nil {
		w.errMsg = errorMessage(err)
		return false, nil, nil
	}

	w.errMsg = ""
	w.selectedVersion = req.Version
	w.request = req
	w.versionInput.Blur()
	w.step = stepConfirm
	return false, nil, nil
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *config.ProjectRequest, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, w.request, nil
		case "n":
			w.step = stepName
			w.nameInput.SetValue("")
			w.nameInput.Focus()
			w.versionInput.SetValue("")
			w.versionList.Select(0)
			w.selectedName = ""
			w.selectedVersion = ""
			w.request = nil
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("New Laravel Project"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepName:
		b.WriteString(wizardLabelStyle.Render("Project name:"))
		b.WriteString("\n")
		b.WriteString(w.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Converted to kebab-case. Enter to continue, Esc to quit."))
	case stepVersion:
		b.WriteString(wizardLabelStyle.Render("Laravel version:"))
		b.WriteString("\n")
		b.WriteString(w.versionList.View())
	case stepCustomVersion:
		b.WriteString(wizardLabelStyle.Render("Laravel version:"))
		b.WriteString("\n")
		b.WriteString(w.versionInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render(fmt.Sprintf("Major version only, minimum %d.", config.MinimumLaravelVersion)))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		if w.request != nil {
			b.WriteString(fmt.Sprintf("  Name:    %s\n", wizardValueStyle.Render(w.request.Name)))
			b.WriteString(fmt.Sprintf("  Host:    %s\n", wizardValueStyle.Render(w.request.Host)))
			b.WriteString(fmt.Sprintf("  Path:    %s\n", wizardValueStyle.Render(w.request.Path)))
			b.WriteString(fmt.Sprintf("  Version: %s\n", wizardValueStyle.Render(w.request.Version)))
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to create, n to restart, Esc to go back."))
	}

	if w.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(wizardErrorStyle.Render(w.errMsg))
	}

	return b.String()
}

func (w *wizardModel) progressBar() string {
	steps := []struct {
		num  int
		name string
	}{
		{1, "Name"},
		{2, "Version"},
		{3, "Confirm"},
	}

	current := 1
	switch w.step {
	case stepVersion, stepCustomVersion:
		current = 2
	case stepConfirm:
		current = 3
	}

	var parts []string
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.num, s.name)
		if s.num == current {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

// errorMessage returns the user-facing text of err.
func errorMessage(err error) string {
	var me *errors.MakerError
	if errors.As(err, &me) {
		return me.Message
	}
	return err.Error()
}

// Wizard is the bubbletea program model wrapping the creation wizard.
type Wizard struct {
	model    wizardModel
	result   *config.ProjectRequest
	quitting bool
}

// NewWizard creates a wizard. exists reports taken project paths. A
// non-empty version is used as is and the version step is skipped.
func NewWizard(opts *config.Options, exists ExistsFunc, version string) Wizard {
	return Wizard{model: newWizardModel(opts, exists, version)}
}

func (w Wizard) Init() tea.Cmd {
	return w.model.Init()
}

func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, req, cmd := w.model.Update(msg)
	if done {
		w.result = req
		w.quitting = true
		return w, tea.Quit
	}
	return w, cmd
}

func (w Wizard) View() string {
	if w.quitting {
		return ""
	}
	return w.model.View()
}

// Result returns the confirmed request, or nil if the wizard was cancelled.
func (w Wizard) Result() *config.ProjectRequest {
	return w.result
}

// RunWizard runs the interactive creation wizard.
func RunWizard(ctx context.Context, opts *config.Options, exists ExistsFunc, version string) (*config.ProjectRequest, error) {
	p := tea.NewProgram(NewWizard(opts, exists, version), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Interrupted("project creation cancelled")
		}
		return nil, errors.IOError("wizard failed", err)
	}

	req := final.(Wizard).Result()
	if req == nil {
		return nil, errors.Interrupted("project creation cancelled")
	}
	return req, nil
}
