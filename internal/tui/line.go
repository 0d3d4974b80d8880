package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
)

// LinePrompter asks questions one line at a time. It works on any reader,
// so it is used when stdin is not a terminal and for yes/no questions.
type LinePrompter struct {
	in  *bufio.Reader
	Out io.Writer
	Err io.Writer
}

// NewLinePrompter creates a prompter reading from in.
func NewLinePrompter(in io.Reader, out, errOut io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), Out: out, Err: errOut}
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Interrupted("input cancelled")
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", errors.Interrupted("input closed")
		}
		return "", errors.IOError("failed to read input", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Blank input picks the default.
func (p *LinePrompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "y/N, ENTER=N"
	if defaultYes {
		hint = "Y/n, ENTER=Y"
	}

	for {
		fmt.Fprintf(p.Out, "%s (%s): ", question, hint)
		answer, err := p.readLine(context.Background())
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(p.Err, "Invalid choice '%s'. Enter 'y' or 'n'.\n", answer)
	}
}

// AskName reads a project name until it normalizes to a valid identifier
// whose path is free. When the path is taken the user may try another name
// or give up, which returns an Interrupted error.
func (p *LinePrompter) AskName(ctx context.Context, opts *config.Options, exists ExistsFunc) (string, error) {
	for {
		fmt.Fprint(p.Out, "Project name (e.g. example-app): ")
		raw, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if raw == "" {
			fmt.Fprintln(p.Err, "The project name cannot be empty.")
			continue
		}

		name := config.NormalizeName(raw)
		if err := config.ValidateName(name); err != nil {
			fmt.Fprintf(p.Err, "'%s' does not contain any usable characters. Try again.\n", raw)
			continue
		}
		if name != strings.ToLower(raw) {
			fmt.Fprintf(p.Out, "Formatted '%s' as '%s'.\n", raw, name)
		}

		req, err := config.NewProjectRequest(name, "", opts)
		if err != nil {
			return "", err
		}
		if exists == nil || !exists(req.Path) {
			return name, nil
		}

		fmt.Fprintf(p.Err, "Directory %s already exists.\n", req.Path)
		again, err := p.Confirm("Try another project name?", true)
		if err != nil {
			return "", err
		}
		if !again {
			return "", errors.Interrupted("project creation cancelled")
		}
	}
}

// AskVersion reads a Laravel major version until it is valid.
func (p *LinePrompter) AskVersion(ctx context.Context) (string, error) {
	for {
		fmt.Fprintf(p.Out, "Laravel version (ENTER=%d, minimum %d): ", config.DefaultLaravelVersion, config.MinimumLaravelVersion)
		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		version, err := config.ParseVersion(input)
		if err != nil {
			fmt.Fprintln(p.Err, errorMessage(err))
			continue
		}
		if input == "" {
			fmt.Fprintf(p.Out, "Using the default: %s.\n", version)
		}
		return version, nil
	}
}

// Ensure LinePrompter implements Confirmer
var _ config.Confirmer = (*LinePrompter)(nil)
