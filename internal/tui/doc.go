// Package tui collects the project request from the user.
//
// On a terminal the Bubble Tea wizard asks for the project name, then the
// Laravel version, then a confirmation. Elsewhere (pipes, CI, or when
// --prompt=line is set) a line prompter asks the same questions. Both
// reject names whose project directory already exists, so the user can
// pick another name.
//
//	c := tui.NewCollector(opts, nil)
//	req, err := c.Collect(ctx)
//
// The line prompter also answers yes/no questions for other packages
// through config.Confirmer.
package tui
