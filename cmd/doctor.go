package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srRodolfo/dev-container/internal/app"
	"github.com/srRodolfo/dev-container/internal/errors"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can create projects",
	Long: `Runs the checks a project creation depends on without changing anything
in the containers:

  - a container CLI (and the Engine API when selected) is usable
  - the environment root and compose file are found
  - the compose file declares the PHP and node containers and the proxy
  - the PHP and node containers are running
  - the hosts file is readable`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	settings, err := a.Resolver(nil).Resolve()
	if err != nil {
		return err
	}

	report := a.Doctor(cmd.Context(), settings)

	out := cmd.OutOrStdout()
	for _, c := range report.Checks {
		fmt.Fprintf(out, "%s %-30s %s\n", stateSymbol(c.State), c.Name, c.Detail)
	}

	if report.Failed() {
		return errors.ValidationError("some checks failed")
	}
	return nil
}

func stateSymbol(s app.CheckState) string {
	switch s {
	case app.CheckOK:
		return "✓"
	case app.CheckWarn:
		return "⚠"
	default:
		return "✗"
	}
}
