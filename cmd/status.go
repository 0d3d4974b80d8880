package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/journal"
	"github.com/srRodolfo/dev-container/internal/logging"
)

var statusReset bool

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show the provisioning progress of a project",
	Long: `Shows which stages of a project have completed and checks the host
alias and PHP container. With --reset the recorded progress is removed so
the next 'new' run starts from the beginning.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusReset, "reset", false, "Forget the recorded progress of the project")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if statusReset {
		if err := a.ResetProject(args[0]); err != nil {
			return err
		}
		logging.UserSuccess("Cleared recorded progress for %s", config.NormalizeName(args[0]))
		return nil
	}

	settings, err := a.Resolver(nil).Resolve()
	if err != nil {
		return err
	}

	status, err := a.ProjectStatus(cmd.Context(), args[0], settings)
	if err != nil {
		return err
	}

	j := status.Journal
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project: %s\n", j.Name)
	fmt.Fprintf(out, "Laravel: %s\n", j.Version)
	fmt.Fprintf(out, "Path: %s\n", j.Path)
	fmt.Fprintf(out, "URL: %s\n", status.URL)
	fmt.Fprintf(out, "Run: %s (started %s)\n", j.RunID, j.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Stages:")
	for _, stage := range j.Completed {
		fmt.Fprintf(out, "  ✓ %s\n", stage)
	}
	for _, stage := range status.Pending {
		fmt.Fprintf(out, "  · %s\n", stage)
	}
	if last := lastError(j); last != nil {
		fmt.Fprintf(out, "Last error (%s): %s\n", last.Stage, last.Details)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Checks:")
	fmt.Fprintf(out, "  Host alias: %s\n", boolStatus(status.HostRegistered))
	fmt.Fprintf(out, "  PHP container: %s\n", boolStatus(status.PHPRunning))

	if status.Complete() {
		fmt.Fprintln(out, "\nAll stages complete.")
	} else {
		fmt.Fprintf(out, "\n%d stages pending; run 'laravel-maker new %s --resume' to continue.\n", len(status.Pending), j.Name)
	}
	return nil
}

// lastError returns the most recent error event, unless a later stage
// completed after it.
func lastError(j *journal.Journal) *journal.Event {
	for i := len(j.Events) - 1; i >= 0; i-- {
		switch j.Events[i].Type {
		case journal.EventError:
			return &j.Events[i]
		case journal.EventStage:
			return nil
		}
	}
	return nil
}

func boolStatus(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}
