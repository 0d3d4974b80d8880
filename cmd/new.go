package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/provision"
)

var (
	newVersion string
	newResume  bool
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a Laravel project",
	Long: `Creates a Laravel project in the development environment.

The name is normalized to kebab-case and becomes both the directory under
the sources folder and the host <name>.test. Without a name the project
name and version are asked for interactively.

Every completed stage is recorded in .laravel-maker/<name>.toml. After a
failure, run the same command with --resume to skip the stages that
already succeeded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	addNewFlags(newCmd)
	rootCmd.AddCommand(newCmd)
}

func addNewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&newVersion, "version", "", fmt.Sprintf("Laravel major version (default %d, minimum %d)", config.DefaultLaravelVersion, config.MinimumLaravelVersion))
	cmd.Flags().BoolVar(&newResume, "resume", false, "Continue an interrupted run, skipping completed stages")
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	collector := a.Collector()
	collector.Version = newVersion
	collector.Resume = newResume
	if len(args) > 0 {
		collector.Name = args[0]
	}

	settings, err := a.Resolver(collector.Confirmer()).Resolve()
	if err != nil {
		return err
	}

	req, err := collector.Collect(ctx)
	if err != nil {
		return err
	}

	a.Preflight(ctx, settings)

	p, err := a.Pipeline(newResume)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, req, settings)
	if err != nil {
		return err
	}

	printBanner(cmd.OutOrStdout(), req, result)
	return nil
}

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 2)
	bannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func printBanner(w io.Writer, req *config.ProjectRequest, result *provision.Result) {
	body := fmt.Sprintf("%s\n\nProject:  %s\nLaravel:  %s\nURL:      %s",
		bannerTitleStyle.Render("Project created"), req.Path, req.Version, result.URL)
	if len(result.Skipped) > 0 {
		body += fmt.Sprintf("\nResumed:  %d stages skipped", len(result.Skipped))
	}
	fmt.Fprintln(w, bannerStyle.Render(body))
}
