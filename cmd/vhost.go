package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/srRodolfo/dev-container/internal/config"
)

var vhostCmd = &cobra.Command{
	Use:   "vhost <name>",
	Short: "Write the virtual host file for a project",
	Long: `Writes (or rewrites) the Apache virtual host for a project without
touching the containers. The web server must be restarted to pick it up.`,
	Args: cobra.ExactArgs(1),
	RunE: runVhost,
}

func init() {
	rootCmd.AddCommand(vhostCmd)
}

func runVhost(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := config.NewProjectRequest(args[0], strconv.Itoa(config.DefaultLaravelVersion), a.Options)
	if err != nil {
		return err
	}

	path, err := a.VhostWriter().Write(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
	return nil
}
