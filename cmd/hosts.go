package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/logging"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts <host>",
	Short: "Add a host alias to the hosts file",
	Long: `Maps a host to the loopback address in /etc/hosts, asking for sudo.
A bare project name is expanded with the configured top-level domain.
Nothing is written if the host is already present.`,
	Args: cobra.ExactArgs(1),
	RunE: runHosts,
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}

func runHosts(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	host := strings.ToLower(strings.TrimSpace(args[0]))
	if !strings.Contains(host, ".") {
		name := config.NormalizeName(host)
		if err := config.ValidateName(name); err != nil {
			return err
		}
		host = name + "." + a.Options.TLD
	}

	added, err := a.HostsRegistrar().EnsureAlias(cmd.Context(), host)
	if err != nil {
		return err
	}

	if added {
		logging.UserSuccess("Added %s to %s", host, a.Options.HostsFile)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already in %s\n", host, a.Options.HostsFile)
	}
	return nil
}
