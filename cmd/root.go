package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srRodolfo/dev-container/internal/app"
	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/logging"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool

	// v is rebuilt on every execution by initConfig
	v = viper.New()

	// newApp builds the App from the loaded options
	newApp = func(opts *config.Options) *app.App {
		return app.New(app.WithOptions(opts))
	}
)

var rootCmd = &cobra.Command{
	Use:   "laravel-maker [name]",
	Short: "Create Laravel projects in the Docker development environment",
	Long: `laravel-maker scaffolds a Laravel project inside the PHP container of the
development environment and makes it reachable from the host:

  1. Start the containers if the PHP container is not running
  2. composer create-project into the shared sources directory
  3. Point the project's .env at the environment's database
  4. Run migrations and install composer and npm dependencies
  5. Write an Apache virtual host for <name>.test
  6. Add <name>.test to /etc/hosts (asks for sudo)
  7. Restart the web server

Without arguments the project name and version are asked for
interactively. Running laravel-maker with no subcommand is the same as
running "laravel-maker new".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if used := v.ConfigFileUsed(); used != "" {
			logging.Debug("using config file", "path", used)
		}
	},
	RunE: runNew,
}

// Execute runs the command line. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.laravel-maker.yaml or $HOME/.laravel-maker.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	flags.String("prompt", config.PromptAuto, "Input mode: auto, tui or line")
	flags.String("runtime", "docker", "Container CLI: docker, podman or auto")
	flags.String("status-backend", "cli", "How container status is queried: cli or api")
	flags.String("tld", config.DefaultTLD, "Top-level domain of project hosts")

	addNewFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// boundFlags maps option keys to persistent flags.
var boundFlags = map[string]string{
	"prompt":         "prompt",
	"runtime":        "runtime",
	"status_backend": "status-backend",
	"tld":            "tld",
}

// initConfig loads options with the precedence flags > MAKER_* env >
// config file > defaults.
func initConfig() {
	v = viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".laravel-maker")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range boundFlags {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			logging.Debug("failed to bind flag", "flag", flag, "error", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logging.Warn("failed to read config file", "error", err)
		}
	}
}

// loadApp decodes the options and builds the App.
func loadApp() (*app.App, error) {
	opts, err := config.LoadOptions(v)
	if err != nil {
		return nil, err
	}
	return newApp(opts), nil
}
