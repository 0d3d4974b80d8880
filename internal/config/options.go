package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/srRodolfo/dev-container/internal/errors"
)

// EnvPrefix is the prefix of environment variables that override options
const EnvPrefix = "MAKER"

// Options are the tool's own knobs, as opposed to Settings which come from
// the environment's dotenv file.
type Options struct {
	PollAttempts int           `mapstructure:"poll_attempts"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	SettleDelay  time.Duration `mapstructure:"settle_delay"`

	TLD          string `mapstructure:"tld"`
	SourcesDir   string `mapstructure:"sources_dir"`
	RootMarker   string `mapstructure:"root_marker"`
	VhostsDir    string `mapstructure:"vhosts_dir"`
	FPMUpstream  string `mapstructure:"fpm_upstream"`
	HostsFile    string `mapstructure:"hosts_file"`
	HostsIP      string `mapstructure:"hosts_ip"`
	ProxyService string `mapstructure:"proxy_service"`
	JournalDir   string `mapstructure:"journal_dir"`

	Runtime       string `mapstructure:"runtime"`
	StatusBackend string `mapstructure:"status_backend"`
	DockerHost    string `mapstructure:"docker_host"`

	VerifyEnv bool   `mapstructure:"verify_env"`
	Prompt    string `mapstructure:"prompt"`
}

// Prompt modes
const (
	PromptAuto = "auto"
	PromptTUI  = "tui"
	PromptLine = "line"
)

// DefaultOptions returns the built-in option values.
func DefaultOptions() *Options {
	return &Options{
		PollAttempts:  3,
		PollInterval:  3 * time.Second,
		SettleDelay:   time.Second,
		TLD:           DefaultTLD,
		SourcesDir:    DefaultSourcesDir,
		RootMarker:    "docker",
		VhostsDir:     "docker/apache/vhosts",
		FPMUpstream:   "php:9000",
		HostsFile:     "/etc/hosts",
		HostsIP:       "127.0.0.1",
		ProxyService:  "apache",
		JournalDir:    ".laravel-maker",
		Runtime:       "docker",
		StatusBackend: "cli",
		VerifyEnv:     true,
		Prompt:        PromptAuto,
	}
}

// SetDefaults registers DefaultOptions with v so that unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := DefaultOptions()
	v.SetDefault("poll_attempts", d.PollAttempts)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("settle_delay", d.SettleDelay)
	v.SetDefault("tld", d.TLD)
	v.SetDefault("sources_dir", d.SourcesDir)
	v.SetDefault("root_marker", d.RootMarker)
	v.SetDefault("vhosts_dir", d.VhostsDir)
	v.SetDefault("fpm_upstream", d.FPMUpstream)
	v.SetDefault("hosts_file", d.HostsFile)
	v.SetDefault("hosts_ip", d.HostsIP)
	v.SetDefault("proxy_service", d.ProxyService)
	v.SetDefault("journal_dir", d.JournalDir)
	v.SetDefault("runtime", d.Runtime)
	v.SetDefault("status_backend", d.StatusBackend)
	v.SetDefault("docker_host", d.DockerHost)
	v.SetDefault("verify_env", d.VerifyEnv)
	v.SetDefault("prompt", d.Prompt)
}

// LoadOptions decodes and validates options from v.
func LoadOptions(v *viper.Viper) (*Options, error) {
	SetDefaults(v)

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, errors.Wrap(errors.KindValidation, "failed to decode options", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Validate checks that the Options are usable.
func (o *Options) Validate() error {
	if o.PollAttempts < 1 {
		return errors.ValidationError(fmt.Sprintf("poll_attempts must be at least 1 (got %d)", o.PollAttempts))
	}
	if o.PollInterval < 0 || o.SettleDelay < 0 {
		return errors.ValidationError("poll_interval and settle_delay cannot be negative")
	}
	if !projectNameRegex.MatchString(o.TLD) {
		return errors.ValidationError(fmt.Sprintf("invalid tld %q", o.TLD))
	}
	for name, value := range map[string]string{
		"sources_dir":   o.SourcesDir,
		"root_marker":   o.RootMarker,
		"vhosts_dir":    o.VhostsDir,
		"hosts_file":    o.HostsFile,
		"proxy_service": o.ProxyService,
		"journal_dir":   o.JournalDir,
	} {
		if value == "" {
			return errors.ValidationError(fmt.Sprintf("%s cannot be empty", name))
		}
	}

	switch o.Runtime {
	case "docker", "podman", "auto":
	default:
		return errors.ValidationError(fmt.Sprintf("invalid runtime: %s (must be docker, podman, or auto)", o.Runtime))
	}

	switch o.StatusBackend {
	case "cli", "api":
	default:
		return errors.ValidationError(fmt.Sprintf("invalid status_backend: %s (must be cli or api)", o.StatusBackend))
	}

	switch o.Prompt {
	case PromptAuto, PromptTUI, PromptLine:
	default:
		return errors.ValidationError(fmt.Sprintf("invalid prompt mode: %s (must be auto, tui, or line)", o.Prompt))
	}

	return nil
}
