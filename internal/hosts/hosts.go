package hosts

import (
	"context"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

const (
	DefaultPath = "/etc/hosts"
	DefaultIP   = "127.0.0.1"
)

// ParseHostMappings parses /etc/hosts style content into host->ip
// mappings. Hostnames are lowercased; comments are ignored.
func ParseHostMappings(content string) map[string]string {
	mappings := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		ip := fields[0]
		for _, host := range fields[1:] {
			host = strings.ToLower(host)
			if _, seen := mappings[host]; !seen {
				mappings[host] = ip
			}
		}
	}
	return mappings
}

// HasHost reports whether content maps host, comparing whole hostname
// fields only.
func HasHost(content, host string) (string, bool) {
	ip, ok := ParseHostMappings(content)[strings.ToLower(strings.TrimSpace(host))]
	return ip, ok
}

// Registrar adds host aliases to the system hosts file.
type Registrar struct {
	FS     system.FileSystem
	Runner system.Runner
	Path   string
	IP     string
}

// NewRegistrar creates a registrar for /etc/hosts pointing at 127.0.0.1.
func NewRegistrar(fs system.FileSystem, runner system.Runner) *Registrar {
	if fs == nil {
		fs = system.DefaultFS()
	}
	if runner == nil {
		runner = system.DefaultRunner()
	}
	return &Registrar{
		FS:     fs,
		Runner: runner,
		Path:   DefaultPath,
		IP:     DefaultIP,
	}
}

// EnsureAlias makes sure host resolves locally. It returns true when an
// entry was appended. An unreadable hosts file is not fatal: the append is
// attempted anyway.
func (r *Registrar) EnsureAlias(ctx context.Context, host string) (bool, error) {
	data, err := r.FS.ReadFile(r.Path)
	unterminated := err == nil && len(data) > 0 && data[len(data)-1] != '\n'
	if err != nil {
		logging.Warn("could not read hosts file, appending without checking", "path", r.Path, "error", err)
	} else if ip, ok := HasHost(string(data), host); ok {
		if ip != r.IP {
			logging.UserWarning("%s already maps %s to %s", r.Path, host, ip)
		}
		logging.UserInfo("%s is already in %s", host, r.Path)
		return false, nil
	}

	logging.UserInfo("Adding %s to %s (sudo may ask for your password)...", host, r.Path)

	path := shellquote.Join(r.Path)
	script := fmt.Sprintf("echo %s >> %s", shellquote.Join(r.IP+" "+host), path)
	if unterminated {
		script = fmt.Sprintf(`printf '\n' >> %s && %s`, path, script)
	}
	res, err := r.Runner.Run(ctx, "sudo", "sh", "-c", script)
	if err != nil {
		return false, errors.IOError("failed to run sudo", err)
	}
	if !res.Success {
		return false, errors.ValidationError(fmt.Sprintf("failed to update %s via sudo; check that the password was entered correctly (%s)", r.Path, res.Status))
	}

	logging.UserSuccess("Added %s %s to %s", r.IP, host, r.Path)
	return true, nil
}
