package generator

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

// Validate checks that the VhostData is complete.
func (d *VhostData) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("host is required")
	}
	if d.DocumentRoot == "" {
		return fmt.Errorf("document root is required")
	}
	if d.Upstream == "" {
		return fmt.Errorf("upstream is required")
	}
	return nil
}

// NewVhostData builds template data for a project.
func NewVhostData(req *config.ProjectRequest, upstream string) *VhostData {
	return &VhostData{
		Host:         req.Host,
		DocumentRoot: path.Join(req.ContainerDir(), "public"),
		Upstream:     upstream,
	}
}

// GenerateVhost renders the Apache virtual host for data.
func GenerateVhost(data *VhostData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", errors.ValidationError(fmt.Sprintf("invalid vhost config: %v", err))
	}

	var buf bytes.Buffer
	if err := vhostTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute vhost template: %w", err)
	}
	return buf.String(), nil
}

// FindRoot returns the first of dirs that contains a marker directory.
func FindRoot(fs system.FileSystem, dirs []string, marker string) (string, error) {
	for _, dir := range dirs {
		if fs.IsDir(filepath.Join(dir, marker)) {
			return dir, nil
		}
	}
	return "", errors.NotFound(fmt.Sprintf("could not find the environment root (no %s directory in %v)", marker, dirs))
}

// VhostWriter writes virtual host files under the environment root.
type VhostWriter struct {
	FS        system.FileSystem
	RootDirs  []string
	Marker    string
	VhostsDir string
	Upstream  string
}

// NewVhostWriter creates a writer from tool options.
func NewVhostWriter(fs system.FileSystem, opts *config.Options) *VhostWriter {
	if fs == nil {
		fs = system.DefaultFS()
	}
	if opts == nil {
		opts = config.DefaultOptions()
	}
	return &VhostWriter{
		FS:        fs,
		RootDirs:  []string{".", ".."},
		Marker:    opts.RootMarker,
		VhostsDir: opts.VhostsDir,
		Upstream:  opts.FPMUpstream,
	}
}

// Path returns where the vhost for host is written.
func (w *VhostWriter) Path(host string) (string, error) {
	root, err := FindRoot(w.FS, w.RootDirs, w.Marker)
	if err != nil {
		return "", err
	}

	p, err := securejoin.SecureJoin(root, filepath.Join(w.VhostsDir, host+".conf"))
	if err != nil {
		return "", errors.IOError("failed to resolve vhost path", err)
	}
	return p, nil
}

// Write renders and writes the vhost for req, overwriting any existing
// file. It returns the written path.
func (w *VhostWriter) Write(req *config.ProjectRequest) (string, error) {
	content, err := GenerateVhost(NewVhostData(req, w.Upstream))
	if err != nil {
		return "", err
	}

	vhostPath, err := w.Path(req.Host)
	if err != nil {
		return "", err
	}

	if err := w.FS.MkdirAll(filepath.Dir(vhostPath), 0755); err != nil {
		return "", errors.IOError(fmt.Sprintf("failed to create %s", filepath.Dir(vhostPath)), err)
	}
	if err := w.FS.WriteFile(vhostPath, []byte(content), 0644); err != nil {
		return "", errors.IOError(fmt.Sprintf("failed to write %s", vhostPath), err)
	}

	logging.Debug("vhost written", "path", vhostPath, "host", req.Host)
	return vhostPath, nil
}
