package compose

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/compose-spec/compose-go/v2/loader"
	composetypes "github.com/compose-spec/compose-go/v2/types"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

// FileNames lists the compose file names checked at the environment root,
// in order.
var FileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Service is the subset of a compose service the maker cares about.
type Service struct {
	Name          string
	Image         string
	ContainerName string
	Ports         []string
}

// Project is a loaded compose project.
type Project struct {
	Name     string
	File     string
	Services []Service
}

// Service returns the service called name.
func (p *Project) Service(name string) (Service, bool) {
	for _, s := range p.Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceByContainer returns the service whose container_name is container.
func (p *Project) ServiceByContainer(container string) (Service, bool) {
	for _, s := range p.Services {
		if s.ContainerName == container {
			return s, true
		}
	}
	return Service{}, false
}

// Missing returns the names that are not services of the project.
func (p *Project) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := p.Service(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Inspector loads the compose file of a development environment.
type Inspector struct {
	FS system.FileSystem
}

// NewInspector creates an inspector. A nil fs uses the default filesystem.
func NewInspector(fs system.FileSystem) *Inspector {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Inspector{FS: fs}
}

// FindFile returns the first compose file present under root.
func (i *Inspector) FindFile(root string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if i.FS.Exists(p) {
			return p, nil
		}
	}
	return "", errors.NotFound(fmt.Sprintf("no compose file in %s (tried %v)", root, FileNames))
}

// Inspect loads the compose project under root, interpolating variables
// from env.
func (i *Inspector) Inspect(ctx context.Context, root string, env map[string]string) (*Project, error) {
	path, err := i.FindFile(root)
	if err != nil {
		return nil, err
	}

	content, err := i.FS.ReadFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read %s", path), err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.IOError("failed to resolve environment root", err)
	}

	details := composetypes.ConfigDetails{
		WorkingDir: absRoot,
		ConfigFiles: []composetypes.ConfigFile{
			{Filename: path, Content: content},
		},
		Environment: composetypes.Mapping(env),
	}

	logging.Debug("loading compose project", "file", path)
	project, err := loader.LoadWithContext(ctx, details, func(options *loader.Options) {
		options.SetProjectName(loader.NormalizeProjectName(filepath.Base(absRoot)), true)
		options.SkipResolveEnvironment = true
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindValidation, fmt.Sprintf("invalid compose file %s", path), err)
	}

	result := &Project{Name: project.Name, File: path}
	for name, svc := range project.Services {
		result.Services = append(result.Services, convertService(name, svc))
	}
	sort.Slice(result.Services, func(a, b int) bool {
		return result.Services[a].Name < result.Services[b].Name
	})
	return result, nil
}

func convertService(name string, svc composetypes.ServiceConfig) Service {
	s := Service{
		Name:          name,
		Image:         svc.Image,
		ContainerName: svc.ContainerName,
	}
	for _, port := range svc.Ports {
		target := strconv.FormatUint(uint64(port.Target), 10)
		if port.Published == "" {
			s.Ports = append(s.Ports, target)
			continue
		}
		s.Ports = append(s.Ports, port.Published+":"+target)
	}
	return s
}
