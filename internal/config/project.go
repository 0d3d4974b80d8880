package config

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/srRodolfo/dev-container/internal/errors"
)

const (
	DefaultLaravelVersion = 12
	MinimumLaravelVersion = 10
	DefaultTLD            = "test"
	DefaultSourcesDir     = "../src"
	ContainerWebRoot      = "/var/www/html"
)

// projectNameRegex matches normalized names: lowercase alphanumeric words
// joined by single hyphens.
var projectNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var nonNameChars = regexp.MustCompile(`[^a-z0-9-]`)

// NormalizeName converts raw input to a kebab-case identifier. Characters
// other than ASCII letters, digits and '-' act as separators. The result
// may be empty.
func NormalizeName(raw string) string {
	lower := strings.ToLower(raw)
	spaced := nonNameChars.ReplaceAllString(lower, " ")
	joined := strings.Join(strings.Fields(spaced), "-")
	for strings.Contains(joined, "--") {
		joined = strings.ReplaceAll(joined, "--", "-")
	}
	return strings.Trim(joined, "-")
}

// ValidateName checks that name is already in normalized form.
func ValidateName(name string) error {
	if name == "" {
		return errors.ValidationError("project name cannot be empty")
	}
	if !projectNameRegex.MatchString(name) {
		return errors.ValidationError(fmt.Sprintf("invalid project name %q: use lowercase letters, digits and single hyphens", name))
	}
	return nil
}

// ParseVersion validates a framework major version. Blank input selects
// the default.
func ParseVersion(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return strconv.Itoa(DefaultLaravelVersion), nil
	}

	v, err := strconv.ParseUint(input, 10, 8)
	if err != nil {
		return "", errors.ValidationError(fmt.Sprintf("invalid version '%s': enter the major version number only (e.g. %d)", input, DefaultLaravelVersion))
	}
	if v < MinimumLaravelVersion {
		return "", errors.ValidationError(fmt.Sprintf("version %d is not supported; the minimum is %d", v, MinimumLaravelVersion))
	}
	return strconv.FormatUint(v, 10), nil
}

// ProjectRequest is the validated user input for one provisioning run.
type ProjectRequest struct {
	Name    string
	Host    string
	Path    string
	Version string
}

// ContainerDir is the project directory inside the PHP and node containers.
func (p *ProjectRequest) ContainerDir() string {
	return path.Join(ContainerWebRoot, p.Name)
}

// URL is the address the project is served at.
func (p *ProjectRequest) URL(port uint16) string {
	return fmt.Sprintf("http://%s:%d", p.Host, port)
}

// NewProjectRequest normalizes name and derives host and path from it.
// The version is validated with ParseVersion.
func NewProjectRequest(name, version string, opts *Options) (*ProjectRequest, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	normalized := NormalizeName(name)
	if err := ValidateName(normalized); err != nil {
		return nil, err
	}

	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}

	return &ProjectRequest{
		Name:    normalized,
		Host:    normalized + "." + opts.TLD,
		Path:    path.Join(opts.SourcesDir, normalized),
		Version: v,
	}, nil
}
