package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

const (
	EnvFile        = ".env"
	ExampleEnvFile = "env.example"

	DefaultContainerName  = "dev_container"
	DefaultServerPort     = uint16(8000)
	DefaultDBPort         = uint16(3306)
	DefaultDBRootPassword = "password"
	DefaultDBHost         = "mariadb"

	PHPSuffix  = "_php"
	NodeSuffix = "_node"
)

// Dotenv keys read by the resolver
const (
	KeyContainerName  = "CONTAINER_NAME"
	KeyServerPort     = "SERVER_PORT"
	KeyDBPort         = "DB_PORT"
	KeyDBRootPassword = "DB_ROOT_PASSWORD"
	KeyDBHost         = "DB_HOST"
)

// Settings is the resolved environment configuration. It is built once
// by Resolver.Resolve and not modified afterwards.
type Settings struct {
	EnvPath        string
	ContainerName  string
	PHPContainer   string
	NodeContainer  string
	DBRootPassword string
	ServerPort     uint16
	DBPort         uint16
	DBHost         string
}

// DefaultSettings returns settings built entirely from defaults.
func DefaultSettings() *Settings {
	return newSettings(DefaultContainerName, DefaultServerPort, DefaultDBPort, DefaultDBRootPassword, DefaultDBHost)
}

func newSettings(container string, serverPort, dbPort uint16, password, dbHost string) *Settings {
	return &Settings{
		ContainerName:  container,
		PHPContainer:   container + PHPSuffix,
		NodeContainer:  container + NodeSuffix,
		DBRootPassword: password,
		ServerPort:     serverPort,
		DBPort:         dbPort,
		DBHost:         dbHost,
	}
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string, defaultYes bool) (bool, error)

func (f ConfirmFunc) Confirm(question string, defaultYes bool) (bool, error) {
	return f(question, defaultYes)
}

// Resolver locates the dotenv file and derives Settings from it.
type Resolver struct {
	FS system.FileSystem

	// Dirs are searched in order for the dotenv and example files
	Dirs []string

	EnvFile     string
	ExampleFile string

	// LookupEnv reads the process environment, which takes precedence
	// over file values. Nil disables process overrides.
	LookupEnv func(key string) (string, bool)

	// Confirm is asked whether to continue after the example file was copied
	Confirm Confirmer
}

// NewResolver returns a resolver searching the current and parent directory.
func NewResolver(fs system.FileSystem, confirm Confirmer) *Resolver {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Resolver{
		FS:          fs,
		Dirs:        []string{".", ".."},
		EnvFile:     EnvFile,
		ExampleFile: ExampleEnvFile,
		LookupEnv:   os.LookupEnv,
		Confirm:     confirm,
	}
}

// FindFile returns the first dirs/name that exists.
func FindFile(fs system.FileSystem, dirs []string, name string) (string, bool) {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if fs.Exists(path) {
			return path, true
		}
	}
	return "", false
}

// Resolve locates (or creates) the dotenv file and reads the settings.
func (r *Resolver) Resolve() (*Settings, error) {
	envPath, err := r.ensureEnvFile()
	if err != nil {
		return nil, err
	}

	data, err := r.FS.ReadFile(envPath)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read %s", envPath), err)
	}

	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to parse %s", envPath), err)
	}

	logging.UserInfo("Loading settings from %s...", envPath)

	settings := newSettings(
		r.stringValue(values, KeyContainerName, DefaultContainerName),
		r.portValue(values, KeyServerPort, DefaultServerPort),
		r.portValue(values, KeyDBPort, DefaultDBPort),
		r.stringValue(values, KeyDBRootPassword, DefaultDBRootPassword),
		r.stringValue(values, KeyDBHost, DefaultDBHost),
	)
	settings.EnvPath = envPath

	logging.UserInfo("Settings loaded (PHP container: %s, server port: %d)", settings.PHPContainer, settings.ServerPort)
	return settings, nil
}

func (r *Resolver) ensureEnvFile() (string, error) {
	if path, ok := FindFile(r.FS, r.Dirs, r.EnvFile); ok {
		logging.Debug("dotenv file found", "path", path)
		return path, nil
	}

	logging.UserInfo("%s not found, trying to create it from %s...", r.EnvFile, r.ExampleFile)

	example, ok := FindFile(r.FS, r.Dirs, r.ExampleFile)
	if !ok {
		return "", errors.ValidationError(fmt.Sprintf("neither %s nor %s was found; check the project layout", r.EnvFile, r.ExampleFile))
	}

	envPath := filepath.Join(filepath.Dir(example), r.EnvFile)
	if err := r.FS.CopyFile(example, envPath); err != nil {
		return "", errors.IOError(fmt.Sprintf("failed to copy %s to %s", example, envPath), err)
	}
	logging.UserSuccess("Copied %s to %s", example, envPath)

	if r.Confirm == nil {
		return envPath, nil
	}

	proceed, err := r.Confirm.Confirm(fmt.Sprintf("%s was created with default values. Continue with them?", r.EnvFile), true)
	if err != nil {
		return "", err
	}
	if !proceed {
		return "", errors.Interrupted(fmt.Sprintf("edit %s and run laravel-maker again", envPath))
	}
	return envPath, nil
}

// lookup applies the env > file precedence and trims the value.
func (r *Resolver) lookup(values map[string]string, key string) (string, bool) {
	if r.LookupEnv != nil {
		if v, ok := r.LookupEnv(key); ok {
			return strings.TrimSpace(v), true
		}
	}
	v, ok := values[key]
	return strings.TrimSpace(v), ok
}

func (r *Resolver) stringValue(values map[string]string, key, def string) string {
	v, ok := r.lookup(values, key)
	if !ok || v == "" {
		logging.UserInfo("%s not found or empty, using default: '%s'", key, def)
		return def
	}
	return v
}

func (r *Resolver) portValue(values map[string]string, key string, def uint16) uint16 {
	v, ok := r.lookup(values, key)
	if !ok || v == "" {
		logging.UserInfo("%s not found, using default: %d", key, def)
		return def
	}

	port, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		logging.UserWarning("%s ('%s') is invalid, using default: %d", key, v, def)
		return def
	}
	return uint16(port)
}
