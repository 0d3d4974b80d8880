package config

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/logging"
	"github.com/srRodolfo/dev-container/internal/system"
)

func quietUserOutput(t *testing.T) {
	t.Helper()
	oldOut, oldErr := logging.Stdout, logging.Stderr
	logging.SetUserOutput(&bytes.Buffer{}, &bytes.Buffer{})
	t.Cleanup(func() { logging.SetUserOutput(oldOut, oldErr) })
}

func newTestResolver(fs *system.MockFS, env map[string]string, confirm Confirmer) *Resolver {
	r := NewResolver(fs, confirm)
	r.LookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return r
}

func TestResolve_AllKeysMissing(t *testing.T) {
	quietUserOutput(t)
	fs := system.NewMockFS()
	fs.AddFile(".env", []byte("APP_NAME=devbox\n"), 0644)

	settings, err := newTestResolver(fs, nil, nil).Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if settings.ContainerName != DefaultContainerName {
		t.Errorf("ContainerName = %q, want %q", settings.ContainerName, DefaultContainerName)
	}
	if settings.PHPContainer != "dev_container_php" {
		t.Errorf("PHPContainer = %q, want %q", settings.PHPContainer, "dev_container_php")
	}
	if settings.NodeContainer != "dev_container_node" {
		t.Errorf("NodeContainer = %q, want %q", settings.NodeContainer, "dev_container_node")
	}
	if settings.ServerPort != 8000 {
		t.Errorf("ServerPort = %d, want 8000", settings.ServerPort)
	}
	if settings.DBPort != 3306 {
		t.Errorf("DBPort = %d, want 3306", settings.DBPort)
	}
	if settings.DBRootPassword != "password" {
		t.Errorf("DBRootPassword = %q, want %q", settings.DBRootPassword, "password")
	}
	if settings.DBHost != "mariadb" {
		t.Errorf("DBHost = %q, want %q", settings.DBHost, "mariadb")
	}
	if settings.EnvPath != ".env" {
		t.Errorf("EnvPath = %q, want %q", settings.EnvPath, ".env")
	}
}

func TestResolve_FileValues(t *testing.T) {
	quietUserOutput(t)
	fs := system.NewMockFS()
	fs.AddFile(".env", []byte(`CONTAINER_NAME=shop
SERVER_PORT=8080
DB_PORT=3307
DB_ROOT_PASSWORD="s3cret"
DB_HOST=db
`), 0644)

	settings, err := newTestResolver(fs, nil, nil).Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := &Settings{
		EnvPath:        ".env",
		ContainerName:  "shop",
		PHPContainer:   "shop_php",
		NodeContainer:  "shop_node",
		DBRootPassword: "s3cret",
		ServerPort:     8080,
		DBPort:         3307,
		DBHost:         "db",
	}
	if *settings != *want {
		t.Errorf("Resolve() = %+v, want %+v", settings, want)
	}
}

func TestResolve_InvalidValuesFallBack(t *testing.T) {
	quietUserOutput(t)

	tests := []struct {
		name     string
		contents string
		check    func(*Settings) error
	}{
		{
			name:     "server port not a number",
			contents: "SERVER_PORT=not-a-number\n",
			check: func(s *Settings) error {
				if s.ServerPort != DefaultServerPort {
					return fmt.Errorf("ServerPort = %d, want %d", s.ServerPort, DefaultServerPort)
				}
				return nil
			},
		},
		{
			name:     "db port out of range",
			contents: "DB_PORT=70000\n",
			check: func(s *Settings) error {
				if s.DBPort != DefaultDBPort {
					return fmt.Errorf("DBPort = %d, want %d", s.DBPort, DefaultDBPort)
				}
				return nil
			},
		},
		{
			name:     "blank container name",
			contents: "CONTAINER_NAME=   \n",
			check: func(s *Settings) error {
				if s.ContainerName != DefaultContainerName {
					return fmt.Errorf("ContainerName = %q, want default", s.ContainerName)
				}
				return nil
			},
		},
		{
			name:     "value padded with spaces",
			contents: "SERVER_PORT=' 8081 '\n",
			check: func(s *Settings) error {
				if s.ServerPort != 8081 {
					return fmt.Errorf("ServerPort = %d, want 8081", s.ServerPort)
				}
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := system.NewMockFS()
			fs.AddFile(".env", []byte(tt.contents), 0644)

			settings, err := newTestResolver(fs, nil, nil).Resolve()
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if err := tt.check(settings); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestResolve_ProcessEnvWins(t *testing.T) {
	quietUserOutput(t)
	fs := system.NewMockFS()
	fs.AddFile(".env", []byte("CONTAINER_NAME=from_file\nSERVER_PORT=8080\n"), 0644)

	env := map[string]string{"CONTAINER_NAME": "from_env"}
	settings, err := newTestResolver(fs, env, nil).Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if settings.ContainerName != "from_env" {
		t.Errorf("ContainerName = %q, want %q", settings.ContainerName, "from_env")
	}
	if settings.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080 from file", settings.ServerPort)
	}
}

func TestResolve_ParentDirectory(t *testing.T) {
	quietUserOutput(t)
	fs := system.NewMockFS()
	fs.AddFile("../.env", []byte("CONTAINER_NAME=parent\n"), 0644)

	settings, err := newTestResolver(fs, nil, nil).Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if settings.EnvPath != "../.env" || settings.ContainerName != "parent" {
		t.Errorf("Resolve() = %+v", settings)
	}
}

func TestResolve_CopiesExample(t *testing.T) {
	quietUserOutput(t)

	tests := []struct {
		name     string
		answer   bool
		wantKind errors.Kind
		wantErr  bool
	}{
		{"accepted", true, 0, false},
		{"declined", false, errors.KindInterrupted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := system.NewMockFS()
			fs.AddFile("../env.example", []byte("CONTAINER_NAME=example\n"), 0644)

			asked := 0
			confirm := ConfirmFunc(func(q string, defaultYes bool) (bool, error) {
				asked++
				if !defaultYes {
					t.Error("the continue question should default to yes")
				}
				return tt.answer, nil
			})

			settings, err := newTestResolver(fs, nil, confirm).Resolve()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.IsKind(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %v", err, tt.wantKind)
			}
			if asked != 1 {
				t.Errorf("confirm asked %d times, want 1", asked)
			}

			// The copy lands next to the example either way
			data, ok := fs.GetFile("../.env")
			if !ok || string(data) != "CONTAINER_NAME=example\n" {
				t.Errorf("../.env = %q, %v", data, ok)
			}
			if !tt.wantErr && settings.ContainerName != "example" {
				t.Errorf("ContainerName = %q, want %q", settings.ContainerName, "example")
			}
		})
	}
}

func TestResolve_NoSourceFile(t *testing.T) {
	quietUserOutput(t)
	_, err := newTestResolver(system.NewMockFS(), nil, nil).Resolve()
	if !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("Resolve() error = %v, want validation error", err)
	}
}

func TestResolve_CopyFailure(t *testing.T) {
	quietUserOutput(t)
	fs := system.NewMockFS()
	fs.AddFile("env.example", []byte(""), 0644)
	fs.CopyFileErr = fmt.Errorf("read-only file system")

	_, err := newTestResolver(fs, nil, nil).Resolve()
	if !errors.IsKind(err, errors.KindIO) {
		t.Errorf("Resolve() error = %v, want io error", err)
	}
}

func TestFindFile(t *testing.T) {
	fs := system.NewMockFS()
	fs.AddFile(".env", nil, 0644)
	fs.AddFile("../.env", nil, 0644)

	path, ok := FindFile(fs, []string{".", ".."}, ".env")
	if !ok || path != ".env" {
		t.Errorf("FindFile() = %q, %v; current directory should win", path, ok)
	}

	if _, ok := FindFile(fs, []string{".", ".."}, "missing"); ok {
		t.Error("FindFile() should not find a missing file")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.PHPContainer != "dev_container_php" || s.NodeContainer != "dev_container_node" {
		t.Errorf("DefaultSettings() = %+v", s)
	}
}
