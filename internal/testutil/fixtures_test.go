package testutil

import (
	"context"
	"testing"

	"github.com/joho/godotenv"

	"github.com/srRodolfo/dev-container/internal/app"
	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/journal"
	"github.com/srRodolfo/dev-container/internal/provision"
)

func TestFixturesParse(t *testing.T) {
	for _, name := range []string{EnvFixture, ExampleEnvFixture, InvalidEnvFixture, LaravelEnvFixture} {
		t.Run(name, func(t *testing.T) {
			data, err := LoadFixture(name)
			if err != nil {
				t.Fatalf("LoadFixture() error: %v", err)
			}
			if _, err := godotenv.Unmarshal(string(data)); err != nil {
				t.Errorf("fixture is not a valid dotenv file: %v", err)
			}
		})
	}

	if _, err := LoadFixture("missing"); err == nil {
		t.Error("LoadFixture(missing) should fail")
	}
}

func TestLaravelEnvFixture(t *testing.T) {
	values, err := godotenv.Unmarshal(string(MustFixture(LaravelEnvFixture)))
	if err != nil {
		t.Fatal(err)
	}
	if values["DB_CONNECTION"] != "sqlite" {
		t.Errorf("DB_CONNECTION = %q, want sqlite", values["DB_CONNECTION"])
	}
	if _, ok := values["DB_HOST"]; ok {
		t.Error("DB_HOST should be commented out in a fresh project")
	}
}

func TestTestEnv_Settings(t *testing.T) {
	env := NewTestEnv(t)
	settings := env.Settings()

	if settings.ContainerName != "acme" || settings.PHPContainer != "acme_php" {
		t.Errorf("containers = %q, %q", settings.ContainerName, settings.PHPContainer)
	}
	if settings.ServerPort != 8080 || settings.DBPort != 3307 {
		t.Errorf("ports = %d, %d", settings.ServerPort, settings.DBPort)
	}
	if settings.DBRootPassword != "s3cret" {
		t.Errorf("DBRootPassword = %q", settings.DBRootPassword)
	}
	if env.Stdout.Len() == 0 {
		t.Error("resolver output should be captured")
	}
}

func TestTestEnv_InvalidSettings(t *testing.T) {
	env := NewTestEnv(t)
	env.FS.AddFile(config.EnvFile, MustFixture(InvalidEnvFixture), 0644)

	settings := env.Settings()
	want := config.DefaultSettings()
	want.EnvPath = settings.EnvPath
	if *settings != *want {
		t.Errorf("Settings() = %+v, want defaults %+v", settings, want)
	}
}

func TestTestEnv_CopiesExample(t *testing.T) {
	env := NewTestEnv(t)
	if err := env.FS.Remove(config.EnvFile); err != nil {
		t.Fatal(err)
	}

	settings := env.Settings()
	if settings.ContainerName != config.DefaultContainerName {
		t.Errorf("ContainerName = %q", settings.ContainerName)
	}
	if !env.FS.Exists(config.EnvFile) {
		t.Error("dotenv file should have been created from the example")
	}
}

func TestTestEnv_Doctor(t *testing.T) {
	env := NewTestEnv(t)
	settings := env.Settings()
	env.StartContainers(settings)

	report := env.App.Doctor(context.Background(), settings)
	for _, c := range report.Checks {
		if c.State != app.CheckOK {
			t.Errorf("%s = %s (%s)", c.Name, c.State, c.Detail)
		}
	}
}

func TestTestEnv_Journal(t *testing.T) {
	env := NewTestEnv(t)

	if env.GetJournal("demo") != nil {
		t.Fatal("journal should not exist yet")
	}

	j := journal.New(env.Request("Demo", "11"))
	j.MarkDone(string(provision.StageContainerReady))
	env.AddJournal(j)

	got := env.GetJournal("demo")
	if got == nil {
		t.Fatal("journal not found")
	}
	if got.Version != "11" || !got.Done(string(provision.StageContainerReady)) {
		t.Errorf("journal = %+v", got)
	}
}
