package journal

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/system"
)

func testRequest() *config.ProjectRequest {
	return &config.ProjectRequest{
		Name:    "demo-app",
		Host:    "demo-app.test",
		Path:    "../src/demo-app",
		Version: "12",
	}
}

func TestNew(t *testing.T) {
	j := New(testRequest())

	if j.RunID == "" {
		t.Error("RunID should be set")
	}
	if j.Name != "demo-app" || j.Host != "demo-app.test" || j.Version != "12" {
		t.Errorf("request fields not copied: %+v", j)
	}
	if len(j.Completed) != 0 {
		t.Errorf("Completed = %v, want empty", j.Completed)
	}
	if len(j.Events) != 1 || j.Events[0].Type != EventStart {
		t.Errorf("Events = %+v, want one start event", j.Events)
	}
	if New(testRequest()).RunID == j.RunID {
		t.Error("run IDs should be unique")
	}
}

func TestJournal_MarkDone(t *testing.T) {
	j := New(testRequest())

	j.MarkDone("container-ready")
	j.MarkDone("project-scaffolded")
	j.MarkDone("container-ready")

	if len(j.Completed) != 2 {
		t.Fatalf("Completed = %v, want 2 stages", j.Completed)
	}
	if !j.Done("container-ready") || !j.Done("project-scaffolded") {
		t.Error("marked stages should be done")
	}
	if j.Done("config-patched") {
		t.Error("unmarked stage should not be done")
	}

	stageEvents := 0
	for _, e := range j.Events {
		if e.Type == EventStage {
			stageEvents++
		}
	}
	if stageEvents != 2 {
		t.Errorf("stage events = %d, want 2", stageEvents)
	}
}

func TestJournal_Matches(t *testing.T) {
	j := New(testRequest())

	other := testRequest()
	if !j.Matches(other) {
		t.Error("identical request should match")
	}

	other.Version = "11"
	if j.Matches(other) {
		t.Error("different version should not match")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(system.DefaultFS(), filepath.Join(t.TempDir(), ".laravel-maker"))

	j := New(testRequest())
	j.MarkDone("container-ready")
	j.Record(EventError, "project-scaffolded", "composer exited with status 1")

	if err := store.Save(j); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.Load("demo-app")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got.RunID != j.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, j.RunID)
	}
	if !got.Matches(testRequest()) {
		t.Errorf("loaded journal does not match request: %+v", got)
	}
	if !got.Done("container-ready") || got.Done("project-scaffolded") {
		t.Errorf("Completed = %v", got.Completed)
	}
	if len(got.Events) != len(j.Events) {
		t.Fatalf("Events = %d, want %d", len(got.Events), len(j.Events))
	}
	last := got.Events[len(got.Events)-1]
	if last.Type != EventError || last.Details != "composer exited with status 1" {
		t.Errorf("last event = %+v", last)
	}
	if !got.StartedAt.Equal(j.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, j.StartedAt)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(system.NewMockFS(), ".laravel-maker")

	_, err := store.Load("demo-app")
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("Load() error = %v, want NotFound", err)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	fs := system.NewMockFS()
	store := NewStore(fs, ".laravel-maker")
	path, err := store.Path("demo-app")
	if err != nil {
		t.Fatal(err)
	}
	fs.AddFile(path, []byte("run_id = [unterminated"), 0644)

	_, err = store.Load("demo-app")
	if !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("Load() error = %v, want validation error", err)
	}
}

func TestStore_SaveFailure(t *testing.T) {
	fs := system.NewMockFS()
	fs.WriteFileErr = fmt.Errorf("disk full")
	store := NewStore(fs, ".laravel-maker")

	err := store.Save(New(testRequest()))
	if !errors.IsKind(err, errors.KindIO) {
		t.Errorf("Save() error = %v, want IO error", err)
	}
}

func TestStore_PathConfined(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(system.DefaultFS(), dir)

	path, err := store.Path("../../etc/passwd")
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if !strings.HasPrefix(path, dir+string(filepath.Separator)) {
		t.Errorf("Path() = %q escapes %q", path, dir)
	}

	if _, err := store.Path(""); !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("empty name error = %v, want validation error", err)
	}
}

func TestStore_Remove(t *testing.T) {
	store := NewStore(system.DefaultFS(), t.TempDir())

	if err := store.Save(New(testRequest())); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove("demo-app"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := store.Load("demo-app"); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("journal should be gone, Load() error = %v", err)
	}
	if err := store.Remove("demo-app"); err != nil {
		t.Errorf("removing a missing journal should succeed, got %v", err)
	}
}
