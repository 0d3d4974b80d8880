package journal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/system"
)

// EventType classifies a journal event.
type EventType string

const (
	EventStart  EventType = "start"
	EventResume EventType = "resume"
	EventStage  EventType = "stage"
	EventError  EventType = "error"
)

// Event is a single entry in a run's history.
type Event struct {
	Timestamp time.Time `toml:"timestamp"`
	Type      EventType `toml:"type"`
	Stage     string    `toml:"stage,omitempty"`
	Details   string    `toml:"details,omitempty"`
}

// Journal records the stages a provisioning run has completed.
type Journal struct {
	RunID     string    `toml:"run_id"`
	Name      string    `toml:"name"`
	Host      string    `toml:"host"`
	Path      string    `toml:"path"`
	Version   string    `toml:"version"`
	StartedAt time.Time `toml:"started_at"`
	UpdatedAt time.Time `toml:"updated_at"`
	Completed []string  `toml:"completed"`
	Events    []Event   `toml:"events"`
}

// New starts a journal for req with a fresh run ID.
func New(req *config.ProjectRequest) *Journal {
	now := time.Now().UTC().Truncate(time.Millisecond)
	j := &Journal{
		RunID:     uuid.NewString(),
		Name:      req.Name,
		Host:      req.Host,
		Path:      req.Path,
		Version:   req.Version,
		StartedAt: now,
		UpdatedAt: now,
	}
	j.Record(EventStart, "", "")
	return j
}

// Done reports whether stage has been completed.
func (j *Journal) Done(stage string) bool {
	return slices.Contains(j.Completed, stage)
}

// MarkDone records stage as completed. Marking a stage twice is a no-op.
func (j *Journal) MarkDone(stage string) {
	if j.Done(stage) {
		return
	}
	j.Completed = append(j.Completed, stage)
	j.Record(EventStage, stage, "")
}

// Record appends an event.
func (j *Journal) Record(t EventType, stage, details string) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	j.UpdatedAt = now
	j.Events = append(j.Events, Event{Timestamp: now, Type: t, Stage: stage, Details: details})
}

// Matches reports whether the journal belongs to req.
func (j *Journal) Matches(req *config.ProjectRequest) bool {
	return j.Name == req.Name && j.Host == req.Host && j.Path == req.Path && j.Version == req.Version
}

// Store persists journals as TOML files, one per project.
// Journals live at {dir}/{name}.toml.
type Store struct {
	FS  system.FileSystem
	Dir string
}

// NewStore creates a store rooted at dir.
func NewStore(fs system.FileSystem, dir string) *Store {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Store{FS: fs, Dir: dir}
}

// Path returns the journal path for a project, confined to the store
// directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" {
		return "", errors.ValidationError("journal name is empty")
	}
	p, err := securejoin.SecureJoin(s.Dir, name+".toml")
	if err != nil {
		return "", errors.IOError("failed to resolve journal path", err)
	}
	return p, nil
}

// Load reads the journal for name. A missing journal is a NotFound error.
func (s *Store) Load(name string) (*Journal, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := s.FS.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("no journal for %s", name))
		}
		return nil, errors.IOError("failed to read journal", err)
	}

	var j Journal
	if _, err := toml.Decode(string(data), &j); err != nil {
		return nil, errors.Wrap(errors.KindValidation, fmt.Sprintf("journal %s is corrupt", path), err)
	}
	return &j, nil
}

// Save writes j, replacing any previous journal for the same project.
func (s *Store) Save(j *Journal) error {
	path, err := s.Path(j.Name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(j); err != nil {
		return errors.IOError("failed to encode journal", err)
	}

	if err := s.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.IOError("failed to create journal directory", err)
	}
	if err := s.FS.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.IOError("failed to write journal", err)
	}
	return nil
}

// Remove deletes the journal for name. Removing a missing journal is not an
// error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := s.FS.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.IOError("failed to remove journal", err)
	}
	return nil
}
