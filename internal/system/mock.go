package system

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	makererrors "github.com/srRodolfo/dev-container/internal/errors"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Error injection
	ReadFileErr  error
	WriteFileErr error
	RemoveErr    error
	StatErr      error
	MkdirAllErr  error
	CopyFileErr  error
}

type mockFile struct {
	data []byte
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode}
	// Ensure parent directories exist
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f.data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: perm}
	return nil
}

func (m *MockFS) Remove(path string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if _, ok := m.dirs[path]; ok {
		delete(m.dirs, path)
		return nil
	}
	return fs.ErrNotExist
}

func (m *MockFS) Stat(path string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(f.data)), mode: f.mode}, nil
	}
	if _, ok := m.dirs[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: fs.ModeDir | 0755}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	// Create all directories in the path
	current := path
	for current != "." && current != "/" {
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileOk := m.files[path]
	_, dirOk := m.dirs[path]
	return fileOk || dirOk
}

func (m *MockFS) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.dirs[path]
	return ok
}

func (m *MockFS) CopyFile(src, dst string) error {
	if m.CopyFileErr != nil {
		return m.CopyFileErr
	}
	data, err := m.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := m.Stat(src)
	if err != nil {
		return err
	}
	return m.WriteFile(dst, data, info.Mode())
}

// mockFileInfo implements fs.FileInfo for testing.
type mockFileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockRunner implements Runner for testing.
//
// Responses are served in call order. Once the queue is exhausted, Handler
// is consulted, then DefaultResponse.
type MockRunner struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses are consumed one per call, in order.
	Responses []MockResponse

	// Handler answers calls not covered by Responses. Returning false falls
	// through to DefaultResponse.
	Handler func(cmd MockCommand) (MockResponse, bool)

	// DefaultResponse is used when nothing else matches.
	DefaultResponse MockResponse
}

// MockCommand records an executed command.
type MockCommand struct {
	Name    string
	Args    []string
	Capture bool
}

// Line returns the command as a single space-joined string.
func (c MockCommand) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Result ExitResult
	Stdout string
	Err    error
}

// Succeed returns a zero-exit response with the given captured stdout.
func Succeed(stdout string) MockResponse {
	return MockResponse{Result: ExitResult{Success: true, Code: 0, Status: "exit status 0"}, Stdout: stdout}
}

// Fail returns a non-zero exit response.
func Fail(code int) MockResponse {
	return MockResponse{Result: ExitResult{Success: false, Code: code, Status: fmt.Sprintf("exit status %d", code)}}
}

// LaunchFailure returns a response whose program could not be started.
func LaunchFailure(name string) MockResponse {
	return MockResponse{Result: ExitResult{Code: -1}, Err: makererrors.ProcessLaunch(name, fs.ErrNotExist)}
}

// NewMockRunner creates a MockRunner whose default response is success.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Commands:        make([]MockCommand, 0),
		DefaultResponse: Succeed(""),
	}
}

// Queue appends responses to be served in order.
func (m *MockRunner) Queue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = append(m.Responses, responses...)
}

func (m *MockRunner) next(cmd MockCommand) MockResponse {
	m.mu.Lock()
	m.Commands = append(m.Commands, cmd)
	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		m.Responses = m.Responses[1:]
		m.mu.Unlock()
		return resp
	}
	handler := m.Handler
	def := m.DefaultResponse
	m.mu.Unlock()

	if handler != nil {
		if resp, ok := handler(cmd); ok {
			return resp
		}
	}
	return def
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (ExitResult, error) {
	resp := m.next(MockCommand{Name: name, Args: args})
	return resp.Result, resp.Err
}

func (m *MockRunner) RunCapturing(ctx context.Context, name string, args ...string) (ExitResult, string, error) {
	resp := m.next(MockCommand{Name: name, Args: args, Capture: true})
	return resp.Result, resp.Stdout, resp.Err
}

// Lines returns every recorded command as a space-joined string.
func (m *MockRunner) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.Line()
	}
	return lines
}

// LastCommand returns the most recently executed command.
func (m *MockRunner) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands and pending responses.
func (m *MockRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
	m.Responses = nil
}
