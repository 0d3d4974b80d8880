package runtime

import (
	"context"
	"strconv"
	"sync"

	"github.com/srRodolfo/dev-container/internal/system"
)

// MockRuntime is a mock implementation of Runtime for testing
type MockRuntime struct {
	mu sync.RWMutex

	// Containers tracks the state of mock containers
	Containers map[string]*ContainerInfo

	// StatusScript yields successive IsRunning answers per container.
	// The last entry repeats once the script is exhausted.
	StatusScript map[string][]bool

	// StartOnComposeUp marks these containers running when ComposeUp is called
	StartOnComposeUp []string

	// ExecResults are consumed one per Exec/ExecCapture call, in order
	ExecResults []MockExec

	// ExecHandler answers exec calls once ExecResults is exhausted
	ExecHandler func(container string, command []string, opts ExecOptions) (MockExec, bool)

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockExec is a scripted exec outcome
type MockExec struct {
	Result system.ExitResult
	Stdout string
	Err    error
}

// ExecOK is a successful MockExec
func ExecOK(stdout string) MockExec {
	return MockExec{Result: system.ExitResult{Success: true, Status: "exit status 0"}, Stdout: stdout}
}

// ExecFail is a MockExec with a non-zero exit
func ExecFail(code int) MockExec {
	return MockExec{Result: system.ExitResult{Success: false, Code: code, Status: "exit status " + strconv.Itoa(code)}}
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Containers:   make(map[string]*ContainerInfo),
		StatusScript: make(map[string][]bool),
		Errors:       make(map[string]error),
		CallLog:      make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// AddContainer adds a container to the mock
func (m *MockRuntime) AddContainer(name string, status ContainerStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers[name] = &ContainerInfo{
		Name:   name,
		Status: status,
	}
}

// QueueExec appends scripted exec outcomes
func (m *MockRuntime) QueueExec(results ...MockExec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecResults = append(m.ExecResults, results...)
}

// GetCalls returns all recorded calls
func (m *MockRuntime) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MockCall, len(m.CallLog))
	copy(calls, m.CallLog)
	return calls
}

// GetCallsFor returns all calls for a specific method
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Reset clears all state
func (m *MockRuntime) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers = make(map[string]*ContainerInfo)
	m.StatusScript = make(map[string][]bool)
	m.StartOnComposeUp = nil
	m.ExecResults = nil
	m.Errors = make(map[string]error)
	m.CallLog = make([]MockCall, 0)
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// IsRunning checks if a container is currently running
func (m *MockRuntime) IsRunning(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("IsRunning", name)

	if err, ok := m.Errors["IsRunning"]; ok {
		return false, err
	}

	if script := m.StatusScript[name]; len(script) > 0 {
		running := script[0]
		if len(script) > 1 {
			m.StatusScript[name] = script[1:]
		}
		return running, nil
	}

	if container, ok := m.Containers[name]; ok {
		return container.Status == StatusRunning, nil
	}

	return false, nil
}

// ComposeUp starts the compose environment
func (m *MockRuntime) ComposeUp(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ComposeUp")

	if err, ok := m.Errors["ComposeUp"]; ok {
		return err
	}

	for _, name := range m.StartOnComposeUp {
		m.Containers[name] = &ContainerInfo{Name: name, Status: StatusRunning}
	}
	return nil
}

// ComposeRestart restarts a compose service
func (m *MockRuntime) ComposeRestart(ctx context.Context, service string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ComposeRestart", service)

	if err, ok := m.Errors["ComposeRestart"]; ok {
		return err
	}
	return nil
}

// Exec executes a command inside a container
func (m *MockRuntime) Exec(ctx context.Context, container string, command []string, opts ExecOptions) (system.ExitResult, error) {
	res := m.exec("Exec", container, command, opts)
	return res.Result, res.Err
}

// ExecCapture executes a command inside a container and returns stdout
func (m *MockRuntime) ExecCapture(ctx context.Context, container string, command []string, opts ExecOptions) (system.ExitResult, string, error) {
	res := m.exec("ExecCapture", container, command, opts)
	return res.Result, res.Stdout, res.Err
}

func (m *MockRuntime) exec(method, container string, command []string, opts ExecOptions) MockExec {
	m.mu.Lock()
	m.record(method, container, command, opts)

	if err, ok := m.Errors[method]; ok {
		m.mu.Unlock()
		return MockExec{Result: system.ExitResult{Code: -1}, Err: err}
	}

	if len(m.ExecResults) > 0 {
		res := m.ExecResults[0]
		m.ExecResults = m.ExecResults[1:]
		m.mu.Unlock()
		return res
	}
	handler := m.ExecHandler
	m.mu.Unlock()

	if handler != nil {
		if res, ok := handler(container, command, opts); ok {
			return res
		}
	}
	return ExecOK("")
}

// Ensure MockRuntime implements Runtime
var _ Runtime = (*MockRuntime)(nil)
