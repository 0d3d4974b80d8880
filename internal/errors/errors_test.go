package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMakerError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *MakerError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(KindValidation, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(KindDocker, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestMakerError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(KindIO, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(KindIO, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *MakerError
		wantKind Kind
		wantMsg  string
	}{
		{"io", IOError("read failed", cause), KindIO, "read failed: boom"},
		{"interrupted", Interrupted("user declined"), KindInterrupted, "user declined"},
		{"validation", ValidationError("bad name"), KindValidation, "bad name"},
		{"docker", DockerError("exec failed", cause), KindDocker, "exec failed: boom"},
		{"not found", NotFound("no docker dir"), KindNotFound, "no docker dir"},
		{"process launch", ProcessLaunch("docker", cause), KindProcessLaunch, "failed to launch docker: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.wantKind)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if tt.err.ExitCode() != ExitGeneralError {
				t.Errorf("ExitCode() = %d, want %d", tt.err.ExitCode(), ExitGeneralError)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if KindDocker.String() != "docker" {
		t.Errorf("KindDocker.String() = %q", KindDocker.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("stage failed: %w", DockerError("compose up", nil))

	if !IsKind(wrapped, KindDocker) {
		t.Error("IsKind should find a wrapped docker error")
	}
	if IsKind(wrapped, KindIO) {
		t.Error("IsKind should not match a different kind")
	}
	if IsKind(fmt.Errorf("plain"), KindDocker) {
		t.Error("IsKind should be false for plain errors")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "MakerError",
			err:      NotFound("vhosts"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "wrapped MakerError",
			err:      fmt.Errorf("outer: %w", Interrupted("declined")),
			wantCode: ExitGeneralError,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := Wrap(KindIO, "copy failed", root)
	outer := fmt.Errorf("operation failed: %w", middle)

	if !errors.Is(outer, root) {
		t.Error("errors.Is should find root cause")
	}

	var makerErr *MakerError
	if !As(outer, &makerErr) {
		t.Fatal("As should find MakerError")
	}
	if makerErr.Kind != KindIO {
		t.Errorf("Kind = %v, want %v", makerErr.Kind, KindIO)
	}
	if !Is(outer, root) {
		t.Error("Is should find root cause")
	}
}
