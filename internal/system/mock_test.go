package system

import (
	"context"
	"io/fs"
	"testing"

	makererrors "github.com/srRodolfo/dev-container/internal/errors"
)

func TestMockFS_ReadWriteFile(t *testing.T) {
	mockFS := NewMockFS()

	// Write a file
	content := []byte("hello world")
	err := mockFS.WriteFile("/test/file.txt", content, 0644)
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	// Read it back
	data, err := mockFS.ReadFile("/test/file.txt")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	if string(data) != "hello world" {
		t.Errorf("ReadFile = %q, want %q", string(data), "hello world")
	}
}

func TestMockFS_ReadFile_NotExists(t *testing.T) {
	mockFS := NewMockFS()

	_, err := mockFS.ReadFile("/nonexistent")
	if err != fs.ErrNotExist {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_Stat(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/test/file.txt", []byte("content"), 0644)
	mockFS.AddDir("/test/dir")

	// Stat file
	info, err := mockFS.Stat("/test/file.txt")
	if err != nil {
		t.Fatalf("Stat file error: %v", err)
	}
	if info.IsDir() {
		t.Error("File should not be a directory")
	}
	if info.Name() != "file.txt" {
		t.Errorf("Name = %q, want %q", info.Name(), "file.txt")
	}

	// Stat directory
	info, err = mockFS.Stat("/test/dir")
	if err != nil {
		t.Fatalf("Stat dir error: %v", err)
	}
	if !info.IsDir() {
		t.Error("Dir should be a directory")
	}
}

func TestMockFS_Exists(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/file.txt", []byte("x"), 0644)
	mockFS.AddDir("/dir")

	if !mockFS.Exists("/file.txt") {
		t.Error("File should exist")
	}
	if !mockFS.Exists("/dir") {
		t.Error("Dir should exist")
	}
	if mockFS.Exists("/nonexistent") {
		t.Error("Nonexistent should not exist")
	}
}

func TestMockFS_IsDir(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/file.txt", []byte("x"), 0644)
	mockFS.AddDir("/dir")

	if mockFS.IsDir("/file.txt") {
		t.Error("File should not be a directory")
	}
	if !mockFS.IsDir("/dir") {
		t.Error("Dir should be a directory")
	}
}

func TestMockFS_Remove(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/file.txt", []byte("x"), 0644)

	if err := mockFS.Remove("/file.txt"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	if mockFS.Exists("/file.txt") {
		t.Error("File should be removed")
	}
}

func TestMockFS_MkdirAll(t *testing.T) {
	mockFS := NewMockFS()

	if err := mockFS.MkdirAll("/a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}

	if !mockFS.IsDir("/a") {
		t.Error("/a should be a directory")
	}
	if !mockFS.IsDir("/a/b") {
		t.Error("/a/b should be a directory")
	}
	if !mockFS.IsDir("/a/b/c") {
		t.Error("/a/b/c should be a directory")
	}
}

func TestMockFS_CopyFile(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/src.txt", []byte("content"), 0644)

	if err := mockFS.CopyFile("/src.txt", "/dst.txt"); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}

	data, err := mockFS.ReadFile("/dst.txt")
	if err != nil {
		t.Fatalf("ReadFile dst error: %v", err)
	}

	if string(data) != "content" {
		t.Errorf("Dst content = %q, want %q", string(data), "content")
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.ReadFileErr = fs.ErrPermission

	_, err := mockFS.ReadFile("/anything")
	if err != fs.ErrPermission {
		t.Errorf("ReadFile error = %v, want ErrPermission", err)
	}
}

func TestMockRunner_QueuedResponses(t *testing.T) {
	runner := NewMockRunner()
	runner.Queue(Succeed(""), Fail(2))

	ctx := context.Background()
	res, err := runner.Run(ctx, "docker", "compose", "up", "-d")
	if err != nil || !res.Success {
		t.Fatalf("first Run = %+v, %v; want success", res, err)
	}

	res, err = runner.Run(ctx, "docker", "compose", "restart", "apache")
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if res.Success || res.Code != 2 {
		t.Errorf("second Run = %+v, want code 2", res)
	}

	// Queue exhausted: default response applies
	res, _ = runner.Run(ctx, "true")
	if !res.Success {
		t.Error("default response should be success")
	}

	want := []string{"docker compose up -d", "docker compose restart apache", "true"}
	got := runner.Lines()
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMockRunner_Capturing(t *testing.T) {
	runner := NewMockRunner()
	runner.Queue(Succeed("abc123\n"))

	res, out, err := runner.RunCapturing(context.Background(), "docker", "ps", "-q", "-f", "name=dev_container_php")
	if err != nil || !res.Success {
		t.Fatalf("RunCapturing = %+v, %v", res, err)
	}
	if out != "abc123\n" {
		t.Errorf("stdout = %q, want %q", out, "abc123\n")
	}

	cmd, ok := runner.LastCommand()
	if !ok || !cmd.Capture {
		t.Error("last command should be recorded as capturing")
	}
}

func TestMockRunner_Handler(t *testing.T) {
	runner := NewMockRunner()
	runner.Handler = func(cmd MockCommand) (MockResponse, bool) {
		if cmd.Name == "sudo" {
			return Fail(1), true
		}
		return MockResponse{}, false
	}

	res, _ := runner.Run(context.Background(), "sudo", "sh", "-c", "true")
	if res.Success {
		t.Error("handler response should be used for sudo")
	}
	res, _ = runner.Run(context.Background(), "docker", "ps")
	if !res.Success {
		t.Error("unmatched command should fall through to default")
	}
}

func TestMockRunner_LaunchFailure(t *testing.T) {
	runner := NewMockRunner()
	runner.Queue(LaunchFailure("docker"))

	_, err := runner.Run(context.Background(), "docker", "version")
	if !makererrors.IsKind(err, makererrors.KindProcessLaunch) {
		t.Errorf("error = %v, want process launch", err)
	}
}

func TestMockRunner_Reset(t *testing.T) {
	runner := NewMockRunner()
	runner.Queue(Fail(1))
	runner.Run(context.Background(), "cmd1")
	runner.Run(context.Background(), "cmd2")

	if len(runner.Commands) != 2 {
		t.Errorf("Commands length = %d, want 2", len(runner.Commands))
	}

	runner.Reset()

	if len(runner.Commands) != 0 {
		t.Errorf("Commands length after reset = %d, want 0", len(runner.Commands))
	}
}
