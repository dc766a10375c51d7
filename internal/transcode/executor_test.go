package transcode

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/Sage222/SageDialogEnhance/internal/services"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestCommandExecutorStreamsMergedOutput(t *testing.T) {
	requirePosixShell(t)

	var lines []string
	var started bool
	err := NewExecutor().Run(
		context.Background(),
		"/bin/sh",
		[]string{"-c", "echo out; echo err 1>&2"},
		func(line string) { lines = append(lines, line) },
		func(ProcessHandle) { started = true },
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !started {
		t.Fatal("onStart must fire")
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want both streams merged", lines)
	}
	seen := map[string]bool{}
	for _, line := range lines {
		seen[line] = true
	}
	if !seen["out"] || !seen["err"] {
		t.Fatalf("lines = %v", lines)
	}
}

func TestCommandExecutorSpawnFailure(t *testing.T) {
	err := NewExecutor().Run(context.Background(), "/definitely/not/a/binary", nil, nil, nil)
	if !errors.Is(err, services.ErrSpawn) {
		t.Fatalf("expected spawn sentinel, got %v", err)
	}
}

func TestCommandExecutorNonZeroExit(t *testing.T) {
	requirePosixShell(t)

	err := NewExecutor().Run(context.Background(), "/bin/sh", []string{"-c", "exit 3"}, nil, nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool sentinel, got %v", err)
	}
}
