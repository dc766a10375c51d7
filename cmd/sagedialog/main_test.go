package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddQueuesFilesAndRejectsDuplicates(t *testing.T) {
	configPath := writeTestConfig(t)
	mediaDir := t.TempDir()
	file := filepath.Join(mediaDir, "movie.mkv")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	out, err := runCommand(t, "--config", configPath, "add", file)
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 file(s) queued") {
		t.Fatalf("unexpected output: %s", out)
	}

	out, err = runCommand(t, "--config", configPath, "add", file)
	if err != nil {
		t.Fatalf("duplicate add must not error: %v", err)
	}
	if !strings.Contains(out, "Already queued") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAddScansDirectoriesForEligibleFiles(t *testing.T) {
	configPath := writeTestConfig(t)
	mediaDir := t.TempDir()
	for _, name := range []string{"a.mkv", "b.mp4", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(mediaDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write media: %v", err)
		}
	}

	out, err := runCommand(t, "--config", configPath, "add", mediaDir)
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 file(s) queued") {
		t.Fatalf("expected the txt file to be filtered out: %s", out)
	}
}

func TestAddRejectsIneligibleExplicitFile(t *testing.T) {
	configPath := writeTestConfig(t)
	mediaDir := t.TempDir()
	file := filepath.Join(mediaDir, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	_, err := runCommand(t, "--config", configPath, "add", file)
	if err == nil {
		t.Fatal("expected an error for a file with an ineligible extension")
	}
	if !strings.Contains(err.Error(), "eligible") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "Queue is empty") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestFilterPrintsDefaultChain(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "filter")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	want := "equalizer=f=50:t=q:w=2:g=-12,equalizer=f=100:t=q:w=2:g=-10,equalizer=f=150:t=q:w=2:g=-6,speechnorm=e=6.25:r=0.00001:l=1"
	if strings.TrimSpace(out) != want {
		t.Fatalf("chain = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	_, err = runCommand(t, "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected error without --overwrite")
	}

	out, err = runCommand(t, "config", "init", "--path", target, "--overwrite")
	if err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, out)
	}
}

func TestConfigPathPrintsResolvedPath(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != configPath {
		t.Fatalf("path = %q, want %q", strings.TrimSpace(out), configPath)
	}
}
