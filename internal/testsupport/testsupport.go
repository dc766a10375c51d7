// Package testsupport provides shared fixtures for package tests: temp-dir
// backed configs, queue stores, and stubbed external binaries.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Sage222/SageDialogEnhance/internal/config"
	"github.com/Sage222/SageDialogEnhance/internal/queue"
)

// NewConfig returns a validated default config rooted in a per-test temp
// directory so tests never touch the real data dir.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default test config invalid: %v", err)
	}
	return &cfg
}

// OpenStore opens a queue store backed by a temp-dir config and registers
// cleanup.
func OpenStore(t *testing.T) (*queue.Store, *config.Config) {
	t.Helper()

	cfg := NewConfig(t)
	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store, cfg
}

// WriteMediaFile creates a small placeholder media file and returns its path.
func WriteMediaFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a real container"), 0o644); err != nil {
		t.Fatalf("write media file: %v", err)
	}
	return path
}

// WriteStubBinary drops an executable shell script into dir under the given
// name. Tests prepend dir to PATH to intercept external tool lookups.
func WriteStubBinary(t *testing.T, dir, name, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	path := filepath.Join(dir, name)
	content := fmt.Sprintf("#!/bin/sh\n%s\n", script)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub binary: %v", err)
	}
	return path
}

// PrependPath prefixes dir onto PATH for the duration of the test.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
