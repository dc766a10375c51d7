package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sage222/SageDialogEnhance/internal/preflight"
	"github.com/Sage222/SageDialogEnhance/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("Input directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}

	result = preflight.CheckDirectoryAccess("Input directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatal("expected missing directory to fail")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result = preflight.CheckDirectoryAccess("Input directory", file)
	if result.Passed {
		t.Fatal("expected non-directory to fail")
	}
}

func TestRunAllReportsMissingTools(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Tools.FFmpeg = "definitely-not-ffmpeg"
	cfg.Tools.FFprobe = "definitely-not-ffprobe"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}

	results := preflight.RunAll(cfg, t.TempDir())
	if preflight.AllPassed(results) {
		t.Fatal("expected failures for missing binaries")
	}

	var sawFFmpeg, sawInput bool
	for _, result := range results {
		switch result.Name {
		case "FFmpeg":
			sawFFmpeg = true
			if result.Passed {
				t.Fatal("missing ffmpeg must not pass")
			}
		case "Input directory":
			sawInput = true
			if !result.Passed {
				t.Fatalf("temp input dir should pass: %+v", result)
			}
		}
	}
	if !sawFFmpeg || !sawInput {
		t.Fatalf("checks missing from results: %+v", results)
	}
}

func TestRunAllPassesWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	binDir := t.TempDir()
	testsupport.WriteStubBinary(t, binDir, "ffmpeg", "exit 0")
	testsupport.WriteStubBinary(t, binDir, "ffprobe", "exit 0")
	testsupport.PrependPath(t, binDir)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}

	results := preflight.RunAll(cfg)
	if !preflight.AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}
