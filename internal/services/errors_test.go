package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsAndChains(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "transcode", "ffmpeg", "", cause)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected marker tag, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "transcode: ffmpeg") {
		t.Fatalf("expected stage detail in message, got %q", err.Error())
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrIO, "batch", "create output folder", "permission denied", nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected marker tag, got %v", err)
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("expected message detail, got %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}
