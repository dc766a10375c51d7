package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestParseAudioProbe(t *testing.T) {
	info, err := parseAudioProbe("eac3\n640000\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.Codec != "eac3" || info.Bitrate != "640k" {
		t.Fatalf("info = %+v", info)
	}
}

func TestParseAudioProbeSkipsBlankLines(t *testing.T) {
	info, err := parseAudioProbe("\nac3\n\n448000\n\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.Codec != "ac3" || info.Bitrate != "448k" {
		t.Fatalf("info = %+v", info)
	}
}

func TestParseAudioProbeRejectsEmptyOutput(t *testing.T) {
	if _, err := parseAudioProbe(""); err == nil {
		t.Fatal("expected error for empty output")
	}
	if _, err := parseAudioProbe("\n\n"); err == nil {
		t.Fatal("expected error for blank output")
	}
}

func TestParseAudioProbeKeepsCodecWhenBitrateMissing(t *testing.T) {
	for _, output := range []string{"dts\n", "dts\nN/A\n", "dts\n-100\n", "dts\nfast\n"} {
		info, err := parseAudioProbe(output)
		if err != nil {
			t.Fatalf("parse %q: %v", output, err)
		}
		if info.Codec != "dts" || info.Bitrate != "192k" {
			t.Fatalf("parse %q: info = %+v, want dts/192k", output, info)
		}
	}
}

func TestProbeAudioKeepsCodecWhenBitrateUnavailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	stub := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\nprintf 'eac3\\nN/A\\n'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	info, err := ProbeAudio(context.Background(), stub, "/library/movie.mkv")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info.Codec != "eac3" || info.Bitrate != "192k" {
		t.Fatalf("info = %+v, want eac3/192k", info)
	}
}

func TestProbeAudioFallsBackWhenBinaryMissing(t *testing.T) {
	info, err := ProbeAudio(context.Background(), "missing-ffprobe-for-tests", "/library/movie.mkv")
	if err == nil {
		t.Fatal("expected an error when the binary is absent")
	}
	if info != DefaultAudio {
		t.Fatalf("info = %+v, want %+v", info, DefaultAudio)
	}
}

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio", CodecName: "eac3"},
			{CodecType: "audio", CodecName: "aac"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if first := result.FirstAudioStream(); first == nil || first.CodecName != "eac3" {
		t.Fatalf("unexpected first audio stream: %+v", first)
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.FirstAudioStream() != nil {
		t.Fatal("expected no audio stream")
	}
}
