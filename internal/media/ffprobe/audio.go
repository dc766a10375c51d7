package ffprobe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Sage222/SageDialogEnhance/internal/services"
)

// AudioInfo describes the first audio stream of a source file. Values are
// pass-through strings handed straight to ffmpeg.
type AudioInfo struct {
	Codec   string
	Bitrate string
}

// DefaultAudio is used whenever probing fails. Transcoding with a generic
// codec beats aborting the whole batch over a probe hiccup.
var DefaultAudio = AudioInfo{Codec: "aac", Bitrate: "192k"}

// ProbeAudio inspects the first audio stream of path and returns its codec
// and bitrate. When the process fails or reports nothing it returns
// DefaultAudio together with the error that triggered the fallback; when
// only the bitrate is unusable the probed codec is kept and just the
// bitrate falls back. The returned AudioInfo is always usable.
func ProbeAudio(ctx context.Context, binary string, path string) (AudioInfo, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultAudio, services.Wrap(services.ErrProbe, "probe", "ffprobe", "empty path", nil)
	}

	cmd := exec.CommandContext(
		ctx,
		binary,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name,bit_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return DefaultAudio, services.Wrap(services.ErrProbe, "probe", "ffprobe", "", err)
	}

	info, err := parseAudioProbe(string(output))
	if err != nil {
		return DefaultAudio, services.Wrap(services.ErrProbe, "probe", "parse output", "", err)
	}
	return info, nil
}

// parseAudioProbe decodes the nokey probe output: codec name on the first
// line, bitrate in bits per second on the second.
func parseAudioProbe(output string) (AudioInfo, error) {
	var values []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			values = append(values, line)
		}
	}
	if len(values) == 0 {
		return AudioInfo{}, fmt.Errorf("audio probe: no audio stream reported")
	}

	// ffprobe reports "N/A" for containers that carry no per-stream bitrate
	// (mkv commonly does). The probed codec still stands on its own, so only
	// the bitrate falls back.
	info := AudioInfo{Codec: values[0], Bitrate: DefaultAudio.Bitrate}
	if len(values) >= 2 {
		if bits, err := strconv.ParseInt(values[1], 10, 64); err == nil && bits >= 0 {
			info.Bitrate = fmt.Sprintf("%dk", bits/1000)
		}
	}
	return info, nil
}
