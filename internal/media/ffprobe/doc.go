// Package ffprobe provides a typed wrapper around ffprobe output.
//
// Key types:
//   - AudioInfo: codec and bitrate of the first audio stream, used to carry
//     the source audio parameters over to the transcode
//   - Result: parsed JSON inspection containing streams and format metadata
//
// Primary entry points:
//   - ProbeAudio: fast first-audio-stream probe with a safe fallback
//   - Inspect: full JSON inspection for the probe CLI command
package ffprobe
