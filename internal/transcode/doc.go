// Package transcode drives ffmpeg for a single job.
//
// The Worker builds the ffmpeg invocation from a Request, streams merged
// stdout and stderr lines into the event bus, and maps process exit into an
// Outcome. A CancelToken carries the cooperative stop request: it flips an
// idempotent flag and signals the live ffmpeg process when one is attached.
//
// Command execution goes through the Executor interface so tests can
// substitute a scripted process.
package transcode
