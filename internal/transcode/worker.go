package transcode

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Sage222/SageDialogEnhance/internal/events"
	"github.com/Sage222/SageDialogEnhance/internal/logging"
	"github.com/Sage222/SageDialogEnhance/internal/media/ffprobe"
)

// Outcome classifies how a job run ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeStopped   Outcome = "stopped"
)

// Request carries everything the worker needs to run one job.
type Request struct {
	InputPath   string
	OutputPath  string
	Audio       ffprobe.AudioInfo
	FilterChain string
}

// Result reports a finished run. Err is set only for OutcomeFailed.
type Result struct {
	Outcome Outcome
	Err     error
}

// Option configures the worker.
type Option func(*Worker)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(w *Worker) {
		if exec != nil {
			w.exec = exec
		}
	}
}

// Worker runs ffmpeg for one job at a time and publishes its output to the
// event bus.
type Worker struct {
	binary string
	bus    *events.Bus
	logger *slog.Logger
	exec   Executor
}

// NewWorker constructs a worker around the given ffmpeg binary.
func NewWorker(binary string, bus *events.Bus, logger *slog.Logger, opts ...Option) *Worker {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	worker := &Worker{
		binary: binary,
		bus:    bus,
		logger: logger,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(worker)
	}
	return worker
}

// Run executes ffmpeg for the request. A stop requested before the process
// starts yields OutcomeStopped without spawning anything; a stop during the
// run terminates the process and also yields OutcomeStopped. Process failure
// with no stop pending yields OutcomeFailed.
func (w *Worker) Run(ctx context.Context, req Request, token *CancelToken) Result {
	if token != nil && token.Stopped() {
		return Result{Outcome: OutcomeStopped}
	}

	args := buildArgs(req)
	w.bus.Debug(w.binary + " " + strings.Join(args, " "))
	w.logger.Debug("starting ffmpeg",
		logging.String("input", req.InputPath),
		logging.String("output", req.OutputPath),
		logging.String("codec", req.Audio.Codec),
		logging.String("bitrate", req.Audio.Bitrate),
	)

	onStart := func(proc ProcessHandle) {
		if token != nil {
			token.attach(proc)
		}
	}
	defer func() {
		if token != nil {
			token.detach()
		}
	}()

	// Once a stop lands the process is on its way out; its remaining output
	// must not keep driving the debug and progress channels.
	onLine := func(line string) {
		if token != nil && token.Stopped() {
			return
		}
		w.handleLine(line)
	}

	runErr := w.exec.Run(ctx, w.binary, args, onLine, onStart)

	if token != nil && token.Stopped() {
		return Result{Outcome: OutcomeStopped}
	}
	if runErr != nil {
		return Result{Outcome: OutcomeFailed, Err: runErr}
	}

	// ffmpeg can exit cleanly without a final progress=end line; force the
	// terminal value so consumers always see completion.
	w.bus.FileProgress(100)
	return Result{Outcome: OutcomeSucceeded}
}

// handleLine routes one merged output line: every non-empty line goes to
// the debug channel, progress markers additionally drive the file progress
// channel.
func (w *Worker) handleLine(line string) {
	line = strings.ToValidUTF8(strings.TrimRight(line, "\r"), "�")
	if strings.TrimSpace(line) == "" {
		return
	}
	w.bus.Debug(line)

	switch {
	case strings.Contains(line, "out_time_ms="):
		w.bus.FileProgress(50)
	case strings.TrimSpace(line) == "progress=end":
		w.bus.FileProgress(100)
	}
}

// buildArgs assembles the ffmpeg invocation: copy the video stream, re-encode
// the audio with the source codec and bitrate, apply the filter chain, and
// stream machine-readable progress on stdout.
func buildArgs(req Request) []string {
	return []string{
		"-y",
		"-i", req.InputPath,
		"-c:v", "copy",
		"-c:a", req.Audio.Codec,
		"-b:a", req.Audio.Bitrate,
		"-af", req.FilterChain,
		"-progress", "pipe:1",
		req.OutputPath,
	}
}
