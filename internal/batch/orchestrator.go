package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Sage222/SageDialogEnhance/internal/config"
	"github.com/Sage222/SageDialogEnhance/internal/events"
	"github.com/Sage222/SageDialogEnhance/internal/fileutil"
	"github.com/Sage222/SageDialogEnhance/internal/filterchain"
	"github.com/Sage222/SageDialogEnhance/internal/logging"
	"github.com/Sage222/SageDialogEnhance/internal/media/ffprobe"
	"github.com/Sage222/SageDialogEnhance/internal/queue"
	"github.com/Sage222/SageDialogEnhance/internal/services"
	"github.com/Sage222/SageDialogEnhance/internal/transcode"
)

// Orchestrator drives pending jobs through the pipeline sequentially.
type Orchestrator struct {
	cfg    *config.Config
	store  *queue.Store
	bus    *events.Bus
	logger *slog.Logger
	worker *transcode.Worker
	token  *transcode.CancelToken
	runID  string
}

// New constructs an orchestrator for one batch run.
func New(cfg *config.Config, store *queue.Store, bus *events.Bus, logger *slog.Logger, worker *transcode.Worker, token *transcode.CancelToken) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if token == nil {
		token = transcode.NewCancelToken()
	}
	return &Orchestrator{
		cfg:    cfg,
		store:  store,
		bus:    bus,
		logger: logger,
		worker: worker,
		token:  token,
		runID:  uuid.NewString(),
	}
}

// RunID identifies this batch run in logs.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Token exposes the cancel token so signal handlers can request a stop.
func (o *Orchestrator) Token() *transcode.CancelToken {
	return o.token
}

// Run processes every pending job in order. It always emits the tagged
// completion event, including on panic; a panic is reported as a critical
// failure rather than crashing the process mid-batch.
func (o *Orchestrator) Run(ctx context.Context) (err error) {
	logger := o.logger.With(logging.String(logging.FieldBatchID, o.runID))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("batch run panicked", logging.Any("panic", r))
			o.bus.Log(fmt.Sprintf("critical error: %v", r))
			err = fmt.Errorf("batch run panicked: %v", r)
		}
		o.bus.Done(o.token.Stopped())
	}()

	jobs, err := o.store.List(ctx, queue.StatusPending)
	if err != nil {
		o.bus.Log(fmt.Sprintf("failed to read queue: %v", err))
		return fmt.Errorf("list pending jobs: %w", err)
	}

	total := len(jobs)
	if total == 0 {
		o.bus.Log("no pending jobs")
		return nil
	}

	logger.Info("batch started", logging.Int("jobs", total))
	o.bus.Log(fmt.Sprintf("starting batch of %d file(s)", total))

	for i, job := range jobs {
		o.bus.Log(fmt.Sprintf("processing file %d of %d: %s", i+1, total, filepath.Base(job.SourcePath)))
		o.bus.FileProgress(0)

		o.processJob(ctx, logger, job)

		o.bus.OverallProgress(i + 1)

		if o.token.Stopped() {
			logger.Info("stop requested, halting batch",
				logging.Int("processed", i+1),
				logging.Int("remaining", total-i-1),
			)
			o.bus.Log("stop requested; remaining files stay queued")
			break
		}
	}

	logger.Info("batch finished", logging.Bool("stopped", o.token.Stopped()))
	return nil
}

// processJob runs one job end to end and persists every state transition.
// Failures are recorded on the job and never abort the batch.
func (o *Orchestrator) processJob(ctx context.Context, logger *slog.Logger, job *queue.Job) {
	jobLogger := logger.With(logging.Int64(logging.FieldJobID, job.ID))

	job.OutputPath = fileutil.OutputPath(job.SourcePath, o.cfg.Files.OutputFolder, o.cfg.Files.OutputSuffix)
	job.Status = queue.StatusProbing
	if err := o.store.Update(ctx, job); err != nil {
		o.failJob(ctx, jobLogger, job, services.Wrap(services.ErrIO, "batch", "persist job state", "", err))
		return
	}

	if fileutil.Exists(job.OutputPath) {
		job.Status = queue.StatusSkipped
		job.ProgressPercent = 100
		o.bus.FileProgress(100)
		o.bus.Log(fmt.Sprintf("skipping %s: output already exists", filepath.Base(job.SourcePath)))
		jobLogger.Info("job skipped", logging.String("output", job.OutputPath))
		o.updateJob(ctx, jobLogger, job)
		return
	}

	if err := fileutil.EnsureDir(filepath.Dir(job.OutputPath)); err != nil {
		o.failJob(ctx, jobLogger, job, services.Wrap(services.ErrIO, "batch", "create output folder", "", err))
		return
	}

	audio, probeErr := ffprobe.ProbeAudio(ctx, o.cfg.FFprobeBinary(), job.SourcePath)
	if probeErr != nil {
		// Probe failures fall back to generic parameters; the job proceeds.
		jobLogger.Debug("audio probe fell back to defaults", logging.Error(probeErr))
		o.bus.Debug(fmt.Sprintf("audio probe failed for %s: %v", job.SourcePath, probeErr))
	} else {
		o.bus.Debug(fmt.Sprintf("audio probe %s: codec=%s bitrate=%s", filepath.Base(job.SourcePath), audio.Codec, audio.Bitrate))
	}
	job.Codec = audio.Codec
	job.Bitrate = audio.Bitrate

	chain, err := filterchain.Build(o.cfg.Equalizer, o.cfg.Speechnorm)
	if err != nil {
		o.failJob(ctx, jobLogger, job, err)
		return
	}

	job.Status = queue.StatusRunning
	if err := o.store.Update(ctx, job); err != nil {
		o.failJob(ctx, jobLogger, job, services.Wrap(services.ErrIO, "batch", "persist job state", "", err))
		return
	}

	result := o.worker.Run(ctx, transcode.Request{
		InputPath:   job.SourcePath,
		OutputPath:  job.OutputPath,
		Audio:       audio,
		FilterChain: chain,
	}, o.token)

	switch result.Outcome {
	case transcode.OutcomeSucceeded:
		job.Status = queue.StatusSucceeded
		job.ProgressPercent = 100
		job.ErrorMessage = ""
		o.bus.Log(fmt.Sprintf("finished %s", filepath.Base(job.SourcePath)))
		jobLogger.Info("job succeeded", logging.String("output", job.OutputPath))
	case transcode.OutcomeStopped:
		job.Status = queue.StatusStopped
		o.bus.Log(fmt.Sprintf("stopped %s", filepath.Base(job.SourcePath)))
		jobLogger.Info("job stopped")
	default:
		job.SetFailed(result.Err.Error())
		o.bus.Log(fmt.Sprintf("failed %s: %v", filepath.Base(job.SourcePath), result.Err))
		jobLogger.Error("job failed", logging.Error(result.Err))
	}

	o.updateJob(ctx, jobLogger, job)
}

func (o *Orchestrator) failJob(ctx context.Context, logger *slog.Logger, job *queue.Job, cause error) {
	job.SetFailed(cause.Error())
	o.bus.Log(fmt.Sprintf("failed %s: %v", filepath.Base(job.SourcePath), cause))
	logger.Error("job failed", logging.Error(cause))
	o.updateJob(ctx, logger, job)
}

func (o *Orchestrator) updateJob(ctx context.Context, logger *slog.Logger, job *queue.Job) {
	if err := o.store.Update(ctx, job); err != nil {
		logger.Error("failed to persist job state", logging.Error(err))
	}
}
