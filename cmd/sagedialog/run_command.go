package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/Sage222/SageDialogEnhance/internal/batch"
	"github.com/Sage222/SageDialogEnhance/internal/events"
	"github.com/Sage222/SageDialogEnhance/internal/logging"
	"github.com/Sage222/SageDialogEnhance/internal/preflight"
	"github.com/Sage222/SageDialogEnhance/internal/queue"
	"github.com/Sage222/SageDialogEnhance/internal/transcode"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process all pending jobs",
		Long:  "Processes every pending job in queue order. Ctrl-C requests a graceful stop: the current file finishes terminating and the rest stay queued.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			// One batch run at a time per data dir.
			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "sagedialog.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another run is already in progress")
			}
			defer lock.Unlock()

			if !skipPreflight {
				results := preflight.RunAll(cfg)
				if !preflight.AllPassed(results) {
					out := cmd.ErrOrStderr()
					for _, result := range results {
						if !result.Passed {
							fmt.Fprintf(out, "preflight failed: %s: %s\n", result.Name, result.Detail)
						}
					}
					return errors.New("preflight checks failed")
				}
			}

			if reset, err := store.ResetStuckProcessing(cmd.Context()); err != nil {
				return err
			} else if reset > 0 {
				logger.Warn("reset stuck jobs from a previous run", logging.Int64("count", reset))
			}

			pending, err := store.List(cmd.Context(), queue.StatusPending)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue has no pending jobs")
				return nil
			}

			bus := events.NewBus()
			token := transcode.NewCancelToken()
			worker := transcode.NewWorker(cfg.FFmpegBinary(), bus, logging.NewComponentLogger(logger, "transcode"), transcode.WithExecutor(transcode.NewExecutor()))
			orch := batch.New(cfg, store, bus, logging.NewComponentLogger(logger, "batch"), worker, token)
			consumer := batch.NewConsumer(bus, cfg, logging.NewComponentLogger(logger, "consumer"), cmd.OutOrStdout(), len(pending))

			runCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// First interrupt asks the batch to stop after the current file;
			// a second one tears the run down immediately.
			signals := make(chan os.Signal, 2)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)
			go func() {
				<-signals
				fmt.Fprintln(cmd.ErrOrStderr(), "\nstop requested, finishing current file (Ctrl-C again to abort)")
				token.RequestStop()
				<-signals
				cancel()
			}()

			logger.Info("run starting",
				logging.String(logging.FieldBatchID, orch.RunID()),
				logging.Int("pending", len(pending)),
			)

			errCh := make(chan error, 1)
			go func() {
				errCh <- orch.Run(runCtx)
			}()

			stopped := consumer.Run(runCtx)
			runErr := <-errCh

			if runErr != nil {
				return runErr
			}
			if stopped {
				fmt.Fprintln(cmd.OutOrStdout(), "Batch stopped; remaining jobs stay queued")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Batch complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip tool and directory checks before running")
	return cmd
}
