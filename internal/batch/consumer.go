package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/Sage222/SageDialogEnhance/internal/config"
	"github.com/Sage222/SageDialogEnhance/internal/events"
	"github.com/Sage222/SageDialogEnhance/internal/logging"
)

// Consumer polls the event bus and renders batch output to the terminal.
// Interactive terminals get an in-place progress line; everything else gets
// plain lines suitable for log capture.
type Consumer struct {
	bus      *events.Bus
	interval time.Duration
	out      io.Writer
	logger   *slog.Logger
	tty      bool

	totalJobs    int
	lastFile     int
	lastOverall  int
	progressLine bool
	stopped      bool
	done         bool
}

// NewConsumer constructs a consumer polling at the configured interval.
func NewConsumer(bus *events.Bus, cfg *config.Config, logger *slog.Logger, out io.Writer, totalJobs int) *Consumer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}

	interval := time.Duration(cfg.Workflow.EventPollIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	tty := false
	if file, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}

	return &Consumer{
		bus:       bus,
		interval:  interval,
		out:       out,
		logger:    logger,
		tty:       tty,
		totalJobs: totalJobs,
	}
}

// Run drains the bus until the completion event arrives or the context is
// cancelled. It reports whether the batch ended on a user stop.
func (c *Consumer) Run(ctx context.Context) bool {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.drain()
			c.finishProgressLine()
			return c.stopped
		case <-ticker.C:
			c.drain()
			if c.done {
				c.finishProgressLine()
				return c.stopped
			}
		}
	}
}

// drain flushes all three channels once. Debug lines go to the structured
// logger only; log and progress events render to the terminal.
func (c *Consumer) drain() {
	for _, line := range c.bus.DrainDebug() {
		c.logger.Debug("ffmpeg output", logging.String("line", line))
	}

	for _, evt := range c.bus.DrainProgress() {
		switch evt.Kind {
		case events.ProgressFile:
			c.lastFile = evt.Value
		case events.ProgressOverall:
			c.lastOverall = evt.Value
		}
	}
	c.renderProgress()

	for _, evt := range c.bus.DrainLog() {
		if evt.Done {
			c.done = true
			c.stopped = evt.Stopped
			continue
		}
		c.printLine(evt.Message)
	}
}

func (c *Consumer) renderProgress() {
	if !c.tty || c.totalJobs == 0 {
		return
	}
	c.finishPendingNewline()
	fmt.Fprintf(c.out, "\rfile: %3d%% | batch: %d/%d", c.lastFile, c.lastOverall, c.totalJobs)
	c.progressLine = true
}

func (c *Consumer) printLine(message string) {
	c.finishPendingNewline()
	fmt.Fprintln(c.out, message)
}

// finishPendingNewline terminates an in-place progress line before other
// output so lines never interleave on one row.
func (c *Consumer) finishPendingNewline() {
	if c.progressLine {
		fmt.Fprintln(c.out)
		c.progressLine = false
	}
}

func (c *Consumer) finishProgressLine() {
	c.finishPendingNewline()
}
