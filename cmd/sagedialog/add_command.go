package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Sage222/SageDialogEnhance/internal/config"
	"github.com/Sage222/SageDialogEnhance/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file-or-directory>...",
		Short: "Queue video files for dialog enhancement",
		Long:  "Queues the given files. Directories are scanned non-recursively for files with configured extensions. Paths already queued are reported and skipped.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			paths, err := collectInputs(cfg, args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no eligible files found")
			}

			out := cmd.OutOrStdout()
			added := 0
			for _, path := range paths {
				job, err := store.Add(cmd.Context(), path)
				if err != nil {
					if errors.Is(err, queue.ErrDuplicatePath) {
						fmt.Fprintf(out, "Already queued: %s\n", path)
						continue
					}
					return fmt.Errorf("queue %s: %w", path, err)
				}
				added++
				fmt.Fprintf(out, "Queued #%d: %s\n", job.ID, path)
			}
			fmt.Fprintf(out, "%d file(s) queued\n", added)
			return nil
		},
	}
}

// collectInputs expands the argument list into absolute eligible file paths.
// Directories contribute their matching entries sorted by name; explicit file
// arguments must carry an eligible extension too, so a typo'd path fails the
// invocation instead of queueing something ffmpeg cannot handle.
func collectInputs(cfg *config.Config, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		expanded, err := config.ExpandPath(arg)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(expanded)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !cfg.EligibleExtension(info.Name()) {
				return nil, fmt.Errorf("%s: extension is not in the eligible list", arg)
			}
			paths = append(paths, expanded)
			continue
		}

		entries, err := os.ReadDir(expanded)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		var matched []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if cfg.EligibleExtension(entry.Name()) {
				matched = append(matched, filepath.Join(expanded, entry.Name()))
			}
		}
		sort.Strings(matched)
		paths = append(paths, matched...)
	}
	return paths, nil
}
