package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sage222/SageDialogEnhance/internal/config"
	"github.com/Sage222/SageDialogEnhance/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a file's audio parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if full {
				result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", result.RawJSON())
				return nil
			}

			audio, probeErr := ffprobe.ProbeAudio(cmd.Context(), cfg.FFprobeBinary(), path)
			fmt.Fprintf(out, "Codec:   %s\n", audio.Codec)
			fmt.Fprintf(out, "Bitrate: %s\n", audio.Bitrate)
			if probeErr != nil {
				fmt.Fprintf(out, "Note: probe failed (%v); showing fallback values\n", probeErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print the full ffprobe JSON inspection")
	return cmd
}
