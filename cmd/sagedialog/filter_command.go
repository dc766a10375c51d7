package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sage222/SageDialogEnhance/internal/filterchain"
)

func newFilterCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Print the ffmpeg filter chain the current config produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			chain, err := filterchain.Build(cfg.Equalizer, cfg.Speechnorm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), chain)
			return nil
		},
	}
}
