package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sage222/SageDialogEnhance/internal/deps"
	"github.com/Sage222/SageDialogEnhance/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := preflight.CheckSystemDeps(cfg)
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				detail := status.Command
				if !status.Available {
					state = "missing"
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, state, detail, status.Description})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Status", "Detail", "Purpose"},
				rows,
				nil,
			))

			if !deps.AllAvailable(statuses) {
				return errors.New("required tools are missing")
			}
			return nil
		},
	}
}
