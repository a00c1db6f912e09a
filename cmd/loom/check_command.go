package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loom/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := deps.CheckAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				status := "ok"
				if !res.Available {
					status = "missing"
					if res.Optional {
						status = "optional"
					}
				}
				detail := res.Detail
				if detail == "" {
					detail = res.Description
				}
				rows = append(rows, []string{res.Name, res.Command, status, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Requirement", "Command", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if deps.Failed(results) {
				return fmt.Errorf("environment check failed")
			}
			return nil
		},
	}
}
