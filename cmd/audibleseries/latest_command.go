package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audibleseries/internal/report"
	"audibleseries/internal/workflow"
)

func newLatestCommand(ctx *commandContext) *cobra.Command {
	var libraryPath string
	var optionsPath string
	var jsonOutput bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the latest owned book of every series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts, err := ctx.seriesOptions(optionsPath)
			if err != nil {
				return err
			}
			plan, err := workflow.Prepare(workflow.Request{LibraryPath: libraryPath, Options: opts}, logger)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report.NewLatestDocument(plan.Latest, plan.Warnings))
			}

			if err := report.RenderWarnings(cmd.ErrOrStderr(), plan.Warnings, shouldColorize(cmd.ErrOrStderr(), noColor)); err != nil {
				return err
			}
			rows := report.LatestRows(plan.Latest)
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No series found in library.")
				return nil
			}
			table := renderTable(
				[]string{"Series", "#", "Title", "ASIN", "Released"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryPath, "library", "l", "", "Exported library TSV file")
	cmd.Flags().StringVarP(&optionsPath, "options", "o", "", "Series options YAML file (defaults to series.options_path)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	_ = cmd.MarkFlagRequired("library")
	return cmd
}
