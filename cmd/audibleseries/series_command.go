package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"audibleseries/internal/catalog"
	"audibleseries/internal/library"
	"audibleseries/internal/logging"
	"audibleseries/internal/notifications"
	"audibleseries/internal/report"
	"audibleseries/internal/workflow"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	var libraryPath string
	var optionsPath string
	var onlySeries []string
	var jsonOutput bool
	var noColor bool
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Check the catalog for the next book of every owned series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts, err := ctx.seriesOptions(optionsPath)
			if err != nil {
				return err
			}

			plan, err := workflow.Prepare(workflow.Request{
				LibraryPath: libraryPath,
				Options:     opts,
				OnlySeries:  onlySeries,
			}, logger)
			if err != nil {
				return err
			}
			if !jsonOutput {
				colorize := shouldColorize(cmd.ErrOrStderr(), noColor)
				if err := report.RenderWarnings(cmd.ErrOrStderr(), plan.Warnings, colorize); err != nil {
					return err
				}
				if err := report.RenderUnmatched(cmd.ErrOrStderr(), plan.Unmatched, colorize); err != nil {
					return err
				}
			}

			client, err := catalog.New(cfg.CatalogBaseURL(),
				catalog.WithAccessToken(cfg.Catalog.AccessToken),
				catalog.WithTimeout(time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second),
				catalog.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("init catalog client: %w", err)
			}

			var bar *lookupProgress
			var callback workflow.Progress
			if !jsonOutput && len(plan.Targets) > 0 && isTerminal(cmd.ErrOrStderr()) {
				bar = startLookupProgress(cmd.ErrOrStderr(), len(plan.Targets))
				callback = bar.callback()
			}

			notifier := notifications.NewService(cfg)
			if noNotify {
				notifier = notifications.NewService(nil)
			}

			result, err := plan.Classify(cmd.Context(), client, callback)
			if bar != nil {
				bar.stop()
			}
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					if notifyErr := notifier.NotifyError(cmd.Context(), err, "series check"); notifyErr != nil {
						logger.Warn("error notification failed", logging.Error(notifyErr))
					}
				}
				return err
			}
			if err := notifier.NotifyResult(cmd.Context(), result); err != nil {
				logging.WarnWithContext(logger, "result notification failed", "notification_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
					logging.String(logging.FieldImpact, "notification not delivered"))
			}

			today := library.Today()
			if jsonOutput {
				doc := report.NewDocument(result, plan.Warnings, today)
				doc.RunID = ctx.runID
				doc.Unmatched = plan.Unmatched
				return writeJSON(cmd, doc)
			}
			return report.Render(cmd.OutOrStdout(), result, report.RenderOptions{
				Colorize: shouldColorize(cmd.OutOrStdout(), noColor),
				Today:    today,
			})
		},
	}

	cmd.Flags().StringVarP(&libraryPath, "library", "l", "", "Exported library TSV file")
	cmd.Flags().StringVarP(&optionsPath, "options", "o", "", "Series options YAML file (defaults to series.options_path)")
	cmd.Flags().StringArrayVarP(&onlySeries, "only-series", "s", nil, "Only check the named series (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Do not send ntfy notifications")
	_ = cmd.MarkFlagRequired("library")
	return cmd
}
