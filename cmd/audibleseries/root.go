package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string
	var logFileFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag, &logFileFlag)

	rootCmd := &cobra.Command{
		Use:           "audibleseries",
		Short:         "Find new releases in the audiobook series you own",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also append logs to this file")

	rootCmd.AddCommand(newSeriesCommand(ctx))
	rootCmd.AddCommand(newLatestCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
