package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"audibleseries/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool
	var seriesFile bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			defaultPath := config.DefaultConfigPath
			create := config.CreateSample
			kind := "configuration"
			if seriesFile {
				defaultPath = config.DefaultSeriesPath
				create = config.CreateSampleSeries
				kind = "series options"
			}

			target := strings.TrimSpace(targetPath)
			if target == "" {
				resolved, err := defaultPath()
				if err != nil {
					return fmt.Errorf("determine default %s path: %w", kind, err)
				}
				target = resolved
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve %s path: %w", kind, err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("%s file already exists at %s (use --overwrite to replace it)", kind, target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check %s path: %w", kind, err)
				}
			}

			if err := create(target); err != nil {
				return fmt.Errorf("create sample %s: %w", kind, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample %s to %s\n", kind, target)
			if !seriesFile {
				fmt.Fprintln(out, "Set catalog.marketplace (and access_token or AUDIBLE_ACCESS_TOKEN if required) before running audibleseries.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite the file if present")
	cmd.Flags().BoolVar(&seriesFile, "series", false, "Write a sample series options file instead")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var optionsPath string

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and series options files",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(flagValue(ctx.configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Catalog: %s\n", cfg.CatalogBaseURL())

			seriesPath := cfg.Series.OptionsPath
			var opts *config.Series
			if strings.TrimSpace(optionsPath) != "" {
				seriesPath, err = config.ExpandPath(optionsPath)
				if err != nil {
					return fmt.Errorf("resolve series options path: %w", err)
				}
				opts, err = config.LoadSeries(seriesPath)
			} else {
				opts, err = config.LoadSeriesIfExists(seriesPath)
			}
			if err != nil {
				return fmt.Errorf("load series options: %w", err)
			}
			skipped, preordered, overrides, disallowed := opts.Counts()
			fmt.Fprintf(out, "Series options: %s (skip %d, preordered %d, overrides %d, disallowed %d)\n",
				seriesPath, skipped, preordered, overrides, disallowed)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&optionsPath, "options", "o", "", "Series options YAML file (defaults to series.options_path)")
	return cmd
}
