package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"audibleseries/internal/config"
	"audibleseries/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string
	logFileFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	runID string
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag, logFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		logFileFlag:   logFileFlag,
		runID:         uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if file := flagValue(c.logFileFlag); file != "" {
			expanded, err := config.ExpandPath(file)
			if err != nil {
				c.configErr = fmt.Errorf("resolve log file: %w", err)
				return
			}
			cfg.Logging.File = expanded
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds a run-scoped logger writing to w.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, w)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger.With(logging.String(logging.FieldRunID, c.runID)), nil
}

// seriesOptions loads the series options named by path, falling back to the
// configured options file. Only an explicitly named file must exist.
func (c *commandContext) seriesOptions(path string) (*config.Series, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolve series options path: %w", err)
		}
		return config.LoadSeries(expanded)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return config.LoadSeriesIfExists(cfg.Series.OptionsPath)
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
