package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeCatalog()
	if err := c.normalizeSeries(); err != nil {
		return err
	}
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeCatalog() {
	c.Catalog.Marketplace = strings.ToLower(strings.TrimSpace(c.Catalog.Marketplace))
	if c.Catalog.Marketplace == "" {
		c.Catalog.Marketplace = defaultMarketplace
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	c.Catalog.AccessToken = strings.TrimSpace(c.Catalog.AccessToken)
	if c.Catalog.AccessToken == "" {
		if value, ok := os.LookupEnv("AUDIBLE_ACCESS_TOKEN"); ok {
			c.Catalog.AccessToken = strings.TrimSpace(value)
		}
	}
	if c.Catalog.TimeoutSeconds == 0 {
		c.Catalog.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeSeries() error {
	path := strings.TrimSpace(c.Series.OptionsPath)
	if path == "" {
		c.Series.OptionsPath = ""
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("series.options_path: %w", err)
	}
	c.Series.OptionsPath = expanded
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	file := strings.TrimSpace(c.Logging.File)
	if file == "" {
		c.Logging.File = ""
		return nil
	}
	expanded, err := expandPath(file)
	if err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	c.Logging.File = expanded
	return nil
}
