package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.BaseURL != "" {
		parsed, err := url.Parse(c.Catalog.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("catalog.base_url %q must be an absolute URL", c.Catalog.BaseURL)
		}
	} else if _, ok := marketplaces[c.Catalog.Marketplace]; !ok {
		return fmt.Errorf("catalog.marketplace %q is not supported", c.Catalog.Marketplace)
	}
	if c.Catalog.TimeoutSeconds < 0 {
		return errors.New("catalog.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if topic := c.Notifications.NtfyTopic; topic != "" {
		parsed, err := url.Parse(topic)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("notifications.ntfy_topic %q must be an http(s) URL", topic)
		}
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
