package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultOutput         = "text"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvLogDir     = "LOGSIFT_LOG_DIR"
	EnvEventsFile = "LOGSIFT_EVENTS_FILE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if dir := os.Getenv(EnvLogDir); dir != "" {
		c.LogDir = dir
	}
	if file := os.Getenv(EnvEventsFile); file != "" {
		c.EventsFile = file
	}
}
