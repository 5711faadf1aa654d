// Package config provides loading and validation of the optional YAML
// run-settings file. The events configuration itself is a separate
// line-oriented file parsed by pkg/eventfilter.
package config

import "time"

// Config is the root settings structure loaded from YAML. Every field can
// be overridden by the corresponding CLI flag.
type Config struct {
	// LogDir is the directory containing .log and .log.gz files.
	LogDir string `yaml:"log_dir"`

	// EventsFile is the path to the events configuration file.
	EventsFile string `yaml:"events_file"`

	// From and To are inclusive timestamp bounds in the
	// YYYY-MM-DDTHH:MM:SS lexical format. Empty means unbounded.
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// Output is the report format: text (default) or json.
	Output string `yaml:"output,omitempty"`

	// Webhooks are endpoints the report is posted to after a run.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnMatches fires only when at least one filter matched (default).
	WebhookTriggerOnMatches WebhookTrigger = "on_matches"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for report delivery.
type WebhookConfig struct {
	// Name identifies the webhook in diagnostics (defaults to the URL).
	Name string `yaml:"name,omitempty"`

	// URL is the HTTP(S) endpoint to post the JSON report to.
	URL string `yaml:"url"`

	// Token is an optional bearer token. Supports ${VAR} and $VAR
	// environment expansion.
	Token string `yaml:"token,omitempty"`

	// Trigger controls when the webhook fires: on_matches, always, never.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
