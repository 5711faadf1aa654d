package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/logsift/logsift/pkg/config"
	"github.com/logsift/logsift/pkg/diag"
	"github.com/logsift/logsift/pkg/engine"
	"github.com/logsift/logsift/pkg/eventfilter"
	"github.com/logsift/logsift/pkg/output"
	"github.com/logsift/logsift/pkg/parser"
	"github.com/logsift/logsift/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigFile string
	LogDir     string
	EventsFile string
	From       string
	To         string
	Output     string
	Verbose    bool
	Quiet      bool
	Debug      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Scan a log directory for configured events",
		Long: `Scan every .log and .log.gz file in a directory and report the lines
(or match counts) for each filter in the events file.

The report goes to stdout; warnings about malformed events lines or log
records go to stderr.

Exit codes:
  0 - Analysis completed
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Optional YAML settings file")
	cmd.Flags().StringVar(&opts.LogDir, "log-dir", "", "Directory containing log files (.log, .log.gz)")
	cmd.Flags().StringVar(&opts.EventsFile, "events-file", "", "Events configuration file")
	cmd.Flags().StringVar(&opts.From, "from", "", "Include records from this timestamp (inclusive), format: YYYY-MM-DDTHH:MM:SS")
	cmd.Flags().StringVar(&opts.To, "to", "", "Include records up to this timestamp (inclusive), format: YYYY-MM-DDTHH:MM:SS")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print run statistics to stderr")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-filter blocks")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Show debug diagnostics (skipped lines)")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_matches", "When to fire webhook (on_matches|always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load settings and apply flag overrides
	cfg, err := config.Resolve(ctx, opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	mergeFlags(cfg, opts)

	if cfg.LogDir == "" {
		return fmt.Errorf("log directory is required (--log-dir)")
	}
	if cfg.EventsFile == "" {
		return fmt.Errorf("events file is required (--events-file)")
	}

	// Validate input paths before any work begins
	info, err := os.Stat(cfg.LogDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("log directory does not exist: %s", cfg.LogDir)
	}
	if info, err := os.Stat(cfg.EventsFile); err != nil || info.IsDir() {
		return fmt.Errorf("events file does not exist: %s", cfg.EventsFile)
	}

	from, to, err := parseRange(cfg.From, cfg.To)
	if err != nil {
		return err
	}

	d := diag.New(cmd.ErrOrStderr())
	d.SetDebug(opts.Debug)

	// Parse event filters (line-resilient; only read failures are fatal)
	filters, err := eventfilter.LoadFile(cfg.EventsFile, d)
	if err != nil {
		return fmt.Errorf("parsing events file: %w", err)
	}
	if len(filters) == 0 {
		d.Warnf("no filters parsed from events file %s", cfg.EventsFile)
	}

	// Create the log source over the directory
	source, err := parser.NewDirSource(cfg.LogDir, d)
	if err != nil {
		return fmt.Errorf("enumerating log files: %w", err)
	}
	defer source.Close()

	if len(source.Files()) == 0 {
		d.Warnf("no log files found in %s", cfg.LogDir)
	}

	// Run the engine
	eng := engine.New(filters,
		engine.WithTimeRange(from, to),
		engine.WithDiagnostics(d),
	)
	result, err := eng.Run(ctx, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result, cfg.EventsFile)

	formatter, err := createFormatter(cfg.Output, opts.Quiet)
	if err != nil {
		return err
	}
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Processed %d records from %d files in %s\n",
			report.Summary.RecordsProcessed,
			len(report.Metadata.Sources),
			report.Metadata.Duration.Round(time.Millisecond))
	}

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cfg, opts, report, cmd)

	return nil
}

// mergeFlags applies explicitly set CLI flags over config file values.
func mergeFlags(cfg *config.Config, opts *AnalyzeOptions) {
	if opts.LogDir != "" {
		cfg.LogDir = opts.LogDir
	}
	if opts.EventsFile != "" {
		cfg.EventsFile = opts.EventsFile
	}
	if opts.From != "" {
		cfg.From = opts.From
	}
	if opts.To != "" {
		cfg.To = opts.To
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
}

// parseRange parses the optional inclusive timestamp bounds.
func parseRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		from, err = time.Parse(parser.TimestampLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from timestamp %q (expected YYYY-MM-DDTHH:MM:SS)", fromStr)
		}
	}
	if toStr != "" {
		to, err = time.Parse(parser.TimestampLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to timestamp %q (expected YYYY-MM-DDTHH:MM:SS)", toStr)
		}
	}
	return from, to, nil
}

func createFormatter(format string, quiet bool) (output.Formatter, error) {
	formatOpts := output.FormatOptions{Quiet: quiet}

	switch format {
	case "", "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the run.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *AnalyzeOptions, report *output.Report, cmd *cobra.Command) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasMatches()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnMatches
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and matches.
func shouldFireWebhook(trigger config.WebhookTrigger, hasMatches bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnMatches:
		return hasMatches
	default:
		return hasMatches
	}
}
