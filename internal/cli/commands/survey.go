package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logsift/logsift/pkg/diag"
	"github.com/logsift/logsift/pkg/survey"
)

// SurveyOptions holds command-line options for the survey command.
type SurveyOptions struct {
	Output      string
	WriteEvents string
}

// NewSurveyCommand creates the survey command.
func NewSurveyCommand() *cobra.Command {
	opts := &SurveyOptions{}

	cmd := &cobra.Command{
		Use:   "survey <log-dir>",
		Short: "Tally event categories and levels in a log directory",
		Long: `Scan every .log and .log.gz file in a directory and report which event
categories and levels appear, how often, and how many lines match the
log line grammar.

Optionally writes a starter events file with --write-events.

Example:
  logsift survey /var/log/myapp
  logsift survey --write-events events.txt /var/log/myapp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurvey(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.WriteEvents, "write-events", "w", "", "Write starter events file (will not overwrite)")

	return cmd
}

func runSurvey(cmd *cobra.Command, args []string, opts *SurveyOptions) error {
	logDir := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := os.Stat(logDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("log directory does not exist: %s", logDir)
	}

	result, err := survey.Run(ctx, logDir, diag.New(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("survey failed: %w", err)
	}

	if opts.WriteEvents != "" {
		if err := writeStarterEvents(result, opts.WriteEvents); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Starter events file written to %s\n\n", opts.WriteEvents)
	}

	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "text":
		return outputSurveyText(cmd, logDir, result)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputSurveyText(cmd *cobra.Command, logDir string, result *survey.Result) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "=== Log Directory Survey ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Directory:      %s\n", logDir)
	fmt.Fprintf(w, "Files scanned:  %d\n", len(result.Files))
	fmt.Fprintf(w, "Lines scanned:  %d\n", result.LinesScanned)
	fmt.Fprintf(w, "Records parsed: %d\n", result.RecordsParsed)
	fmt.Fprintln(w)

	if result.RecordsParsed == 0 {
		fmt.Fprintln(w, "No parseable log records found.")
		fmt.Fprintln(w, "Expected line grammar: <YYYY-MM-DDTHH:MM:SS> <level> <category> <message>")
		return nil
	}

	fmt.Fprintln(w, "Categories:")
	for _, c := range result.Categories {
		fmt.Fprintf(w, "  %-20s %d\n", c.Value, c.Count)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Levels:")
	for _, c := range result.Levels {
		fmt.Fprintf(w, "  %-20s %d\n", c.Value, c.Count)
	}

	return nil
}

func writeStarterEvents(result *survey.Result, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}
	if err := os.WriteFile(path, []byte(result.StarterEvents()), 0600); err != nil {
		return fmt.Errorf("writing events file: %w", err)
	}
	return nil
}
