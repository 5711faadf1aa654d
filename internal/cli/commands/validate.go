package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logsift/logsift/pkg/diag"
	"github.com/logsift/logsift/pkg/eventfilter"
	"github.com/logsift/logsift/pkg/parser"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	LogDir string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <events-file>",
		Short: "Validate an events configuration file",
		Long: `Parse an events configuration file without running analysis.

Checks:
  - Line grammar (category plus flags)
  - Flag arguments
  - Regex pattern validity
  - Log directory contents (with --log-dir, warning only)

Malformed lines are reported as warnings; the resulting filter list is
printed as it would be used by analyze.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.LogDir, "log-dir", "", "Also check this directory for log files")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	eventsFile := args[0]
	w := cmd.OutOrStdout()

	if info, err := os.Stat(eventsFile); err != nil || info.IsDir() {
		return fmt.Errorf("events file does not exist: %s", eventsFile)
	}

	fmt.Fprintf(w, "Validating %s...\n", eventsFile)

	filters, err := eventfilter.LoadFile(eventsFile, diag.New(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nFilters parsed: %d\n", len(filters))
	for i, f := range filters {
		fmt.Fprintf(w, "  %d. %s\n", i+1, f.Description())
	}

	// Check log directory contents (warnings only)
	if opts.LogDir != "" {
		files, err := parser.ListLogFiles(opts.LogDir)
		if err != nil {
			fmt.Fprintf(w, "\nWarning: %v\n", err)
		} else if len(files) == 0 {
			fmt.Fprintf(w, "\nWarning: no log files found in %s\n", opts.LogDir)
		} else {
			fmt.Fprintf(w, "\nLog files found: %d\n", len(files))
			for _, f := range files {
				fmt.Fprintf(w, "  - %s\n", f)
			}
		}
	}

	return nil
}
