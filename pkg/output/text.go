package output

import (
	"context"
	"fmt"
	"io"
)

// Separator is the fixed line emitted between consecutive filter blocks.
const Separator = "--------------------"

// TextFormatter renders the report in the plain text output format:
// one block per filter in declaration order, blocks separated by a
// fixed-width dash line, no trailing separator.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "logsift: %d filters checked, %d total matches, %d records processed\n",
			report.Summary.FiltersChecked,
			report.Summary.TotalMatches,
			report.Summary.RecordsProcessed)
		return err
	}

	for i, block := range report.Results {
		if i > 0 {
			if _, err := fmt.Fprintln(w, Separator); err != nil {
				return err
			}
		}
		if err := f.formatBlock(block, w); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatBlock(block *FilterBlock, w io.Writer) error {
	if block.CountOnly {
		_, err := fmt.Fprintf(w, "%s — matches: %d entries\n", block.Description, block.Count)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s — matching log lines:\n", block.Description); err != nil {
		return err
	}
	for _, line := range block.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
