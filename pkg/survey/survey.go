// Package survey scans a log directory and tallies the event categories
// and levels it contains, to help operators write an events file.
package survey

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logsift/logsift/pkg/diag"
	"github.com/logsift/logsift/pkg/parser"
)

// Count is a tally for one token value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Result holds the tallies for one directory scan.
type Result struct {
	// Files lists the log files scanned.
	Files []string `json:"files"`

	// LinesScanned is the total number of lines read.
	LinesScanned int `json:"lines_scanned"`

	// RecordsParsed is the number of lines matching the log line grammar.
	RecordsParsed int `json:"records_parsed"`

	// Categories tallies event categories, most frequent first.
	Categories []Count `json:"categories"`

	// Levels tallies log levels, most frequent first.
	Levels []Count `json:"levels"`
}

// Run scans every log file in dir and returns the tallies.
func Run(ctx context.Context, dir string, d *diag.Logger) (*Result, error) {
	source, err := parser.NewDirSource(dir, d)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	categories := make(map[string]int)
	levels := make(map[string]int)
	parsed := 0

	for {
		record, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scanning logs: %w", err)
		}
		parsed++
		categories[record.Category]++
		levels[record.Level]++
	}

	return &Result{
		Files:         source.Files(),
		LinesScanned:  source.LinesScanned(),
		RecordsParsed: parsed,
		Categories:    sortCounts(categories),
		Levels:        sortCounts(levels),
	}, nil
}

// StarterEvents renders a starter events file from the scan: one
// count-only filter per category, plus commented hints.
func (r *Result) StarterEvents() string {
	var sb strings.Builder
	sb.WriteString("# Events file generated by logsift survey.\n")
	sb.WriteString("# Line grammar: <category> [--count] [--level <LEVEL>] [--pattern <REGEX>]\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&sb, "%s --count\n", c.Value)
	}
	return sb.String()
}

func sortCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for v, n := range m {
		counts = append(counts, Count{Value: v, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts
}
