// Package output provides report construction and formatting for engine
// results.
package output

import (
	"time"

	"github.com/logsift/logsift/pkg/engine"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Results contains one block per configured filter, in declaration order.
	Results []*FilterBlock `json:"results"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// FiltersChecked is the number of filters that were evaluated.
	FiltersChecked int `json:"filters_checked"`

	// TotalMatches is the total match count across all filters.
	TotalMatches int `json:"total_matches"`

	// RecordsProcessed is the number of records evaluated against filters.
	RecordsProcessed int `json:"records_processed"`
}

// FilterBlock is the renderable result for one filter.
type FilterBlock struct {
	// Description is the filter's display label.
	Description string `json:"description"`

	// Category is the event category the filter matched on.
	Category string `json:"category"`

	// Level is the required level, if any.
	Level string `json:"level,omitempty"`

	// Pattern is the message-prefix pattern as written, if any.
	Pattern string `json:"pattern,omitempty"`

	// CountOnly indicates the filter reports a count instead of lines.
	CountOnly bool `json:"count_only"`

	// Count is the number of matching records.
	Count int `json:"count"`

	// Lines holds the raw matched log lines in encounter order.
	// Empty for count-only filters.
	Lines []string `json:"lines,omitempty"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// EventsFile is the path to the events configuration file used.
	EventsFile string `json:"events_file"`

	// Sources lists the log files that were analyzed.
	Sources []string `json:"sources"`

	// TimeRange is the timestamp filter that was applied, if any.
	TimeRange *TimeRange `json:"time_range,omitempty"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// TimeRange represents the applied time window.
type TimeRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

// NewReport creates a Report from engine results.
func NewReport(result *engine.Result, eventsFile string) *Report {
	report := &Report{
		Results: make([]*FilterBlock, 0, len(result.Results)),
		Metadata: Metadata{
			EventsFile: eventsFile,
			Sources:    result.Metadata.Sources,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
		Summary: Summary{
			FiltersChecked:   len(result.Results),
			TotalMatches:     result.TotalMatches(),
			RecordsProcessed: result.Metadata.RecordsProcessed,
		},
	}

	for _, fr := range result.Results {
		block := &FilterBlock{
			Description: fr.Filter.Description(),
			Category:    fr.Filter.Category,
			Level:       fr.Filter.Level,
			Pattern:     fr.Filter.PatternText,
			CountOnly:   fr.Filter.CountOnly,
			Count:       fr.Count,
		}
		for _, m := range fr.Matches {
			block.Lines = append(block.Lines, m.Raw)
		}
		report.Results = append(report.Results, block)
	}

	if result.Metadata.TimeRange != nil {
		report.Metadata.TimeRange = &TimeRange{
			From: result.Metadata.TimeRange.From,
			To:   result.Metadata.TimeRange.To,
		}
	}

	return report
}

// HasMatches returns true if any filter matched at least one record.
func (r *Report) HasMatches() bool {
	return r.Summary.TotalMatches > 0
}
