// Package engine runs the single-pass streaming evaluation of event
// filters over a record source.
package engine

import (
	"time"

	"github.com/logsift/logsift/pkg/eventfilter"
	"github.com/logsift/logsift/pkg/parser"
)

// TimeRange defines an inclusive [From, To] window for filtering records.
// A zero From or To means that bound is open.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range. Bounds are inclusive.
func (tr *TimeRange) Contains(t time.Time) bool {
	if !tr.From.IsZero() && t.Before(tr.From) {
		return false
	}
	if !tr.To.IsZero() && t.After(tr.To) {
		return false
	}
	return true
}

// FilterResult holds the matches accumulated for one filter, in encounter
// order. For count-only filters only Count is maintained; Matches stays
// empty so peak memory is independent of match volume.
type FilterResult struct {
	Filter  *eventfilter.Filter
	Matches []*parser.Record
	Count   int
}

// Result is the complete output of one engine run.
type Result struct {
	// Results holds one FilterResult per configured filter, in filter
	// declaration order.
	Results []*FilterResult

	// Metadata provides context about the run.
	Metadata Metadata
}

// Metadata provides context about an engine run.
type Metadata struct {
	// Sources lists the log files records were read from, in first-seen order.
	Sources []string

	// TimeRange is the timestamp filter applied, if any.
	TimeRange *TimeRange

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time

	// RecordsProcessed is the number of records evaluated against filters.
	RecordsProcessed int

	// RecordsSkipped is the number of records discarded by the time range
	// or by timestamp parse failures.
	RecordsSkipped int
}

// TotalMatches returns the total match count across all filters.
func (r *Result) TotalMatches() int {
	total := 0
	for _, fr := range r.Results {
		total += fr.Count
	}
	return total
}
