package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/logsift/logsift/pkg/diag"
	"github.com/logsift/logsift/pkg/eventfilter"
	"github.com/logsift/logsift/pkg/parser"
)

// Engine evaluates an ordered list of event filters against a record
// stream in a single pass. A record is tested against every filter; a
// record may satisfy several filters independently.
type Engine struct {
	filters []*eventfilter.Filter

	// Options
	timeRange *TimeRange
	diag      *diag.Logger
}

// Option configures engine behavior.
type Option func(*Engine)

// WithTimeRange limits the run to records within the inclusive [from, to]
// window. A zero from or to leaves that bound open.
func WithTimeRange(from, to time.Time) Option {
	return func(e *Engine) {
		if from.IsZero() && to.IsZero() {
			return
		}
		e.timeRange = &TimeRange{From: from, To: to}
	}
}

// WithDiagnostics routes per-record warnings to d.
func WithDiagnostics(d *diag.Logger) Option {
	return func(e *Engine) {
		e.diag = d
	}
}

// New creates an engine for the given filters, in declaration order.
func New(filters []*eventfilter.Filter, opts ...Option) *Engine {
	e := &Engine{
		filters: filters,
		diag:    diag.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run pulls records from source until exhaustion and returns the per-filter
// matches in filter declaration order. Each record is processed fully
// before the next is read, so unmatched records are never buffered.
// Records with unparseable timestamps are discarded with a warning; only
// source I/O failures abort the run.
func (e *Engine) Run(ctx context.Context, source parser.RecordSource) (*Result, error) {
	result := &Result{
		Results: make([]*FilterResult, 0, len(e.filters)),
		Metadata: Metadata{
			TimeRange: e.timeRange,
			StartTime: time.Now(),
		},
	}

	for _, f := range e.filters {
		result.Results = append(result.Results, &FilterResult{Filter: f})
	}

	// Track sources seen
	sourcesMap := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		// Track source files
		if !sourcesMap[record.Source] {
			sourcesMap[record.Source] = true
			result.Metadata.Sources = append(result.Metadata.Sources, record.Source)
		}

		// The grammar guarantees the timestamp shape, but not that it is a
		// real instant (month 13 etc.), so parse defensively.
		ts, err := time.Parse(parser.TimestampLayout, record.Timestamp)
		if err != nil {
			e.diag.Warnf("invalid timestamp in log: %s", record.Timestamp)
			result.Metadata.RecordsSkipped++
			continue
		}

		if e.timeRange != nil && !e.timeRange.Contains(ts) {
			result.Metadata.RecordsSkipped++
			continue
		}

		result.Metadata.RecordsProcessed++

		for _, fr := range result.Results {
			if !fr.Filter.Matches(record) {
				continue
			}
			fr.Count++
			if !fr.Filter.CountOnly {
				fr.Matches = append(fr.Matches, record)
			}
		}
	}

	result.Metadata.EndTime = time.Now()

	return result, nil
}
