package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/logsift/logsift/pkg/engine"
	"github.com/logsift/logsift/pkg/eventfilter"
	"github.com/logsift/logsift/pkg/parser"
)

func mustFilter(t *testing.T, category string, countOnly bool, level, pattern string) *eventfilter.Filter {
	t.Helper()
	f, err := eventfilter.New(category, countOnly, level, pattern)
	if err != nil {
		t.Fatalf("eventfilter.New() error = %v", err)
	}
	return f
}

func testReport(t *testing.T) *Report {
	t.Helper()

	deviceLine := "2025-06-01T14:05:22 WARNING DEVICE detected high temperature of device"
	gnmiLine := "2025-06-01T14:10:00 ERROR GNMI unresponsive telemetry at endpoint"

	result := &engine.Result{
		Results: []*engine.FilterResult{
			{
				Filter: mustFilter(t, "DEVICE", false, "WARNING", "^detected"),
				Matches: []*parser.Record{
					{Raw: deviceLine, Source: "logs/app.log"},
				},
				Count: 1,
			},
			{
				Filter: mustFilter(t, "DEVICE", true, "WARNING", ""),
				Count:  1,
			},
			{
				Filter: mustFilter(t, "GNMI", false, "ERROR", ""),
				Matches: []*parser.Record{
					{Raw: gnmiLine, Source: "logs/app.log"},
				},
				Count: 1,
			},
		},
	}
	result.Metadata.Sources = []string{"logs/app.log"}
	result.Metadata.RecordsProcessed = 7

	return NewReport(result, "events.txt")
}

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	var buf bytes.Buffer

	if err := f.Format(context.Background(), testReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "Event: DEVICE pattern [^detected] level [WARNING] — matching log lines:\n" +
		"2025-06-01T14:05:22 WARNING DEVICE detected high temperature of device\n" +
		"--------------------\n" +
		"Event: DEVICE level [WARNING] count — matches: 1 entries\n" +
		"--------------------\n" +
		"Event: GNMI level [ERROR] — matching log lines:\n" +
		"2025-06-01T14:10:00 ERROR GNMI unresponsive telemetry at endpoint\n"

	if got := buf.String(); got != want {
		t.Errorf("Format() output:\n%q\nwant:\n%q", got, want)
	}
}

func TestTextFormatter_NoTrailingSeparator(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	var buf bytes.Buffer

	if err := f.Format(context.Background(), testReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if strings.HasSuffix(strings.TrimRight(out, "\n"), Separator) {
		t.Error("report ends with a separator line")
	}
	if got, want := strings.Count(out, Separator), 2; got != want {
		t.Errorf("separator count = %d, want %d (between blocks only)", got, want)
	}
}

func TestTextFormatter_EmptyMatchesStillRendersBlock(t *testing.T) {
	result := &engine.Result{
		Results: []*engine.FilterResult{
			{Filter: mustFilter(t, "DEVICE", false, "WARNING", "^network")},
		},
	}
	report := NewReport(result, "events.txt")

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "Event: DEVICE pattern [^network] level [WARNING] — matching log lines:\n"
	if buf.String() != want {
		t.Errorf("Format() output = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_EmptyReport(t *testing.T) {
	report := NewReport(&engine.Result{}, "events.txt")

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "" {
		t.Errorf("Format() output = %q, want empty", buf.String())
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})
	var buf bytes.Buffer

	if err := f.Format(context.Background(), testReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "3 filters checked") {
		t.Errorf("missing filter count, got %q", out)
	}
	if strings.Contains(out, Separator) {
		t.Error("quiet output contains filter blocks")
	}
}

func TestNewReport(t *testing.T) {
	report := testReport(t)

	if report.Summary.FiltersChecked != 3 {
		t.Errorf("FiltersChecked = %d, want 3", report.Summary.FiltersChecked)
	}
	if report.Summary.TotalMatches != 3 {
		t.Errorf("TotalMatches = %d, want 3", report.Summary.TotalMatches)
	}
	if report.Summary.RecordsProcessed != 7 {
		t.Errorf("RecordsProcessed = %d, want 7", report.Summary.RecordsProcessed)
	}
	if report.Metadata.EventsFile != "events.txt" {
		t.Errorf("EventsFile = %q", report.Metadata.EventsFile)
	}
	if !report.HasMatches() {
		t.Error("HasMatches() = false, want true")
	}

	// Count-only blocks carry no lines.
	if len(report.Results[1].Lines) != 0 {
		t.Errorf("count-only block has %d lines, want 0", len(report.Results[1].Lines))
	}
}
