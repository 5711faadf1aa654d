package eventfilter

import (
	"testing"

	"github.com/logsift/logsift/pkg/parser"
)

func mustFilter(t *testing.T, category string, countOnly bool, level, pattern string) *Filter {
	t.Helper()
	f, err := New(category, countOnly, level, pattern)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

func record(category, level, message string) *parser.Record {
	return &parser.Record{
		Timestamp: "2025-06-01T14:05:22",
		Level:     level,
		Category:  category,
		Message:   message,
	}
}

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		record *parser.Record
		want   bool
	}{
		{
			name:   "category only",
			filter: mustFilter(t, "DEVICE", false, "", ""),
			record: record("DEVICE", "INFO", "anything"),
			want:   true,
		},
		{
			name:   "category mismatch",
			filter: mustFilter(t, "DEVICE", false, "", ""),
			record: record("GNMI", "INFO", "anything"),
			want:   false,
		},
		{
			name:   "level match",
			filter: mustFilter(t, "DEVICE", false, "WARNING", ""),
			record: record("DEVICE", "WARNING", "anything"),
			want:   true,
		},
		{
			name:   "level mismatch",
			filter: mustFilter(t, "DEVICE", false, "WARNING", ""),
			record: record("DEVICE", "ERROR", "anything"),
			want:   false,
		},
		{
			name:   "level is exact not case-insensitive",
			filter: mustFilter(t, "DEVICE", false, "WARNING", ""),
			record: record("DEVICE", "warning", "anything"),
			want:   false,
		},
		{
			name:   "pattern prefix match",
			filter: mustFilter(t, "DEVICE", false, "", "^detected"),
			record: record("DEVICE", "WARNING", "detected high temperature"),
			want:   true,
		},
		{
			name:   "pattern anchored even without caret",
			filter: mustFilter(t, "DEVICE", false, "", "detected"),
			record: record("DEVICE", "WARNING", "has detected something"),
			want:   false,
		},
		{
			name:   "pattern anchored match without caret",
			filter: mustFilter(t, "DEVICE", false, "", "detected"),
			record: record("DEVICE", "WARNING", "detected something"),
			want:   true,
		},
		{
			name:   "all conditions conjunctive",
			filter: mustFilter(t, "DEVICE", false, "WARNING", "^detected"),
			record: record("DEVICE", "WARNING", "detected high temperature"),
			want:   true,
		},
		{
			name:   "pattern matches but level does not",
			filter: mustFilter(t, "DEVICE", false, "ERROR", "^detected"),
			record: record("DEVICE", "WARNING", "detected high temperature"),
			want:   false,
		},
		{
			name:   "count flag does not affect matching",
			filter: mustFilter(t, "DEVICE", true, "WARNING", ""),
			record: record("DEVICE", "WARNING", "anything"),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.record); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Description(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{
			name:   "category only",
			filter: mustFilter(t, "DEVICE", false, "", ""),
			want:   "Event: DEVICE",
		},
		{
			name:   "pattern then level then count",
			filter: mustFilter(t, "DEVICE", true, "WARNING", "^detected"),
			want:   "Event: DEVICE pattern [^detected] level [WARNING] count",
		},
		{
			name:   "level and count without pattern",
			filter: mustFilter(t, "DEVICE", true, "WARNING", ""),
			want:   "Event: DEVICE level [WARNING] count",
		},
		{
			name:   "pattern only",
			filter: mustFilter(t, "GNMI", false, "", "^unresponsive"),
			want:   "Event: GNMI pattern [^unresponsive]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New("DEVICE", false, "", "[invalid"); err == nil {
		t.Error("New() error = nil, want compile error")
	}
}

func TestFilter_DescriptionUsesSourcePatternText(t *testing.T) {
	f := mustFilter(t, "DEVICE", false, "", "^det(ected)?")
	// The description shows the pattern as written, not the compiled form.
	if got, want := f.Description(), "Event: DEVICE pattern [^det(ected)?]"; got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
}
