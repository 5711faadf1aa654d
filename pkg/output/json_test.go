package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	var buf bytes.Buffer

	if err := f.Format(context.Background(), testReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	summary, ok := decoded["summary"].(map[string]any)
	if !ok {
		t.Fatal("missing summary object")
	}
	if got := summary["filters_checked"].(float64); got != 3 {
		t.Errorf("filters_checked = %v, want 3", got)
	}

	results, ok := decoded["results"].([]any)
	if !ok || len(results) != 3 {
		t.Fatalf("results = %v", decoded["results"])
	}

	first := results[0].(map[string]any)
	if first["description"] != "Event: DEVICE pattern [^detected] level [WARNING]" {
		t.Errorf("description = %v", first["description"])
	}
	lines, ok := first["lines"].([]any)
	if !ok || len(lines) != 1 {
		t.Errorf("lines = %v", first["lines"])
	}

	// Count-only block: count present, no lines key content.
	second := results[1].(map[string]any)
	if second["count_only"] != true {
		t.Errorf("count_only = %v, want true", second["count_only"])
	}
	if _, hasLines := second["lines"]; hasLines {
		t.Error("count-only block should omit lines")
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	var buf bytes.Buffer

	if err := f.Format(context.Background(), testReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["results"]; ok {
		t.Error("quiet output should contain only the summary")
	}
	if _, ok := decoded["filters_checked"]; !ok {
		t.Error("quiet output missing filters_checked")
	}
}
