package survey

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logsift/logsift/pkg/diag"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	content := "2025-06-01T14:05:22 WARNING DEVICE detected high temperature\n" +
		"2025-06-01T14:06:22 WARNING DEVICE disk space low\n" +
		"2025-06-01T14:07:22 ERROR GNMI connection timeout\n" +
		"not-a-valid-line\n"
	if err := os.WriteFile(filepath.Join(dir, "app.log"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Run(context.Background(), dir, diag.Discard())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.LinesScanned != 4 {
		t.Errorf("LinesScanned = %d, want 4", result.LinesScanned)
	}
	if result.RecordsParsed != 3 {
		t.Errorf("RecordsParsed = %d, want 3", result.RecordsParsed)
	}

	if len(result.Categories) != 2 {
		t.Fatalf("Categories = %v", result.Categories)
	}
	// Most frequent first.
	if result.Categories[0].Value != "DEVICE" || result.Categories[0].Count != 2 {
		t.Errorf("Categories[0] = %+v", result.Categories[0])
	}
	if result.Categories[1].Value != "GNMI" || result.Categories[1].Count != 1 {
		t.Errorf("Categories[1] = %+v", result.Categories[1])
	}

	if len(result.Levels) != 2 || result.Levels[0].Value != "WARNING" {
		t.Errorf("Levels = %v", result.Levels)
	}
}

func TestRun_MissingDir(t *testing.T) {
	if _, err := Run(context.Background(), filepath.Join(t.TempDir(), "nope"), diag.Discard()); err == nil {
		t.Error("Run() error = nil, want directory failure")
	}
}

func TestResult_StarterEvents(t *testing.T) {
	result := &Result{
		Categories: []Count{
			{Value: "DEVICE", Count: 5},
			{Value: "GNMI", Count: 2},
		},
	}

	events := result.StarterEvents()
	if !strings.Contains(events, "DEVICE --count\n") {
		t.Errorf("missing DEVICE line, got %q", events)
	}
	if !strings.Contains(events, "GNMI --count\n") {
		t.Errorf("missing GNMI line, got %q", events)
	}
	if !strings.HasPrefix(events, "#") {
		t.Error("starter file should begin with a comment header")
	}
}

func TestRun_TieBreaksByName(t *testing.T) {
	dir := t.TempDir()
	content := "2025-06-01T14:05:22 INFO BETA one\n" +
		"2025-06-01T14:06:22 INFO ALPHA two\n"
	if err := os.WriteFile(filepath.Join(dir, "app.log"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Run(context.Background(), dir, diag.Discard())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Categories[0].Value != "ALPHA" {
		t.Errorf("Categories[0] = %+v, want ALPHA first on tie", result.Categories[0])
	}
}
