package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wavefield/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestHandlerAddsDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, config.LoggingConfig{Level: "info", Format: "json"}, "1.2.3"))
	l.Info("frame", "n", 7)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if rec["service"] != "wavefield" || rec["version"] != "1.2.3" || rec["msg"] != "frame" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, config.LoggingConfig{Level: "warn", Format: "text"}, "dev"))
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level filter not applied:\n%s", buf.String())
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavefield.log")
	l, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: path}, "dev")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.With("component", "test").Info("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "component=test") {
		t.Errorf("log file missing record:\n%s", data)
	}
}

func TestWithAddsAttributesWithoutOwningOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	l, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: path}, "dev")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	child := l.With("mode", "headless")
	child.Info("hello")
	if err := child.Close(); err != nil {
		t.Fatalf("child Close() = %v", err)
	}
	l.Info("still open")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "mode=headless") || !strings.Contains(string(data), "still open") {
		t.Errorf("log file = %q", data)
	}
}
