package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"trace", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{minLevel: LevelWarn, output: &buf}

	logger.Debug("test.debug", "debug message", nil)
	logger.Info("test.info", "info message", nil)
	logger.Warn("test.warn", "warn message", nil)
	logger.Error("test.error", "error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events at minLevel=warn, got %d: %s", len(lines), buf.String())
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}
	if first.Level != LevelWarn {
		t.Errorf("first event level = %s, want warn", first.Level)
	}
}

func TestLogger_EventShape(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{minLevel: LevelDebug, output: &buf}

	logger.Info("provision.step.start", "Starting step", map[string]interface{}{
		"step": "cuda toolkit",
	})

	var event Event
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}

	if event.Type != "provision.step.start" {
		t.Errorf("Type = %s, want provision.step.start", event.Type)
	}
	if event.Message != "Starting step" {
		t.Errorf("Message = %s, want 'Starting step'", event.Message)
	}
	if event.Payload["step"] != "cuda toolkit" {
		t.Errorf("Payload[step] = %v, want 'cuda toolkit'", event.Payload["step"])
	}
	if event.Timestamp == "" {
		t.Error("Timestamp should not be empty")
	}
}

func TestNewFileLogger(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "logs", "cudaprep.log")

	logger, err := NewFileLogger(LevelInfo, logPath)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Info("test.event", "file message", nil)

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "file message") {
		t.Errorf("log file does not contain message: %s", data)
	}
}

func TestLogger_NilOutputFallsBack(t *testing.T) {
	logger := &Logger{minLevel: LevelInfo}
	// Must not panic when no writer is configured.
	logger.Info("test.event", "message", nil)
}
