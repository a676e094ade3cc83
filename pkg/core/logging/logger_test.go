package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"trace", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"ERROR", LevelError},
		{"  info  ", LevelInfo},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	logger.Warn("warning message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("output contains filtered entries: %q", out)
	}
	if !strings.Contains(out, "warning message") {
		t.Errorf("output missing warn entry: %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("output missing error entry: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf, Name: "test"})

	logger.Info("hello", "user", "alice", "count", 3)

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if data["message"] != "hello" {
		t.Errorf("message = %v, want hello", data["message"])
	}
	if data["level"] != "info" {
		t.Errorf("level = %v, want info", data["level"])
	}
	if data["logger"] != "test" {
		t.Errorf("logger = %v, want test", data["logger"])
	}
	if data["user"] != "alice" {
		t.Errorf("user = %v, want alice", data["user"])
	}
	if data["count"] != float64(3) {
		t.Errorf("count = %v, want 3", data["count"])
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelDebug, Format: FormatText, Output: &buf, Name: "deploy"})

	logger.ErrorErr("download failed", errors.New("connection refused"), "url", "http://x")

	out := buf.String()
	if !strings.Contains(out, "[ERR]") {
		t.Errorf("output missing level tag: %q", out)
	}
	if !strings.Contains(out, "deploy:") {
		t.Errorf("output missing logger name: %q", out)
	}
	if !strings.Contains(out, `error="connection refused"`) {
		t.Errorf("output missing error: %q", out)
	}
	if !strings.Contains(out, "url=http://x") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestWithFieldClone(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithConfig(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	child := base.WithField("run_id", "r-1")

	buf.Reset()
	base.Info("base entry")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("base logger inherited child field: %q", buf.String())
	}

	buf.Reset()
	child.Info("child entry")
	if !strings.Contains(buf.String(), "r-1") {
		t.Errorf("child logger missing field: %q", buf.String())
	}
}

func TestOddKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	// Trailing key without value must not panic
	logger.Info("msg", "key1", "val1", "dangling")

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if data["key1"] != "val1" {
		t.Errorf("key1 = %v, want val1", data["key1"])
	}
}

func TestNop(t *testing.T) {
	// Just must not panic or write anywhere visible
	logger := Nop()
	logger.Error("ignored")
	logger.Info("ignored")
}
