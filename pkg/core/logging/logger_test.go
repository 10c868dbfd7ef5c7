package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	mdwlog "github.com/msto63/acid/foundation/core/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"trace", mdwlog.LevelTrace},
		{"debug", mdwlog.LevelDebug},
		{"info", mdwlog.LevelInfo},
		{"warn", mdwlog.LevelWarn},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"", mdwlog.LevelWarn},
		{"loud", mdwlog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("acid")
	if cfg.Name != "acid" || cfg.Level != "warn" || cfg.Format != "text" {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	var out, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Name:              "acid-test",
		Level:             "info",
		Format:            "json",
		Output:            &out,
		AdditionalOutputs: []io.Writer{&extra},
		CorrelationID:     "run-42",
	})

	if !logger.IsLevelEnabled(mdwlog.LevelInfo) || logger.IsLevelEnabled(mdwlog.LevelDebug) {
		t.Error("level should be info")
	}

	logger.Debug("hidden")
	logger.Info("visible", mdwlog.Fields{"key": "value"})

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Error("debug entry written at info level")
	}
	for _, want := range []string{`"message":"visible"`, `"correlation_id":"run-42"`, `"logger":"acid-test"`, `"key":"value"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %s: %s", want, got)
		}
	}
	if extra.String() != got {
		t.Error("additional output did not receive the same entries")
	}
}

func TestNewLogger_GeneratesCorrelationID(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "info", Format: "bogus", Output: &out})
	logger.Info("hello")

	// text format prints the first 8 characters of the ID in parentheses
	line := out.String()
	open, closing := strings.Index(line, "("), strings.Index(line, ")")
	if open < 0 || closing-open-1 != 8 {
		t.Fatalf("no short correlation ID in %q", line)
	}
}

func TestNewCorrelationID(t *testing.T) {
	a, b := NewCorrelationID(), NewCorrelationID()
	if a == b {
		t.Error("correlation IDs repeat")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("%q is not a UUID: %v", a, err)
	}
}
