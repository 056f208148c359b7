package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFormats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown falls back to text", Format("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})

			logger.Info("test message", "key", "value")

			out := buf.String()
			if out == "" {
				t.Fatal("expected output")
			}

			var parsed map[string]any
			isJSON := json.Unmarshal([]byte(out), &parsed) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("json output = %v, want %v: %s", isJSON, tt.wantJSON, out)
			}
			if tt.wantJSON {
				if parsed["msg"] != "test message" || parsed["key"] != "value" {
					t.Errorf("unexpected JSON record: %s", out)
				}
			} else {
				for _, want := range []string{"INFO", "test message", "key=value"} {
					if !strings.Contains(out, want) {
						t.Errorf("output missing %q: %s", want, out)
					}
				}
			}
		})
	}
}

func TestNewNilOutput(t *testing.T) {
	// nil Output falls back to stderr; just exercise the path.
	if New(Config{Format: FormatText}) == nil {
		t.Fatal("New() returned nil")
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()

	// Nothing to observe; the calls just must not panic.
	logger.Debug("debug", "key", "value")
	logger.Info("info", "count", 42)
	logger.Warn("warn")
	logger.Error("error", "err", "boom")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel slog.Level
		logLevel    slog.Level
		want        bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug suppressed at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at info", slog.LevelInfo, slog.LevelError, true},
		{"info suppressed at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"debug at debug", slog.LevelDebug, slog.LevelDebug, true},
		{"error suppressed above error", slog.LevelError + 4, slog.LevelError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.configLevel, Format: FormatText, Output: &buf})

			logger.Log(t.Context(), tt.logLevel, "test message")

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("output emitted = %v, want %v (min %v, record %v)", got, tt.want, tt.configLevel, tt.logLevel)
			}
		})
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if logger == nil {
		t.Fatal("ForTest() returned nil")
	}

	// Configured at debug level; every call lands in the test log.
	logger.Debug("debug level")
	logger.Info("info level", "test", t.Name())
	logger.Warn("warn level")
	logger.Error("error level")
}

func TestFormatConstants(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" {
		t.Errorf("format constants = %q / %q", FormatText, FormatJSON)
	}
}

func TestAttributeTypes(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: format, Output: &buf})

			logger.Info("message", "string", "value", "int", 42, "float", 3.14, "bool", true)

			out := buf.String()
			for _, want := range []string{"value", "42", "3.14", "true"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %s", want, out)
				}
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{9, LevelTrace},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}

	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace must sort below LevelDebug")
	}
}

func TestTestWriterTrimsNewline(t *testing.T) {
	tw := &testWriter{t: t}

	for _, in := range []string{"test message\n", "no newline", ""} {
		n, err := tw.Write([]byte(in))
		if err != nil {
			t.Fatalf("Write(%q) error = %v", in, err)
		}
		if n != len(in) {
			t.Errorf("Write(%q) = %d, want %d", in, n, len(in))
		}
	}
}
