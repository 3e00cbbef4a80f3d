package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, min Level) writerLogger {
	return writerLogger{
		w:   buf,
		min: min,
		now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestWriterLoggerFormatsObject(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Warn("model unavailable", map[string]any{"path": "/tmp/m.gguf"})

	want := `2026-01-02T03:04:05Z WARN  model unavailable obj={"path":"/tmp/m.gguf"}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriterLoggerWithoutObject(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Info("ready", nil)

	if got := buf.String(); got != "2026-01-02T03:04:05Z INFO  ready\n" {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestWriterLoggerDropsBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelWarn)

	l.Debug("noise", nil)
	l.Info("noise", nil)
	l.Error("boom", nil)

	out := buf.String()
	if strings.Contains(out, "noise") {
		t.Fatalf("expected debug/info to be dropped, got %q", out)
	}
	if !strings.Contains(out, "ERROR boom") {
		t.Fatalf("expected error line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" WARN ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"info", LevelInfo},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Debug(true, nil, "x", nil)
	Info(nil, "x", nil)
	Warn(nil, "x", nil)
	Error(nil, "x", nil)
}
