package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output for info at warn level, got: %s", buf.String())
	}

	log.Warn("load table failed", "table", "Faction")
	output := buf.String()
	if !strings.Contains(output, `"table":"Faction"`) || !strings.Contains(output, `"level":"WARN"`) {
		t.Fatalf("unexpected JSON output: %s", output)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := Discard().With("table", "Map")
	log.Error("dropped")
	log.WithGroup("g").Warn("dropped too")
}

func TestForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"pretty", "hello"},
		{"", "hello"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		ForFormat(tt.format, &buf, slog.LevelInfo).Info("hello")
		if !strings.Contains(buf.String(), tt.want) {
			t.Fatalf("format %q: expected %q in %q", tt.format, tt.want, buf.String())
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	FromContext(WithContext(context.Background(), log)).Info("roundtrip test")
	if !strings.Contains(buf.String(), "roundtrip test") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext with no logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func newPlain(buf *bytes.Buffer, opts *slog.HandlerOptions) *PrettyHandler {
	h := NewPrettyHandler(buf, opts)
	h.color = false
	return h
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := newPlain(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestPrettyHandlerPlainLine(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(newPlain(&buf, nil))
	logger.Warn("load table failed", "table", "Faction", "err", errors.New("bad magic"))

	output := buf.String()
	if strings.Contains(output, "\033[") {
		t.Fatalf("color codes in plain output: %q", output)
	}
	if !strings.Contains(output, `WARN  load table failed table=Faction err=bad magic`) {
		t.Fatalf("unexpected line: %q", output)
	}
}

func TestPrettyHandlerAttrsAndGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := newPlain(&buf, nil)

	slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "cache")})).Info("with attrs")
	slog.New(h.WithGroup("a").WithGroup("b")).Info("nested", "key", "val")

	output := buf.String()
	if !strings.Contains(output, "component=cache") {
		t.Fatalf("expected handler attrs in output, got: %s", output)
	}
	if !strings.Contains(output, "a.b.key=val") {
		t.Fatalf("expected nested group prefix, got: %s", output)
	}
	if h.WithGroup("") != h {
		t.Fatal("WithGroup empty string should return same handler")
	}
}

func TestPrettyQuoting(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(newPlain(&buf, nil))
	logger.Info("test", "path", "/tmp/my tables/Faction.dbc", "name", "simple")

	output := buf.String()
	if !strings.Contains(output, `path="/tmp/my tables/Faction.dbc"`) {
		t.Fatalf("expected quoted string with spaces, got: %s", output)
	}
	if !strings.Contains(output, "name=simple") {
		t.Fatalf("expected unquoted simple string, got: %s", output)
	}
}
