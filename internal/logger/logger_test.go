package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Line is not valid JSON: %v (%s)", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected int
	}{
		{DEBUG, 4},
		{INFO, 3},
		{WARN, 2},
		{ERROR, 1},
		{FATAL, 0},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		l := New(Config{Level: tt.level, Format: JSONFormat, Output: &buf})

		l.Debug("cache miss")
		l.Info("server started")
		l.Warn("snapshot skipped")
		l.Error("export failed", nil)

		if got := len(decodeLines(t, &buf)); got != tt.expected {
			t.Errorf("Level %s: expected %d lines, got %d", tt.level, tt.expected, got)
		}
		if l.Enabled(INFO) != (tt.level <= INFO) {
			t.Errorf("Level %s: Enabled(INFO) returned %v", tt.level, l.Enabled(INFO))
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "dashboard"})

	l.Info("Payload cache cleared", map[string]interface{}{
		"reason":  "backend changed",
		"removed": 3,
	})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]

	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "Payload cache cleared" {
		t.Errorf("Expected message 'Payload cache cleared', got %s", entry.Message)
	}
	if entry.Component != "dashboard" {
		t.Errorf("Expected component 'dashboard', got %s", entry.Component)
	}
	if entry.Fields["reason"] != "backend changed" {
		t.Errorf("Expected reason field, got %v", entry.Fields["reason"])
	}
	if entry.Fields["removed"] != float64(3) {
		t.Errorf("Expected removed=3, got %v", entry.Fields["removed"])
	}
	if !strings.HasSuffix(entry.File, "logger_test.go") {
		t.Errorf("Expected caller file logger_test.go, got %s", entry.File)
	}
	if !strings.Contains(entry.Function, "TestJSONFormat") {
		t.Errorf("Expected caller function TestJSONFormat, got %s", entry.Function)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Format: TextFormat, Output: &buf, Component: "server"})

	l.Error("Snapshot failed", errors.New("dataset has no values"), map[string]interface{}{
		"kind":    "gauge",
		"backend": "echarts",
	})

	output := buf.String()
	expected := []string{
		"ERROR",
		"[server]",
		"Snapshot failed",
		"backend=echarts kind=gauge",
		`error="dataset has no values"`,
		"(logger_test.go:",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %s", want, output)
		}
	}
	if strings.Count(output, "\n") != 1 {
		t.Errorf("Expected a single line, got %q", output)
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "base"})

	req := base.WithComponent("server").With(map[string]interface{}{"request_id": "abc", "route": "/api/state"})
	req.Info("Request served", map[string]interface{}{"route": "/api/charts/bar", "status": 200})
	base.Info("untouched")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Component != "server" {
		t.Errorf("Expected component 'server', got %s", entries[0].Component)
	}
	if entries[0].Fields["request_id"] != "abc" {
		t.Errorf("Expected request_id field, got %v", entries[0].Fields)
	}
	if entries[0].Fields["route"] != "/api/charts/bar" {
		t.Errorf("Expected call-site field to win, got %v", entries[0].Fields["route"])
	}
	if entries[1].Component != "base" || len(entries[1].Fields) != 0 {
		t.Errorf("Parent logger should be unchanged, got %+v", entries[1])
	}
}

func TestFatalExits(t *testing.T) {
	var code int
	original := exit
	exit = func(c int) { code = c }
	defer func() { exit = original }()

	var buf bytes.Buffer
	l := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})
	l.Fatalf("cannot bind port %d", 8980)

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0].Message != "cannot bind port 8980" || entries[0].Level != "FATAL" {
		t.Errorf("Unexpected fatal entry: %+v", entries)
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	SetGlobalLogger(New(Config{Level: INFO, Format: JSONFormat, Output: &buf}))

	Info("global info message")
	Infof("listening on :%s", "8980")
	Debug("dropped")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Message != "listening on :8980" {
		t.Errorf("Expected formatted message, got %s", entries[1].Message)
	}
	if !strings.Contains(entries[0].Function, "TestGlobalLogger") {
		t.Errorf("Expected caller TestGlobalLogger, got %s", entries[0].Function)
	}
}

func TestConfigure(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: INFO, Format: JSONFormat, Output: &buf}))

	if err := Configure("debug", "text"); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	Debug("visible now")
	if !strings.Contains(buf.String(), "DEBUG") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("Expected a text DEBUG line, got %q", buf.String())
	}

	if err := Configure("verbose", ""); err == nil {
		t.Error("Expected error for unknown level")
	}
	if err := Configure("", "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := Configure("", ""); err != nil {
		t.Errorf("Empty values should be ignored, got %v", err)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"DEBUG", DEBUG, true},
		{"info", INFO, true},
		{"Warning", WARN, true},
		{" error ", ERROR, true},
		{"fatal", FATAL, true},
		{"trace", INFO, false},
	}
	for _, tt := range levels {
		got, err := ParseLevel(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) error = %v, expected ok=%v", tt.input, err, tt.ok)
		}
		if got != tt.expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}

	if f, err := ParseFormat("JSON"); err != nil || f != JSONFormat {
		t.Errorf("Expected JSONFormat, got %v (%v)", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != TextFormat {
		t.Errorf("Expected TextFormat, got %v (%v)", f, err)
	}
	if _, err := ParseFormat("logfmt"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.level.String() != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, tt.level.String())
		}
	}
}

func BenchmarkJSONLogging(b *testing.B) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "bench"})
	fields := map[string]interface{}{"kind": "bar", "backend": "echarts"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("Payload cache miss", fields)
	}
}

func BenchmarkLevelFiltering(b *testing.B) {
	var buf bytes.Buffer
	l := New(Config{Level: ERROR, Format: JSONFormat, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Debug("filtered")
	}
}
