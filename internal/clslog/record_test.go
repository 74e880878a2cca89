package clslog

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	rec := Record{
		Timestamp:  time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Input:      "Mozilla/5.0 Firefox/115.2",
		Agent:      AgentInfo{Matched: true, Family: "Firefox", Version: "115.2"},
		OS:         OSInfo{Matched: true, Family: "Windows", Version: "10.0"},
		Device:     DeviceInfo{Matched: false},
		DurationUS: 42,
	}

	if err := logger.Write(rec); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var parsed Record
	if err := json.Unmarshal([]byte(lines[0]), &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if parsed.Agent.Family != "Firefox" || !parsed.Agent.Matched {
		t.Fatalf("unexpected agent info %+v", parsed.Agent)
	}
	if parsed.Device.Matched {
		t.Fatalf("expected unmatched device")
	}
}

func TestLoggerTruncatesLongInput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	if err := logger.Write(Record{Input: strings.Repeat("x", maxInput+100)}); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var parsed Record
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(parsed.Input) != maxInput {
		t.Fatalf("expected input truncated to %d, got %d", maxInput, len(parsed.Input))
	}
}

func TestOpenAppends(t *testing.T) {
	path := t.TempDir() + "/logs/cls.jsonl"

	logger, closer, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := logger.Write(Record{Input: "first"}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := closer(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	logger, closer, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if err := logger.Write(Record{Input: "second"}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := closer(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 appended lines, got %d", len(lines))
	}
}
