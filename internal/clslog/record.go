package clslog

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"
)

const maxInput = 512

// Record is written as a single JSON object per classified input.
type Record struct {
	Timestamp  time.Time  `json:"ts"`
	Input      string     `json:"input"`
	Agent      AgentInfo  `json:"agent"`
	OS         OSInfo     `json:"os"`
	Device     DeviceInfo `json:"device"`
	DurationUS int64      `json:"duration_us"`
}

type AgentInfo struct {
	Matched bool   `json:"matched"`
	Family  string `json:"family,omitempty"`
	Version string `json:"version,omitempty"`
}

type OSInfo struct {
	Matched bool   `json:"matched"`
	Family  string `json:"family,omitempty"`
	Version string `json:"version,omitempty"`
}

type DeviceInfo struct {
	Matched bool   `json:"matched"`
	Family  string `json:"family,omitempty"`
	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
}

type Logger struct {
	w io.Writer
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

func Open(path string) (*Logger, func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(file), file.Close, nil
}

func (l *Logger) Write(record Record) error {
	if len(record.Input) > maxInput {
		record.Input = record.Input[:maxInput]
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = l.w.Write(append(data, '\n'))
	return err
}
