// Package log provides structured event logging.
// This file appends JSON survey events to .swipe/log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventSessionStarted      = "session_started"
	EventCardResolved        = "card_resolved"
	EventSessionReset        = "session_reset"
	EventSubmissionStarted   = "submission_started"
	EventSubmissionSucceeded = "submission_succeeded"
	EventSubmissionFailed    = "submission_failed"
	EventSubmissionLogged    = "submission_logged" // endpoint disabled, result kept locally
	EventHeadersCreated      = "headers_created"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time       time.Time      `json:"time"`
	Event      string         `json:"event"`
	SessionID  string         `json:"session,omitempty"`
	ItemID     int            `json:"item,omitempty"`
	ItemName   string         `json:"name,omitempty"`
	Verdict    string         `json:"verdict,omitempty"`
	Position   int            `json:"position,omitempty"`
	Total      int            `json:"total,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Mode       string         `json:"mode,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Error      string         `json:"error,omitempty"`
	Attempt    int            `json:"attempt,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Sink receives survey events. Logger implements it; Discard drops them.
type Sink interface {
	Append(event LogEvent) error
}

type discard struct{}

func (discard) Append(LogEvent) error { return nil }

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to .swipe/log.jsonl inside dir.
// Creates the .swipe/ directory if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	swipeDir := filepath.Join(dir, ".swipe")
	if err := os.MkdirAll(swipeDir, 0755); err != nil {
		return nil, fmt.Errorf("create .swipe directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(swipeDir, "log.jsonl"),
	}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string { return l.path }

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// Thread-safe via mutex.
func (l *Logger) Append(event LogEvent) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}
