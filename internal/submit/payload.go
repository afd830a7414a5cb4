// Package submit delivers the final classification to the logging endpoint.
package submit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayout matches the millisecond ISO-8601 form spreadsheet rows use.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Header is the spreadsheet header row, in Row order.
var Header = []string{
	"Timestamp",
	"Session ID",
	"Kept Websites",
	"Killed Websites",
	"Skipped Websites",
	"Total Time (seconds)",
	"Summary (Keep/Kill/Skip)",
	"User Agent",
}

// Payload is one session's results. A retry re-sends the same value.
type Payload struct {
	Timestamp time.Time
	SessionID string
	Kept      []string
	Killed    []string
	Skipped   []string
	TotalTime int // whole seconds
	UserAgent string
}

// Summary returns the "kept/killed/maybe" bucket sizes.
func (p Payload) Summary() string {
	return fmt.Sprintf("%d/%d/%d", len(p.Kept), len(p.Killed), len(p.Skipped))
}

// Empty reports whether no item was classified.
func (p Payload) Empty() bool {
	return len(p.Kept)+len(p.Killed)+len(p.Skipped) == 0
}

// Row flattens the payload into a spreadsheet row matching Header.
func (p Payload) Row() []string {
	return []string{
		p.Timestamp.UTC().Format(timestampLayout),
		p.SessionID,
		strings.Join(p.Kept, ", "),
		strings.Join(p.Killed, ", "),
		strings.Join(p.Skipped, ", "),
		strconv.Itoa(p.TotalTime),
		p.Summary(),
		p.UserAgent,
	}
}

// Body is the JSON document posted to a webhook endpoint.
type Body struct {
	Timestamp       string `json:"timestamp"`
	SessionID       string `json:"sessionId"`
	KeptWebsites    string `json:"keptWebsites"`
	KilledWebsites  string `json:"killedWebsites"`
	SkippedWebsites string `json:"skippedWebsites"`
	TotalTime       string `json:"totalTime"`
	Summary         string `json:"summary"`
	UserAgent       string `json:"userAgent"`
}

// Body returns the webhook representation of the payload.
func (p Payload) Body() Body {
	row := p.Row()
	return Body{
		Timestamp:       row[0],
		SessionID:       row[1],
		KeptWebsites:    row[2],
		KilledWebsites:  row[3],
		SkippedWebsites: row[4],
		TotalTime:       row[5],
		Summary:         row[6],
		UserAgent:       row[7],
	}
}

// elapsedSeconds rounds end-start to the nearest whole second.
func elapsedSeconds(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d.Round(time.Second) / time.Second)
}

// Payload converts a received webhook body back into a Payload. Fields that
// do not parse are left zero; bodies are stored as sent, not validated.
func (b Body) Payload() Payload {
	p := Payload{
		SessionID: b.SessionID,
		Kept:      splitNames(b.KeptWebsites),
		Killed:    splitNames(b.KilledWebsites),
		Skipped:   splitNames(b.SkippedWebsites),
		UserAgent: b.UserAgent,
	}
	if ts, err := time.Parse(time.RFC3339Nano, b.Timestamp); err == nil {
		p.Timestamp = ts.UTC()
	}
	if n, err := strconv.Atoi(strings.TrimSpace(b.TotalTime)); err == nil {
		p.TotalTime = n
	}
	return p
}

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
