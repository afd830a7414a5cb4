// Package report summarises collected submissions and the local event log.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/session"
)

// recentLimit is how many recent submissions a report lists.
const recentLimit = 5

// Source is the submission store a report reads from.
type Source interface {
	Count() (int, error)
	Tallies() ([]session.Tally, error)
	ListSubmissions(limit int) ([]session.Summary, error)
}

// Report holds per-item verdict tallies and local session activity.
type Report struct {
	Title       string
	Submissions int
	Tallies     []session.Tally
	Recent      []session.Summary

	// From the local event log.
	Sessions        int
	CardsResolved   int
	Delivered       int
	Failed          int
	KeptLocally     int
	Duration        time.Duration
	LastSubmitError string
}

// GenerateReport builds a Report from the collector store and local events.
// Either input may be nil.
func GenerateReport(title string, src Source, events []log.LogEvent) (*Report, error) {
	r := &Report{Title: title}

	if src != nil {
		n, err := src.Count()
		if err != nil {
			return nil, fmt.Errorf("counting submissions: %w", err)
		}
		r.Submissions = n

		if r.Tallies, err = src.Tallies(); err != nil {
			return nil, fmt.Errorf("loading tallies: %w", err)
		}
		if r.Recent, err = src.ListSubmissions(recentLimit); err != nil {
			return nil, fmt.Errorf("listing submissions: %w", err)
		}
	}

	for _, e := range events {
		switch e.Event {
		case log.EventSessionStarted, log.EventSessionReset:
			r.Sessions++
		case log.EventCardResolved:
			r.CardsResolved++
		case log.EventSubmissionSucceeded:
			r.Delivered++
		case log.EventSubmissionFailed:
			r.Failed++
			r.LastSubmitError = e.Error
		case log.EventSubmissionLogged:
			r.KeptLocally++
		}
	}
	r.Duration = computeDuration(events)

	return r, nil
}

// FormatReport produces a terminal-friendly, human-readable summary string.
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	if r.Title != "" {
		fmt.Fprintf(&b, "  %s Report\n", r.Title)
	} else {
		b.WriteString("  Swipe Report\n")
	}
	b.WriteString("========================================\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Submissions: %d collected\n", r.Submissions)
	b.WriteString("\n")

	if len(r.Tallies) > 0 {
		width := len("Item")
		for _, t := range r.Tallies {
			if len(t.Item) > width {
				width = len(t.Item)
			}
		}
		fmt.Fprintf(&b, "  %-*s  %5s  %5s  %5s  %6s\n", width, "Item", "Keep", "Kill", "Maybe", "Keep%")
		for _, t := range r.Tallies {
			fmt.Fprintf(&b, "  %-*s  %5d  %5d  %5d  %5.0f%%\n",
				width, t.Item, t.Kept, t.Killed, t.Maybe, keepShare(t))
		}
		b.WriteString("\n")
	}

	if len(r.Recent) > 0 {
		b.WriteString("Recent:\n")
		for _, s := range r.Recent {
			fmt.Fprintf(&b, "  - %s  %s  %s  (%s)\n",
				s.ReceivedAt.UTC().Format(time.RFC3339), s.SessionID, s.Summary,
				formatDuration(time.Duration(s.TotalTime)*time.Second))
		}
		b.WriteString("\n")
	}

	if r.Sessions > 0 {
		fmt.Fprintf(&b, "Local sessions: %d\n", r.Sessions)
		fmt.Fprintf(&b, "  Cards:       %d resolved\n", r.CardsResolved)
		fmt.Fprintf(&b, "  Delivered:   %d\n", r.Delivered)
		fmt.Fprintf(&b, "  Failed:      %d\n", r.Failed)
		fmt.Fprintf(&b, "  Kept local:  %d\n", r.KeptLocally)
		if r.LastSubmitError != "" {
			fmt.Fprintf(&b, "  Last error:  %s\n", r.LastSubmitError)
		}
		b.WriteString("\n")
	}

	if r.Duration > 0 {
		fmt.Fprintf(&b, "Duration:    %s\n", formatDuration(r.Duration))
	}

	b.WriteString("========================================\n")

	return b.String()
}

// WriteReport writes the formatted report to path.
// Creates the parent directory if it does not exist.
func WriteReport(path string, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(FormatReport(report)), 0644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}

	return nil
}

func keepShare(t session.Tally) float64 {
	if t.Total() == 0 {
		return 0
	}
	return 100 * float64(t.Kept) / float64(t.Total())
}

// computeDuration spans the first session_started event to the last event.
func computeDuration(events []log.LogEvent) time.Duration {
	var start, end time.Time

	for _, e := range events {
		if e.Event == log.EventSessionStarted && start.IsZero() {
			start = e.Time
		}
		if !e.Time.IsZero() {
			end = e.Time
		}
	}

	if start.IsZero() || end.IsZero() {
		return 0
	}

	d := end.Sub(start)
	if d < 0 {
		return 0
	}

	return d
}

// formatDuration produces a human-readable duration string such as "5m 32s"
// or "1h 12m 5s". Sub-second durations are shown as "< 1s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
