// Package ui provides plain terminal output for swipe.
// This file implements the progress display shown by "swipe play".
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/berth-dev/swipe/internal/config"
)

// CardStatus is where a single card ended up.
type CardStatus int

const (
	StatusPending CardStatus = iota // not decided yet
	StatusKept
	StatusKilled
	StatusMaybe
)

// CardState holds the display state of a single card.
type CardState struct {
	ID      int
	Name    string
	Status  CardStatus
	Elapsed time.Duration // since the previous card was decided
}

// ProgressDisplay prints card decisions as they happen. On a terminal it
// redraws the whole list in place; otherwise it prints one line per card.
type ProgressDisplay struct {
	mu         sync.Mutex
	out        io.Writer
	title      string
	labels     config.LabelsConfig
	cards      []*CardState
	cardIndex  map[int]int // ID -> index in cards slice
	printed    map[int]bool
	started    bool
	isTTY      bool
	linesDrawn int
	lastMark   time.Time
	now        func() time.Time
}

// NewProgressDisplay creates a ProgressDisplay writing to out.
func NewProgressDisplay(out io.Writer, title string, labels config.LabelsConfig) *ProgressDisplay {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &ProgressDisplay{
		out:       out,
		title:     title,
		labels:    labels,
		cardIndex: make(map[int]int),
		printed:   make(map[int]bool),
		isTTY:     isTTY,
		now:       time.Now,
	}
}

// AddCard registers a card for progress tracking.
func (p *ProgressDisplay) AddCard(id int, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cardIndex[id] = len(p.cards)
	p.cards = append(p.cards, &CardState{ID: id, Name: name})
}

// Start draws the initial display.
func (p *ProgressDisplay) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = true
	p.lastMark = p.now()
	p.render()
}

// Resolve records a card's outcome and re-renders.
func (p *ProgressDisplay) Resolve(id int, status CardStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.cardIndex[id]
	if !ok {
		return
	}
	card := p.cards[idx]
	if card.Status != StatusPending {
		return
	}

	now := p.now()
	card.Status = status
	card.Elapsed = now.Sub(p.lastMark)
	p.lastMark = now

	if p.started {
		p.render()
	}
}

// Counts returns how many cards landed in each bucket.
func (p *ProgressDisplay) Counts() (kept, killed, maybe int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts()
}

func (p *ProgressDisplay) counts() (kept, killed, maybe int) {
	for _, c := range p.cards {
		switch c.Status {
		case StatusKept:
			kept++
		case StatusKilled:
			killed++
		case StatusMaybe:
			maybe++
		}
	}
	return kept, killed, maybe
}

// Finish moves below the drawn output and prints the bucket totals.
func (p *ProgressDisplay) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTTY && p.linesDrawn > 0 {
		fmt.Fprint(p.out, "\n")
	}

	kept, killed, maybe := p.counts()
	fmt.Fprintf(p.out, "%s: %d  %s: %d  %s: %d\n",
		p.labels.Keep, kept, p.labels.Kill, killed, p.labels.Maybe, maybe)
}

func (p *ProgressDisplay) render() {
	if !p.isTTY {
		p.renderPlain()
		return
	}
	p.renderTTY()
}

// renderTTY redraws the list in place using ANSI escape codes.
func (p *ProgressDisplay) renderTTY() {
	if p.linesDrawn > 0 {
		fmt.Fprintf(p.out, "\033[%dA", p.linesDrawn)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "\033[2K\033[1m%s\033[0m\n", p.title)
	buf.WriteString("\033[2K\n")
	for _, card := range p.cards {
		buf.WriteString("\033[2K")
		buf.WriteString(p.formatCardLine(card))
		buf.WriteString("\n")
	}

	fmt.Fprint(p.out, buf.String())
	p.linesDrawn = len(p.cards) + 2 // header + blank + cards
}

// renderPlain writes non-TTY output (for CI/piping).
// Each decided card is printed once.
func (p *ProgressDisplay) renderPlain() {
	for _, card := range p.cards {
		if card.Status == StatusPending || p.printed[card.ID] {
			continue
		}
		fmt.Fprintln(p.out, p.formatCardLinePlain(card))
		p.printed[card.ID] = true
	}
}

// formatCardLine formats a card line with ANSI colors and status icons.
func (p *ProgressDisplay) formatCardLine(card *CardState) string {
	name := card.Name
	if len(name) > 40 {
		name = name[:37] + "..."
	}
	detail := "\033[90m[pending]\033[0m"
	if card.Status != StatusPending {
		detail = fmt.Sprintf("%s \033[90m[%s]\033[0m", p.label(card.Status), formatDuration(card.Elapsed))
	}
	return fmt.Sprintf("  %s %-40s %s", statusIcon(card.Status), name, detail)
}

// formatCardLinePlain formats a card line without escape codes.
func (p *ProgressDisplay) formatCardLinePlain(card *CardState) string {
	return fmt.Sprintf("  %-28s %s", card.Name, p.label(card.Status))
}

func (p *ProgressDisplay) label(s CardStatus) string {
	switch s {
	case StatusKept:
		return p.labels.Keep
	case StatusKilled:
		return p.labels.Kill
	case StatusMaybe:
		return p.labels.Maybe
	}
	return "pending"
}

// statusIcon returns the status icon for a card.
func statusIcon(status CardStatus) string {
	switch status {
	case StatusKept:
		return "\033[32m✔\033[0m" // green check
	case StatusKilled:
		return "\033[31m✘\033[0m" // red X
	case StatusMaybe:
		return "\033[33m?\033[0m"
	default:
		return "\033[90m○\033[0m" // dim circle
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
