// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/swipe/internal/survey"
	"github.com/berth-dev/swipe/internal/tui"
)

// FPS is the card animation frame rate.
const FPS = 60

// FrameCmd schedules the next animation frame.
func FrameCmd() tea.Cmd {
	return tea.Tick(time.Second/FPS, func(time.Time) tea.Msg {
		return tui.FrameMsg{}
	})
}

// VerdictCmd reports a committed card verdict back through the update loop.
func VerdictCmd(v survey.Verdict) tea.Cmd {
	return func() tea.Msg {
		return tui.VerdictMsg{Verdict: v}
	}
}
