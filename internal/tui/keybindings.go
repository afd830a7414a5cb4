// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/berth-dev/swipe/internal/config"
)

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	// Verdicts
	Kill  key.Binding
	Maybe key.Binding
	Keep  key.Binding

	// Results
	Retry   key.Binding
	Restart key.Binding

	// Control
	Help  key.Binding
	Quit  key.Binding
	CtrlC key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = NewKeyMap(config.DefaultConfig().Labels)

// NewKeyMap builds the key map, using labels for the verdict help text.
// Letter keys for verdicts use the same letters "swipe play" accepts.
func NewKeyMap(labels config.LabelsConfig) KeyMap {
	return KeyMap{
		Kill: key.NewBinding(
			key.WithKeys(KeyLeft, "x"),
			key.WithHelp("←/x", labels.Kill),
		),
		Maybe: key.NewBinding(
			key.WithKeys(KeyUp, "m"),
			key.WithHelp("↑/m", labels.Maybe),
		),
		Keep: key.NewBinding(
			key.WithKeys(KeyRight, "k", KeyEnter),
			key.WithHelp("→/k", labels.Keep),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "try again"),
		),
		Restart: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start over"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", KeyEsc),
			key.WithHelp("q", "quit"),
		),
		CtrlC: key.NewBinding(
			key.WithKeys(KeyCtrlC),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Kill, k.Maybe, k.Keep, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Kill, k.Maybe, k.Keep},
		{k.Retry, k.Restart},
		{k.Help, k.Quit, k.CtrlC},
	}
}
