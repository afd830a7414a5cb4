// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/catalog"
	"github.com/berth-dev/swipe/internal/config"
	"github.com/berth-dev/swipe/internal/gesture"
	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/submit"
	"github.com/berth-dev/swipe/internal/survey"
)

// ViewState represents the current screen of the TUI.
type ViewState int

const (
	StateDeck    ViewState = iota // cards remain
	StateResults                  // catalog exhausted
)

// Deps are the collaborators a Model is built from.
type Deps struct {
	Cfg     *config.Config
	Catalog *catalog.Catalog
	Client  *submit.Client
	Events  swipelog.Sink
	Logger  *zap.Logger
}

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	State ViewState

	// Configuration
	Cfg        *config.Config
	Catalog    *catalog.Catalog
	Thresholds gesture.Thresholds
	Keys       KeyMap

	// Session
	Reducer *survey.Reducer
	Client  *submit.Client
	// Payload is built on the first attempt of a session and re-sent on retry.
	Payload *submit.Payload

	// Logging
	Events swipelog.Sink
	Logger *zap.Logger

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model with the given dependencies.
func NewModel(d Deps) *Model {
	cfg := d.Cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	events := d.Events
	if events == nil {
		events = swipelog.Discard
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Model{
		State:   StateDeck,
		Cfg:     cfg,
		Catalog: d.Catalog,
		Thresholds: gesture.Thresholds{
			X: cfg.Gesture.ThresholdX,
			Y: cfg.Gesture.ThresholdY,
		},
		Keys:    NewKeyMap(cfg.Labels),
		Reducer: survey.New(d.Catalog.Items()),
		Client:  d.Client,
		Events:  events,
		Logger:  logger,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}

// Title returns the header line: config title, then catalog title.
func (m *Model) Title() string {
	if m.Cfg.Title != "" {
		return m.Cfg.Title
	}
	if m.Catalog.Title() != "" {
		return m.Catalog.Title()
	}
	return "Swipe"
}

// Subtitle returns the line under the title.
func (m *Model) Subtitle() string {
	if m.Cfg.Subtitle != "" {
		return m.Cfg.Subtitle
	}
	return m.Catalog.Subtitle()
}

// WaitingOnEarlier reports whether the last attempt was refused because a
// request from before a restart is still running. The app resends once
// that request returns.
func (m *Model) WaitingOnEarlier() bool {
	sub := m.Reducer.Submission()
	return sub.Status == survey.Failed && sub.Err == submit.ErrInFlight.Error()
}

// Record appends a survey event, logging rather than failing on error.
func (m *Model) Record(e swipelog.LogEvent) {
	if err := m.Events.Append(e); err != nil {
		m.Logger.Debug("event log append failed", zap.String("event", e.Event), zap.Error(err))
	}
}
