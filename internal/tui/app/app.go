// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/survey"
	"github.com/berth-dev/swipe/internal/tui"
	"github.com/berth-dev/swipe/internal/tui/commands"
	"github.com/berth-dev/swipe/internal/tui/views"
)

// App is the main TUI application that wires all views together. It is
// the only owner of the session reducer's mutating calls.
type App struct {
	model *tui.Model

	// View models
	deckView    views.DeckModel
	resultsView views.ResultsModel
}

// New creates a new App around the given model.
func New(model *tui.Model) *App {
	return &App{
		model:       model,
		deckView:    views.NewDeckModel(model),
		resultsView: views.NewResultsModel(model),
	}
}

// Model exposes the shared model.
func (a *App) Model() *tui.Model { return a.model }

// Init records the session start.
func (a *App) Init() tea.Cmd {
	a.model.Record(swipelog.LogEvent{
		Event: swipelog.EventSessionStarted,
		Total: a.model.Reducer.Total(),
		Mode:  a.model.Client.Mode().String(),
	})
	return nil
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		a.deckView, cmd = a.deckView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		keys := a.model.Keys
		switch {
		case key.Matches(msg, keys.CtrlC):
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		}

	case tui.CtrlCResetMsg:
		// Reset Ctrl+C confirmation state after timeout
		a.model.CtrlCPending = false
		return a, nil

	case tui.FrameMsg:
		// Exit animations keep running after the results screen appears.
		var cmd tea.Cmd
		a.deckView, cmd = a.deckView.Update(msg)
		return a, cmd

	case tui.VerdictMsg:
		return a.handleVerdict(msg)

	case tui.SubmitResultMsg:
		return a.handleSubmitResult(msg)

	case tui.RetryMsg:
		return a.handleRetry()

	case tui.RestartMsg:
		return a.handleRestart()
	}

	// Route messages based on current state
	switch a.model.State {
	case tui.StateDeck:
		return a.updateDeck(msg)
	case tui.StateResults:
		return a.updateResults(msg)
	}
	return a, nil
}

// View renders the current application state.
func (a *App) View() string {
	var content string
	switch a.model.State {
	case tui.StateDeck:
		content = a.deckView.View()
	case tui.StateResults:
		content = a.resultsView.View()
	default:
		content = "Unknown state"
	}
	return a.centerContent(content)
}

// centerContent centers the given content both horizontally and vertically.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateDeck(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		keys := a.model.Keys
		switch {
		case key.Matches(msg, keys.Kill):
			return a.trigger(survey.Left)
		case key.Matches(msg, keys.Maybe):
			return a.trigger(survey.Up)
		case key.Matches(msg, keys.Keep):
			return a.trigger(survey.Right)
		case key.Matches(msg, keys.Help):
			a.deckView = a.deckView.ToggleHelp()
			return a, nil
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.deckView, cmd = a.deckView.Update(msg)
	return a, cmd
}

// trigger routes a key press through the card so it leaves the same way a
// drag does. While a verdict is pending further keys are dropped.
func (a *App) trigger(v survey.Verdict) (tea.Model, tea.Cmd) {
	if !a.model.Reducer.TriggerExternal(v) {
		return a, nil
	}
	var cmd tea.Cmd
	a.deckView, cmd = a.deckView.Trigger(v)
	return a, cmd
}

func (a *App) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.resultsView, cmd = a.resultsView.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleVerdict applies a committed card to the session and, when it was
// the last one, moves to results and starts the upload.
func (a *App) handleVerdict(msg tui.VerdictMsg) (tea.Model, tea.Cmd) {
	r := a.model.Reducer
	item, ok := r.Current()
	if !ok || !r.Resolve(msg.Verdict) {
		return a, nil
	}
	a.model.Record(swipelog.LogEvent{
		Event:    swipelog.EventCardResolved,
		ItemID:   item.ID,
		ItemName: item.Name,
		Verdict:  msg.Verdict.String(),
		Position: r.Position(),
		Total:    r.Total(),
	})
	a.deckView = a.deckView.Next()

	if r.Phase() != survey.Exhausted {
		return a, nil
	}

	a.model.State = tui.StateResults
	if !r.BeginSubmission() {
		return a, nil
	}
	p := a.model.Client.BuildPayload(r.Buckets(), r.StartedAt())
	a.model.Payload = &p
	return a, tea.Batch(
		a.resultsView.Init(),
		commands.SubmitCmd(a.model.Client, p, r.Generation()),
	)
}

func (a *App) handleSubmitResult(msg tui.SubmitResultMsg) (tea.Model, tea.Cmd) {
	if a.model.Reducer.CompleteSubmission(msg.Generation, msg.Result.Success, msg.Result.Error) {
		return a, nil
	}
	a.model.Logger.Debug("dropped stale submission result",
		zap.Int("generation", msg.Generation),
		zap.Int("current", a.model.Reducer.Generation()))

	// The request that blocked the current session has finished.
	if a.model.WaitingOnEarlier() {
		return a.handleRetry()
	}
	return a, nil
}

func (a *App) handleRetry() (tea.Model, tea.Cmd) {
	r := a.model.Reducer
	if a.model.Payload == nil || !r.BeginRetry() {
		return a, nil
	}
	a.model.Logger.Info("retrying submission", zap.String("session", a.model.Payload.SessionID))
	return a, tea.Batch(
		a.resultsView.Init(),
		commands.SubmitCmd(a.model.Client, *a.model.Payload, r.Generation()),
	)
}

func (a *App) handleRestart() (tea.Model, tea.Cmd) {
	a.model.Reducer.Reset()
	a.model.Payload = nil
	a.model.State = tui.StateDeck
	a.deckView = a.deckView.Reset()
	a.model.Record(swipelog.LogEvent{
		Event: swipelog.EventSessionReset,
		Total: a.model.Reducer.Total(),
	})
	return a, nil
}
