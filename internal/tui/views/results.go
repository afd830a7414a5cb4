package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berth-dev/swipe/internal/catalog"
	"github.com/berth-dev/swipe/internal/survey"
	"github.com/berth-dev/swipe/internal/tui"
)

// previewNames is how many names each bucket lists before "+N more".
const previewNames = 2

// ResultsModel is the summary screen shown once every card is decided.
type ResultsModel struct {
	model   *tui.Model
	spinner spinner.Model
}

// NewResultsModel creates the results screen.
func NewResultsModel(m *tui.Model) ResultsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tui.InfoStyle

	return ResultsModel{model: m, spinner: s}
}

// Init starts the spinner.
func (r ResultsModel) Init() tea.Cmd {
	return r.spinner.Tick
}

// Update handles messages for the results screen. Retry and restart keys
// are turned into RetryMsg and RestartMsg; the app owns the transitions.
func (r ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if r.model.Reducer.Submission().Status != survey.InFlight {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		keys := r.model.Keys
		sub := r.model.Reducer.Submission()
		switch {
		case key.Matches(msg, keys.Retry) && sub.Status == survey.Failed:
			return r, func() tea.Msg { return tui.RetryMsg{} }
		case key.Matches(msg, keys.Restart):
			return r, func() tea.Msg { return tui.RestartMsg{} }
		}
	}
	return r, nil
}

// View renders the results screen.
func (r ResultsModel) View() string {
	m := r.model
	var b strings.Builder

	if status := r.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n\n")
	}

	b.WriteString(tui.TitleStyle.Render("All Done!"))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("Here's your %s summary", m.Title())))
	b.WriteString("\n\n")

	buckets := m.Reducer.Buckets()
	labels := m.Cfg.Labels
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderBucket(labels.Keep, tui.KeepColor, buckets.Kept),
		renderBucket(labels.Maybe, tui.MaybeColor, buckets.Maybe),
		renderBucket(labels.Kill, tui.KillColor, buckets.Killed),
	))
	b.WriteString("\n\n")

	hints := []string{"s start over", "q quit"}
	if m.Reducer.Submission().Status == survey.Failed {
		hints = append([]string{"r try again"}, hints...)
	}
	if m.CtrlCPending {
		b.WriteString(tui.DimStyle.Render("Press Ctrl+C again to exit"))
	} else {
		b.WriteString(tui.DimStyle.Render(strings.Join(hints, " • ")))
	}

	return b.String()
}

func (r ResultsModel) renderStatus() string {
	sub := r.model.Reducer.Submission()
	switch sub.Status {
	case survey.InFlight:
		return tui.InfoStyle.Render(r.spinner.View() + " Saving your results...")
	case survey.Succeeded:
		return tui.KeepStyle.Render("✓ Results saved successfully!")
	case survey.Failed:
		if r.model.WaitingOnEarlier() {
			return tui.InfoStyle.Render("… Waiting for an earlier submission to finish") + "\n" +
				tui.DimStyle.Render("Your results are sent as soon as it returns")
		}
		return tui.KillStyle.Render("✗ Failed to save results") + "\n" +
			tui.DimStyle.Render(sub.Err)
	}
	return ""
}

// renderBucket draws one results column: label, count, and a short preview
// of the names in resolution order.
func renderBucket(label, color string, items []catalog.Item) string {
	style := tui.BucketStyle.BorderForeground(lipgloss.Color(color))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	lines := []string{
		accent.Render(label),
		accent.Bold(true).Render(fmt.Sprintf("%d", len(items))),
	}
	lines = append(lines, previewLines(catalog.Names(items))...)
	return style.Render(strings.Join(lines, "\n"))
}

// previewLines lists up to previewNames names, then "+N more".
func previewLines(names []string) []string {
	if len(names) <= previewNames {
		return names
	}
	out := append([]string(nil), names[:previewNames]...)
	return append(out, fmt.Sprintf("+%d more", len(names)-previewNames))
}
