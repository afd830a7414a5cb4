package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/swipe/internal/submit"
	"github.com/berth-dev/swipe/internal/tui"
)

// SubmitCmd delivers p in the background and reports the result tagged
// with the session generation it was started in. The attempt has no
// deadline; it ends when the transport does.
func SubmitCmd(client *submit.Client, p submit.Payload, generation int) tea.Cmd {
	return func() tea.Msg {
		return tui.SubmitResultMsg{
			Generation: generation,
			Result:     client.Submit(context.Background(), p),
		}
	}
}
