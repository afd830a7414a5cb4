// Package views provides TUI view components for the swipe application.
package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/berth-dev/swipe/internal/catalog"
	"github.com/berth-dev/swipe/internal/gesture"
	"github.com/berth-dev/swipe/internal/survey"
	"github.com/berth-dev/swipe/internal/tui"
	"github.com/berth-dev/swipe/internal/tui/commands"
)

// Stage geometry in cells. The card moves inside a stage this much larger
// than itself on every side.
const (
	stageMarginX = 24
	stageMarginY = 5
	stackDepth   = 2 // cards drawn underneath the top one
)

// ============================================================================
// Animation
// ============================================================================

// motion is one animated offset pair driven by a spring.
type motion struct {
	x, y   float64
	vx, vy float64
	tx, ty float64
}

func (m *motion) step(s harmonica.Spring) {
	m.x, m.vx = s.Update(m.x, m.vx, m.tx)
	m.y, m.vy = s.Update(m.y, m.vy, m.ty)
}

func (m *motion) near(eps float64) bool {
	return math.Abs(m.x-m.tx) < eps && math.Abs(m.y-m.ty) < eps &&
		math.Abs(m.vx) < eps && math.Abs(m.vy) < eps
}

// exit is a card that already committed and is flying off the stage. It is
// purely visual: the session has moved on by the time it is drawn.
type exit struct {
	item    catalog.Item
	verdict survey.Verdict
	motion
}

func (e *exit) gone() bool {
	return math.Abs(e.x) >= stageMarginX || e.y <= -stageMarginY
}

// ============================================================================
// DeckModel
// ============================================================================

// DeckModel renders the card stack and turns pointer input into verdicts.
// It reads session state from the reducer but never changes it; commits
// leave as VerdictMsg.
type DeckModel struct {
	model *tui.Model
	card  *gesture.Card

	settle  *motion // top card springing back to center
	exiting *exit

	settleSpring harmonica.Spring
	exitSpring   harmonica.Spring
	animating    bool

	progress progress.Model
	help     help.Model
}

// NewDeckModel creates a deck over the model's reducer.
func NewDeckModel(m *tui.Model) DeckModel {
	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = tui.CardWidth

	h := help.New()
	h.Width = m.Width

	return DeckModel{
		model:        m,
		card:         gesture.NewCard(m.Thresholds),
		settleSpring: harmonica.NewSpring(harmonica.FPS(commands.FPS), 6.0, 0.5),
		exitSpring:   harmonica.NewSpring(harmonica.FPS(commands.FPS), 10.0, 1.0),
		progress:     p,
		help:         h,
	}
}

// Update handles pointer input, frames and resizes for the deck.
func (d DeckModel) Update(msg tea.Msg) (DeckModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.help.Width = msg.Width
		return d, nil

	case tea.MouseMsg:
		return d.handleMouse(msg)

	case tui.FrameMsg:
		return d.handleFrame()
	}
	return d, nil
}

func (d DeckModel) handleMouse(msg tea.MouseMsg) (DeckModel, tea.Cmd) {
	if _, ok := d.model.Reducer.Current(); !ok {
		return d, nil
	}

	var out gesture.Outcome
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return d, nil
		}
		out = d.card.Press(msg.X, msg.Y)
		if out.Kind == gesture.Moved {
			d.settle = nil
		}
	case tea.MouseActionMotion:
		out = d.card.Drag(msg.X, msg.Y)
	case tea.MouseActionRelease:
		out = d.card.Release(msg.X, msg.Y)
	}

	switch out.Kind {
	case gesture.Settle:
		d.settle = &motion{x: out.DX, y: out.DY}
		cmd := d.animate()
		return d, cmd
	case gesture.Commit:
		return d.committed(out)
	}
	return d, nil
}

// Trigger commits v on the top card as if it had been dragged there.
// It returns nil when the card already committed.
func (d DeckModel) Trigger(v survey.Verdict) (DeckModel, tea.Cmd) {
	out := d.card.Trigger(v)
	if out.Kind != gesture.Commit {
		return d, nil
	}
	return d.committed(out)
}

func (d DeckModel) committed(out gesture.Outcome) (DeckModel, tea.Cmd) {
	item, _ := d.model.Reducer.Current()
	d.settle = nil
	d.exiting = &exit{item: item, verdict: out.Verdict, motion: motion{x: out.DX, y: out.DY}}
	d.exiting.tx, d.exiting.ty = exitTarget(out.Verdict)
	frame := d.animate()
	return d, tea.Batch(commands.VerdictCmd(out.Verdict), frame)
}

// Next arms a fresh card for the reducer's current item. Call it once the
// previous verdict has been resolved.
func (d DeckModel) Next() DeckModel {
	d.card = gesture.NewCard(d.model.Thresholds)
	d.settle = nil
	return d
}

// Reset drops any running animation and arms a fresh card.
func (d DeckModel) Reset() DeckModel {
	d.exiting = nil
	return d.Next()
}

// ToggleHelp switches between the short and full key help.
func (d DeckModel) ToggleHelp() DeckModel {
	d.help.ShowAll = !d.help.ShowAll
	return d
}

// Animating reports whether a frame loop is running.
func (d DeckModel) Animating() bool { return d.animating }

func (d *DeckModel) animate() tea.Cmd {
	if d.animating {
		return nil
	}
	d.animating = true
	return commands.FrameCmd()
}

func (d DeckModel) handleFrame() (DeckModel, tea.Cmd) {
	if d.settle != nil {
		d.settle.step(d.settleSpring)
		if d.settle.near(0.5) {
			d.settle = nil
		}
	}
	if d.exiting != nil {
		d.exiting.step(d.exitSpring)
		if d.exiting.gone() {
			d.exiting = nil
		}
	}
	if d.settle == nil && d.exiting == nil {
		d.animating = false
		return d, nil
	}
	return d, commands.FrameCmd()
}

// exitTarget is a point past the stage edge in the verdict's direction.
func exitTarget(v survey.Verdict) (float64, float64) {
	switch v {
	case survey.Right:
		return stageMarginX * 2, 0
	case survey.Left:
		return -stageMarginX * 2, 0
	default:
		return 0, -stageMarginY * 2
	}
}

// ============================================================================
// Rendering
// ============================================================================

// View renders the deck screen.
func (d DeckModel) View() string {
	m := d.model
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(m.Title()))
	b.WriteString("\n")
	if sub := m.Subtitle(); sub != "" {
		b.WriteString(tui.DimStyle.Render(sub))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	r := m.Reducer
	current := min(r.Position()+1, r.Total())
	b.WriteString(tui.BadgeStyle.Render(fmt.Sprintf("%d left", r.Remaining())))
	b.WriteString("  ")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("Card %d of %d", current, r.Total())))
	b.WriteString("\n")
	b.WriteString(d.progress.ViewAs(d.completion()))
	b.WriteString("\n")

	b.WriteString(d.renderStage())
	b.WriteString("\n")

	if m.CtrlCPending {
		b.WriteString(tui.DimStyle.Render("Press Ctrl+C again to exit"))
	} else {
		b.WriteString(d.help.View(m.Keys))
	}

	return b.String()
}

func (d DeckModel) completion() float64 {
	total := d.model.Reducer.Total()
	if total == 0 {
		return 1
	}
	return float64(d.model.Reducer.Position()) / float64(total)
}

// renderStage draws the stack of waiting cards with the moving card on top.
func (d DeckModel) renderStage() string {
	upcoming := d.model.Reducer.Upcoming(stackDepth + 1)

	var block string
	var dx, dy float64
	switch {
	case d.exiting != nil:
		block = d.renderCard(d.exiting.item, d.exiting.verdict, 1)
		dx, dy = d.exiting.x, d.exiting.y
	case len(upcoming) > 0:
		dx, dy = d.card.Offset()
		if d.settle != nil {
			dx, dy = d.settle.x, d.settle.y
		}
		lean, strength := d.lean(dx, dy)
		block = d.renderCard(upcoming[0], lean, strength)
	default:
		block = tui.DimStyle.Render("No more cards")
	}

	under := len(upcoming) - 1
	if d.exiting != nil {
		under = len(upcoming)
	}
	if under > stackDepth {
		under = stackDepth
	}
	if under > 0 {
		block = lipgloss.JoinVertical(lipgloss.Center, block, renderShadow(under))
	}

	left := clamp(stageMarginX+int(math.Round(dx)), 0, 2*stageMarginX)
	top := clamp(stageMarginY+int(math.Round(dy)), 0, 2*stageMarginY)
	placed := lipgloss.NewStyle().PaddingLeft(left).PaddingTop(top).Render(block)

	return lipgloss.Place(
		tui.CardWidth+2*stageMarginX+4,
		lipgloss.Height(block)+2*stageMarginY,
		lipgloss.Left,
		lipgloss.Top,
		placed,
	)
}

// lean previews which way the card would go if released now, and how close
// it is to committing.
func (d DeckModel) lean(dx, dy float64) (survey.Verdict, float64) {
	t := d.model.Thresholds
	if v, ok := gesture.Decide(dx, dy, t); ok {
		return v, 1
	}
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		return survey.Right, dx / t.X
	case math.Abs(dx) > math.Abs(dy) && dx < 0:
		return survey.Left, -dx / t.X
	case dy < 0:
		return survey.Up, -dy / t.Y
	}
	return survey.NoVerdict, 0
}

func (d DeckModel) renderCard(item catalog.Item, lean survey.Verdict, strength float64) string {
	var body strings.Builder
	body.WriteString(tui.TitleStyle.Render(item.Name))
	if item.Category != "" {
		body.WriteString("\n")
		body.WriteString(tui.DimStyle.Render(item.Category))
	}
	if item.Description != "" {
		body.WriteString("\n\n")
		body.WriteString(item.Description)
	}

	style := tui.CardStyle
	if lean != survey.NoVerdict && strength >= 0.5 {
		color := verdictColor(lean)
		style = style.BorderForeground(lipgloss.Color(color))
		body.WriteString("\n\n")
		body.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).
			Render(strings.ToUpper(d.label(lean))))
	}
	return style.Render(body.String())
}

func (d DeckModel) label(v survey.Verdict) string {
	labels := d.model.Cfg.Labels
	switch v {
	case survey.Right:
		return labels.Keep
	case survey.Left:
		return labels.Kill
	case survey.Up:
		return labels.Maybe
	}
	return ""
}

func renderShadow(n int) string {
	lines := make([]string, n)
	for i := range lines {
		inset := (i + 1) * 2
		lines[i] = strings.Repeat(" ", inset) + "╰" + strings.Repeat("─", tui.CardWidth-2*inset) + "╯"
	}
	return tui.ShadowStyle.Render(strings.Join(lines, "\n"))
}

func verdictColor(v survey.Verdict) string {
	switch v {
	case survey.Right:
		return tui.KeepColor
	case survey.Left:
		return tui.KillColor
	default:
		return tui.MaybeColor
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
