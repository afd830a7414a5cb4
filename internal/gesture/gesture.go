// Package gesture turns drag displacement on the top card into a verdict.
//
// A Card accepts pointer input until it commits. The commit decision is
// taken once, on release or on an external trigger, and never while the
// pointer is still moving.
package gesture

import (
	"math"

	"github.com/berth-dev/swipe/internal/survey"
)

// Default commit thresholds, in terminal cells.
const (
	DefaultThresholdX = 12
	DefaultThresholdY = 4
)

// Thresholds are the minimum displacements that commit a verdict.
type Thresholds struct {
	X float64
	Y float64
}

// DefaultThresholds returns the built-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{X: DefaultThresholdX, Y: DefaultThresholdY}
}

// Decide applies the commit rule to a released drag. Horizontal wins when
// it crosses X and dominates the vertical movement; otherwise an upward
// drag past Y commits Up. Downward drags never commit.
func Decide(dx, dy float64, t Thresholds) (survey.Verdict, bool) {
	if math.Abs(dx) >= t.X && math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return survey.Right, true
		}
		return survey.Left, true
	}
	if dy <= -t.Y {
		return survey.Up, true
	}
	return survey.NoVerdict, false
}

// Kind says what a Card did with an input.
type Kind int

const (
	Ignored Kind = iota // input did not apply
	Moved               // drag in progress
	Settle              // released below threshold, return to center
	Commit              // verdict emitted
)

// Outcome is the result of feeding input to a Card.
type Outcome struct {
	Kind    Kind
	Verdict survey.Verdict
	// DX and DY are the displacement at the time of the outcome.
	DX, DY float64
}

type cardState int

const (
	idle cardState = iota
	dragging
	committed
)

// Card interprets input for one card. The zero value is not usable; use
// NewCard.
type Card struct {
	thresholds Thresholds
	state      cardState

	originX, originY int
	dx, dy           float64
	verdict          survey.Verdict
}

// NewCard returns an idle card that commits at the given thresholds.
func NewCard(t Thresholds) *Card {
	return &Card{thresholds: t}
}

// Press starts a drag at terminal cell (x, y).
func (c *Card) Press(x, y int) Outcome {
	if c.state == committed {
		return Outcome{Kind: Ignored}
	}
	c.state = dragging
	c.originX, c.originY = x, y
	c.dx, c.dy = 0, 0
	return Outcome{Kind: Moved}
}

// Drag updates the displacement of an active drag.
func (c *Card) Drag(x, y int) Outcome {
	if c.state != dragging {
		return Outcome{Kind: Ignored}
	}
	c.dx = float64(x - c.originX)
	c.dy = float64(y - c.originY)
	return Outcome{Kind: Moved, DX: c.dx, DY: c.dy}
}

// Release ends the drag at (x, y) and evaluates the threshold once.
func (c *Card) Release(x, y int) Outcome {
	if c.state != dragging {
		return Outcome{Kind: Ignored}
	}
	c.dx = float64(x - c.originX)
	c.dy = float64(y - c.originY)
	return c.release()
}

// ReleaseAt ends the drag with an explicit displacement.
func (c *Card) ReleaseAt(dx, dy float64) Outcome {
	if c.state != dragging {
		return Outcome{Kind: Ignored}
	}
	c.dx, c.dy = dx, dy
	return c.release()
}

func (c *Card) release() Outcome {
	v, ok := Decide(c.dx, c.dy, c.thresholds)
	if !ok {
		out := Outcome{Kind: Settle, DX: c.dx, DY: c.dy}
		c.state = idle
		c.dx, c.dy = 0, 0
		return out
	}
	return c.commit(v)
}

// Trigger commits v as if the card had been dragged past the threshold.
// It is how key presses share the drag exit path.
func (c *Card) Trigger(v survey.Verdict) Outcome {
	if c.state == committed || !v.Valid() {
		return Outcome{Kind: Ignored}
	}
	return c.commit(v)
}

func (c *Card) commit(v survey.Verdict) Outcome {
	c.state = committed
	c.verdict = v
	return Outcome{Kind: Commit, Verdict: v, DX: c.dx, DY: c.dy}
}

// Offset returns the current drag displacement.
func (c *Card) Offset() (dx, dy float64) { return c.dx, c.dy }

// Dragging reports whether a drag is in progress.
func (c *Card) Dragging() bool { return c.state == dragging }

// Done reports whether the card has emitted its verdict.
func (c *Card) Done() bool { return c.state == committed }

// Verdict returns the committed verdict, or NoVerdict.
func (c *Card) Verdict() survey.Verdict { return c.verdict }
