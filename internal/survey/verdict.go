// Package survey holds the classification state of one swiping session.
package survey

// Verdict is the outcome of swiping a single card.
type Verdict int

const (
	NoVerdict Verdict = iota
	Left              // kill
	Right             // keep
	Up                // maybe later
)

// String returns the swipe direction name.
func (v Verdict) String() string {
	switch v {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "none"
	}
}

// Valid reports whether v is one of the three swipe directions.
func (v Verdict) Valid() bool {
	return v == Left || v == Right || v == Up
}

// ParseVerdict accepts a direction name or its one-letter form, or a
// bucket name ("keep", "kill", "maybe").
func ParseVerdict(s string) (Verdict, bool) {
	switch s {
	case "left", "l", "kill", "x":
		return Left, true
	case "right", "r", "keep", "k":
		return Right, true
	case "up", "u", "maybe", "m", "skip":
		return Up, true
	default:
		return NoVerdict, false
	}
}
