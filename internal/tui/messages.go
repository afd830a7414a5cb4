// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/berth-dev/swipe/internal/submit"
	"github.com/berth-dev/swipe/internal/survey"
)

// ============================================================================
// Card Messages
// ============================================================================

// VerdictMsg reports that the top card committed a verdict, from a drag
// or a key press. It is the only path into survey.Reducer.Resolve.
type VerdictMsg struct {
	Verdict survey.Verdict
}

// FrameMsg advances running card animations by one frame.
type FrameMsg struct{}

// ============================================================================
// Submission Messages
// ============================================================================

// SubmitResultMsg carries the outcome of a submission started in session
// Generation.
type SubmitResultMsg struct {
	Generation int
	Result     submit.Result
}

// RetryMsg asks to re-send the failed submission.
type RetryMsg struct{}

// RestartMsg asks for a fresh session.
type RestartMsg struct{}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}
