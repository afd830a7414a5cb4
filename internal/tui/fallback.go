// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/gesture"
	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/survey"
	"github.com/berth-dev/swipe/internal/ui"
)

// ErrNoVerdicts is returned when a non-interactive run has nothing to play.
var ErrNoVerdicts = errors.New("verdicts required in non-interactive mode")

// FallbackRunner plays a session without a terminal, feeding a scripted
// verdict sequence through the same card and reducer the TUI uses.
type FallbackRunner struct {
	model *Model
	out   io.Writer
}

// NewFallbackRunner creates a FallbackRunner writing progress to out.
func NewFallbackRunner(m *Model, out io.Writer) *FallbackRunner {
	return &FallbackRunner{model: m, out: out}
}

// Play resolves one card per verdict, in order, then submits the results
// once the catalog is exhausted. Verdicts beyond the catalog are ignored.
// It returns the final session state.
func (f *FallbackRunner) Play(ctx context.Context, verdicts []survey.Verdict) (survey.State, error) {
	m := f.model
	if len(verdicts) == 0 {
		return m.Reducer.Snapshot(), ErrNoVerdicts
	}

	fmt.Fprintln(f.out, "Running in non-interactive mode...")
	prog := ui.NewProgressDisplay(f.out, m.Title(), m.Cfg.Labels)
	for _, item := range m.Reducer.Upcoming(m.Reducer.Remaining()) {
		prog.AddCard(item.ID, item.Name)
	}
	prog.Start()

	m.Record(swipelog.LogEvent{
		Event: swipelog.EventSessionStarted,
		Total: m.Reducer.Total(),
		Mode:  m.Client.Mode().String(),
	})

	for _, v := range verdicts {
		item, ok := m.Reducer.Current()
		if !ok {
			break
		}
		if !m.Reducer.TriggerExternal(v) {
			return m.Reducer.Snapshot(), fmt.Errorf("verdict %q not accepted for %q", v, item.Name)
		}
		out := gesture.NewCard(m.Thresholds).Trigger(v)
		if out.Kind != gesture.Commit {
			return m.Reducer.Snapshot(), fmt.Errorf("card %q did not commit", item.Name)
		}
		m.Reducer.Resolve(out.Verdict)
		m.Record(swipelog.LogEvent{
			Event:    swipelog.EventCardResolved,
			ItemID:   item.ID,
			ItemName: item.Name,
			Verdict:  out.Verdict.String(),
			Position: m.Reducer.Position(),
			Total:    m.Reducer.Total(),
		})
		prog.Resolve(item.ID, cardStatus(out.Verdict))
	}
	prog.Finish()

	if m.Reducer.Phase() != survey.Exhausted {
		fmt.Fprintf(f.out, "%d of %d cards remain; results are sent once every card is decided\n",
			m.Reducer.Remaining(), m.Reducer.Total())
		return m.Reducer.Snapshot(), nil
	}

	if !m.Reducer.BeginSubmission() {
		return m.Reducer.Snapshot(), nil
	}
	p := m.Client.BuildPayload(m.Reducer.Buckets(), m.Reducer.StartedAt())
	m.Payload = &p

	fmt.Fprintln(f.out, "Saving your results...")
	res := m.Client.Submit(ctx, p)
	m.Reducer.CompleteSubmission(m.Reducer.Generation(), res.Success, res.Error)

	sub := m.Reducer.Submission()
	if sub.Status == survey.Failed {
		m.Logger.Warn("non-interactive submission failed", zap.String("error", sub.Err))
		fmt.Fprintf(f.out, "Failed to save results: %s\n", sub.Err)
		return m.Reducer.Snapshot(), errors.New(sub.Err)
	}
	fmt.Fprintln(f.out, "Results saved successfully!")
	return m.Reducer.Snapshot(), nil
}

// ParseVerdicts splits a comma- or space-separated verdict list.
func ParseVerdicts(s string) ([]survey.Verdict, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]survey.Verdict, 0, len(fields))
	for _, f := range fields {
		v, ok := survey.ParseVerdict(f)
		if !ok {
			return nil, fmt.Errorf("unknown verdict %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func cardStatus(v survey.Verdict) ui.CardStatus {
	switch v {
	case survey.Right:
		return ui.StatusKept
	case survey.Left:
		return ui.StatusKilled
	case survey.Up:
		return ui.StatusMaybe
	}
	return ui.StatusPending
}
