package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berth-dev/swipe/internal/config"
	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/submit"
	"github.com/berth-dev/swipe/internal/survey"
	"github.com/berth-dev/swipe/internal/testutil"
)

func newFallbackModel(t *testing.T) (*Model, *testutil.MemorySink, *testutil.NoNetwork) {
	t.Helper()
	sink := &testutil.MemorySink{}
	doer := &testutil.NoNetwork{}
	client := submit.New(config.Resolved{Mode: config.Disabled, Reason: "not configured"},
		submit.WithHTTPClient(doer), submit.WithEvents(sink))
	m := NewModel(Deps{
		Catalog: testutil.SampleCatalog(t),
		Client:  client,
		Events:  sink,
	})
	return m, sink, doer
}

func TestFallbackPlay_FullSession(t *testing.T) {
	m, sink, doer := newFallbackModel(t)
	var out bytes.Buffer

	state, err := NewFallbackRunner(m, &out).Play(context.Background(),
		[]survey.Verdict{survey.Right, survey.Left, survey.Up})
	require.NoError(t, err)

	assert.Equal(t, survey.Exhausted, state.Phase())
	assert.Equal(t, survey.Succeeded, state.Submission.Status)
	assert.Equal(t, "Alpha", state.Buckets.Kept[0].Name)
	assert.Equal(t, "Beta", state.Buckets.Killed[0].Name)
	assert.Equal(t, "Gamma", state.Buckets.Maybe[0].Name)
	assert.Zero(t, doer.Calls())

	assert.Contains(t, out.String(), "Keep: 1  Kill: 1  Maybe: 1")
	assert.Contains(t, out.String(), "Results saved successfully!")
	assert.Equal(t, []string{
		swipelog.EventSessionStarted,
		swipelog.EventCardResolved,
		swipelog.EventCardResolved,
		swipelog.EventCardResolved,
		swipelog.EventSubmissionLogged,
	}, sink.Kinds())
	require.NotNil(t, m.Payload)
	assert.Equal(t, "1/1/1", m.Payload.Summary())
}

func TestFallbackPlay_Partial(t *testing.T) {
	m, _, _ := newFallbackModel(t)
	var out bytes.Buffer

	state, err := NewFallbackRunner(m, &out).Play(context.Background(), []survey.Verdict{survey.Right})
	require.NoError(t, err)

	assert.Equal(t, survey.Active, state.Phase())
	assert.Equal(t, survey.NotStarted, state.Submission.Status)
	assert.Contains(t, out.String(), "2 of 3 cards remain")
	assert.Nil(t, m.Payload)
}

func TestFallbackPlay_ExtraVerdictsIgnored(t *testing.T) {
	m, _, _ := newFallbackModel(t)

	state, err := NewFallbackRunner(m, &bytes.Buffer{}).Play(context.Background(),
		[]survey.Verdict{survey.Left, survey.Left, survey.Left, survey.Right, survey.Right})
	require.NoError(t, err)
	assert.Len(t, state.Buckets.Killed, 3)
	assert.Empty(t, state.Buckets.Kept)
}

func TestFallbackPlay_NoVerdicts(t *testing.T) {
	m, _, _ := newFallbackModel(t)
	_, err := NewFallbackRunner(m, &bytes.Buffer{}).Play(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoVerdicts)
}

func TestParseVerdicts(t *testing.T) {
	got, err := ParseVerdicts("keep, x up,maybe")
	require.NoError(t, err)
	assert.Equal(t, []survey.Verdict{survey.Right, survey.Left, survey.Up, survey.Up}, got)

	_, err = ParseVerdicts("right,sideways")
	assert.Error(t, err)
}
