package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/berth-dev/swipe/internal/config"
)

func newTestDisplay(out *bytes.Buffer) *ProgressDisplay {
	p := NewProgressDisplay(out, "Sample", config.DefaultConfig().Labels)
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time {
		t0 = t0.Add(3 * time.Second)
		return t0
	}
	p.AddCard(1, "Alpha")
	p.AddCard(2, "Beta")
	p.AddCard(3, "Gamma")
	return p
}

func TestProgressDisplay_Plain(t *testing.T) {
	var out bytes.Buffer
	p := newTestDisplay(&out)

	p.Start()
	assert.Empty(t, out.String(), "pending cards are not printed")

	p.Resolve(1, StatusKept)
	p.Resolve(2, StatusMaybe)
	assert.Equal(t, "  Alpha                        Keep\n  Beta                         Maybe\n", out.String())

	p.Finish()
	assert.Contains(t, out.String(), "Keep: 1  Kill: 0  Maybe: 1\n")
	assert.NotContains(t, out.String(), "\033[")
}

func TestProgressDisplay_ResolveOnce(t *testing.T) {
	var out bytes.Buffer
	p := newTestDisplay(&out)
	p.Start()

	p.Resolve(1, StatusKilled)
	p.Resolve(1, StatusKept)
	p.Resolve(99, StatusKept)

	kept, killed, maybe := p.Counts()
	assert.Equal(t, [3]int{0, 1, 0}, [3]int{kept, killed, maybe})
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Alpha")))
}

func TestProgressDisplay_TTYRedraw(t *testing.T) {
	var out bytes.Buffer
	p := newTestDisplay(&out)
	p.isTTY = true

	p.Start()
	assert.Equal(t, 5, p.linesDrawn)
	p.Resolve(1, StatusKept)
	assert.Contains(t, out.String(), "\033[5A")
	assert.Contains(t, out.String(), "[3s]")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "2s"},
		{95 * time.Second, "1m35s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
