package survey

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berth-dev/swipe/internal/catalog"
)

func items(names ...string) []catalog.Item {
	out := make([]catalog.Item, len(names))
	for i, n := range names {
		out[i] = catalog.Item{ID: i + 1, Name: n}
	}
	return out
}

// fixedClock returns a clock that advances one minute per call.
func fixedClock() func() time.Time {
	t := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestResolveScenarioOneOfEach(t *testing.T) {
	r := New(items("A", "B", "C"))

	require.True(t, r.Resolve(Right))
	require.True(t, r.Resolve(Left))
	require.True(t, r.Resolve(Up))

	b := r.Buckets()
	assert.Equal(t, []string{"A"}, catalog.Names(b.Kept))
	assert.Equal(t, []string{"B"}, catalog.Names(b.Killed))
	assert.Equal(t, []string{"C"}, catalog.Names(b.Maybe))
	assert.Equal(t, 3, r.Position())
	assert.Equal(t, Exhausted, r.Phase())
	assert.True(t, r.ShouldAutoSubmit())
}

// TestResolvePartitionsCatalog checks every verdict sequence over a
// four-item catalog: buckets must partition the catalog exactly.
func TestResolvePartitionsCatalog(t *testing.T) {
	cat := items("A", "B", "C", "D")
	verdicts := []Verdict{Left, Right, Up}

	total := 1
	for range cat {
		total *= len(verdicts)
	}

	for seq := 0; seq < total; seq++ {
		r := New(cat)
		n := seq
		for i := range cat {
			before := r.Position()
			require.True(t, r.Resolve(verdicts[n%3]))
			require.Equal(t, before+1, r.Position(), "position must advance by one")
			n /= 3
			assert.Equal(t, i+1, r.Buckets().Len())
		}

		require.Equal(t, len(cat), r.Position())
		b := r.Buckets()
		seen := map[int]int{}
		for _, bucket := range [][]catalog.Item{b.Kept, b.Killed, b.Maybe} {
			for _, it := range bucket {
				seen[it.ID]++
			}
		}
		for _, it := range cat {
			if seen[it.ID] != 1 {
				t.Fatalf("sequence %d: item %s appears %d times", seq, it.Name, seen[it.ID])
			}
		}
	}
}

func TestBucketsKeepInsertionOrder(t *testing.T) {
	r := New(items("A", "B", "C", "D"))
	r.Resolve(Right)
	r.Resolve(Left)
	r.Resolve(Right)
	r.Resolve(Right)

	want := items("A", "B", "C", "D")
	got := r.Buckets().Kept
	if diff := cmp.Diff([]catalog.Item{want[0], want[2], want[3]}, got); diff != "" {
		t.Errorf("Kept mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWhenExhaustedIsNoop(t *testing.T) {
	r := New(items("A"))
	require.True(t, r.Resolve(Left))

	before := r.Snapshot()
	assert.False(t, r.Resolve(Right))
	if diff := cmp.Diff(before, r.Snapshot()); diff != "" {
		t.Errorf("state changed after exhausted resolve (-before +after):\n%s", diff)
	}
}

func TestResolveRejectsNoVerdict(t *testing.T) {
	r := New(items("A"))
	assert.False(t, r.Resolve(NoVerdict))
	assert.Equal(t, 0, r.Position())
}

func TestTriggerExternal(t *testing.T) {
	r := New(items("A", "B"))

	require.True(t, r.TriggerExternal(Up))
	assert.Equal(t, Up, r.Pending())
	assert.Equal(t, 0, r.Buckets().Len(), "trigger must not touch buckets")

	// A second trigger while one is pending changes nothing.
	assert.False(t, r.TriggerExternal(Right))
	assert.Equal(t, Up, r.Pending())
	assert.Equal(t, 0, r.Position())

	require.True(t, r.Resolve(r.Pending()))
	assert.Equal(t, NoVerdict, r.Pending(), "resolve clears pending")
	assert.Equal(t, []string{"A"}, catalog.Names(r.Buckets().Maybe))

	require.True(t, r.TriggerExternal(Right))
}

func TestTriggerExternalWhenExhausted(t *testing.T) {
	r := New(items("A"))
	r.Resolve(Left)
	assert.False(t, r.TriggerExternal(Left))
	assert.Equal(t, NoVerdict, r.Pending())
}

func TestResetIsIdempotent(t *testing.T) {
	r := New(items("A", "B"), WithClock(fixedClock()))
	start := r.StartedAt()

	r.Reset()
	first := r.Snapshot()
	r.Reset()
	second := r.Snapshot()

	// Only the generation and start time move on a reset of a fresh session.
	assert.Equal(t, 0, second.Position)
	assert.Equal(t, 0, second.Buckets.Len())
	assert.Equal(t, NoVerdict, second.Pending)
	assert.Equal(t, NotStarted, second.Submission.Status)
	assert.Equal(t, first.Generation+1, second.Generation)
	assert.True(t, second.StartedAt.After(start))
}

func TestResetAfterProgress(t *testing.T) {
	r := New(items("A", "B", "C"))
	r.Resolve(Right)
	r.TriggerExternal(Left)
	r.Reset()

	assert.Equal(t, 0, r.Position())
	assert.Equal(t, 0, r.Buckets().Len())
	assert.Equal(t, NoVerdict, r.Pending())
	assert.Equal(t, Active, r.Phase())

	for _, v := range []Verdict{Left, Left, Left} {
		r.Resolve(v)
	}
	r.BeginSubmission()
	r.CompleteSubmission(r.Generation(), true, "")
	r.Reset()
	assert.Equal(t, NotStarted, r.Submission().Status)
}

func TestAutoSubmitFiresOncePerExhaustion(t *testing.T) {
	r := New(items("A", "B"))
	assert.False(t, r.ShouldAutoSubmit(), "active session must not submit")

	r.Resolve(Right)
	r.Resolve(Up)

	require.True(t, r.BeginSubmission())
	assert.False(t, r.BeginSubmission(), "second automatic trigger must not fire")
	assert.False(t, r.ShouldAutoSubmit())

	r.CompleteSubmission(r.Generation(), true, "")
	assert.False(t, r.BeginSubmission(), "no resubmission after success")

	r.Reset()
	r.Resolve(Left)
	r.Resolve(Left)
	assert.True(t, r.BeginSubmission(), "a new exhaustion after reset submits again")
}

func TestEmptyResultsNeverSubmit(t *testing.T) {
	r := New(nil)
	assert.Equal(t, Exhausted, r.Phase())
	assert.False(t, r.ShouldAutoSubmit())
	assert.False(t, r.BeginSubmission())
}

func TestRetryOnlyAfterFailure(t *testing.T) {
	r := New(items("A"))
	r.Resolve(Right)

	assert.False(t, r.BeginRetry(), "retry before any attempt")
	require.True(t, r.BeginSubmission())
	assert.False(t, r.BeginRetry(), "retry while in flight")

	require.True(t, r.CompleteSubmission(r.Generation(), false, "HTTP 500"))
	assert.Equal(t, Submission{Status: Failed, Err: "HTTP 500"}, r.Submission())

	require.True(t, r.BeginRetry())
	assert.Equal(t, InFlight, r.Submission().Status)
	require.True(t, r.CompleteSubmission(r.Generation(), true, ""))
	assert.Equal(t, Succeeded, r.Submission().Status)
}

func TestCompleteSubmissionDropsStaleGeneration(t *testing.T) {
	r := New(items("A"))
	r.Resolve(Right)
	r.BeginSubmission()
	gen := r.Generation()

	r.Reset()
	r.Resolve(Left)

	assert.False(t, r.CompleteSubmission(gen, true, ""))
	assert.Equal(t, NotStarted, r.Submission().Status)
}

func TestCompleteSubmissionDefaultMessage(t *testing.T) {
	r := New(items("A"))
	r.Resolve(Right)
	r.BeginSubmission()
	r.CompleteSubmission(r.Generation(), false, "")
	assert.NotEmpty(t, r.Submission().Err)
}

func TestUpcoming(t *testing.T) {
	r := New(items("A", "B", "C"))
	r.Resolve(Left)
	assert.Equal(t, []string{"B", "C"}, catalog.Names(r.Upcoming(5)))
	assert.Equal(t, []string{"B"}, catalog.Names(r.Upcoming(1)))
	assert.Equal(t, 2, r.Remaining())

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "B", cur.Name)
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		in   string
		want Verdict
		ok   bool
	}{
		{"r", Right, true},
		{"keep", Right, true},
		{"left", Left, true},
		{"kill", Left, true},
		{"u", Up, true},
		{"maybe", Up, true},
		{"down", NoVerdict, false},
	}
	for _, tt := range tests {
		got, ok := ParseVerdict(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVerdict(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
