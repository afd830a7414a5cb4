package survey

import (
	"time"

	"github.com/berth-dev/swipe/internal/catalog"
)

// Phase is the coarse state of a session.
type Phase int

const (
	Active    Phase = iota // cards remain
	Exhausted              // every card has a verdict
)

// SubmissionStatus tracks delivery of the final results.
type SubmissionStatus int

const (
	NotStarted SubmissionStatus = iota
	InFlight
	Succeeded
	Failed
)

// String returns a lowercase status name.
func (s SubmissionStatus) String() string {
	switch s {
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "not_started"
	}
}

// Submission is the status of the result upload plus the failure message.
type Submission struct {
	Status SubmissionStatus
	Err    string
}

// Buckets are the three insertion-ordered result sequences.
type Buckets struct {
	Kept   []catalog.Item
	Killed []catalog.Item
	Maybe  []catalog.Item
}

// Len returns the number of classified items.
func (b Buckets) Len() int {
	return len(b.Kept) + len(b.Killed) + len(b.Maybe)
}

// State is a read-only snapshot of a session.
type State struct {
	Position   int
	Total      int
	Buckets    Buckets
	Pending    Verdict
	StartedAt  time.Time
	Submission Submission
	Generation int
}

// Phase derives Active or Exhausted from the position.
func (s State) Phase() Phase {
	if s.Position >= s.Total {
		return Exhausted
	}
	return Active
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithClock overrides the time source used for session start times.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) {
		r.now = now
	}
}

// Reducer is the only mutator of session state. It is not safe for
// concurrent use; the UI event loop owns it.
type Reducer struct {
	items []catalog.Item
	now   func() time.Time

	position   int
	buckets    Buckets
	pending    Verdict
	startedAt  time.Time
	submission Submission
	generation int
}

// New creates a reducer over items, starting a fresh session.
func New(items []catalog.Item, opts ...Option) *Reducer {
	r := &Reducer{
		items: append([]catalog.Item(nil), items...),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.startedAt = r.now()
	return r
}

// Resolve records verdict v for the current card and advances by one.
// It returns false, changing nothing, once the catalog is exhausted or
// when v is not a swipe direction.
func (r *Reducer) Resolve(v Verdict) bool {
	if r.position >= len(r.items) || !v.Valid() {
		return false
	}
	item := r.items[r.position]
	switch v {
	case Right:
		r.buckets.Kept = append(r.buckets.Kept, item)
	case Left:
		r.buckets.Killed = append(r.buckets.Killed, item)
	case Up:
		r.buckets.Maybe = append(r.buckets.Maybe, item)
	}
	r.position++
	r.pending = NoVerdict
	return true
}

// TriggerExternal marks v as pending for the current card. The buckets
// change only when the card reports its resolution through Resolve.
// Returns false if a verdict is already pending or no card remains.
func (r *Reducer) TriggerExternal(v Verdict) bool {
	if r.pending != NoVerdict || r.position >= len(r.items) || !v.Valid() {
		return false
	}
	r.pending = v
	return true
}

// Reset starts a new session over the same items.
func (r *Reducer) Reset() {
	r.position = 0
	r.buckets = Buckets{}
	r.pending = NoVerdict
	r.startedAt = r.now()
	r.submission = Submission{}
	r.generation++
}

// Pending returns the verdict awaiting resolution, or NoVerdict.
func (r *Reducer) Pending() Verdict { return r.pending }

// Position returns the index of the current card.
func (r *Reducer) Position() int { return r.position }

// Total returns the catalog size.
func (r *Reducer) Total() int { return len(r.items) }

// Remaining returns how many cards are still undecided.
func (r *Reducer) Remaining() int { return len(r.items) - r.position }

// Phase reports whether cards remain.
func (r *Reducer) Phase() Phase {
	if r.position >= len(r.items) {
		return Exhausted
	}
	return Active
}

// Current returns the top card, or false once exhausted.
func (r *Reducer) Current() (catalog.Item, bool) {
	if r.position >= len(r.items) {
		return catalog.Item{}, false
	}
	return r.items[r.position], true
}

// Upcoming returns up to n undecided items starting at the current card.
func (r *Reducer) Upcoming(n int) []catalog.Item {
	end := r.position + n
	if end > len(r.items) {
		end = len(r.items)
	}
	return append([]catalog.Item(nil), r.items[r.position:end]...)
}

// Generation identifies the current session; it changes on every Reset.
func (r *Reducer) Generation() int { return r.generation }

// StartedAt returns when the current session began.
func (r *Reducer) StartedAt() time.Time { return r.startedAt }

// Submission returns the upload status.
func (r *Reducer) Submission() Submission { return r.submission }

// Buckets returns copies of the three result sequences.
func (r *Reducer) Buckets() Buckets {
	return Buckets{
		Kept:   append([]catalog.Item(nil), r.buckets.Kept...),
		Killed: append([]catalog.Item(nil), r.buckets.Killed...),
		Maybe:  append([]catalog.Item(nil), r.buckets.Maybe...),
	}
}

// Snapshot returns the full session state.
func (r *Reducer) Snapshot() State {
	return State{
		Position:   r.position,
		Total:      len(r.items),
		Buckets:    r.Buckets(),
		Pending:    r.pending,
		StartedAt:  r.startedAt,
		Submission: r.submission,
		Generation: r.generation,
	}
}

// ShouldAutoSubmit reports whether the automatic upload should fire:
// the session is exhausted, has results, and nothing was attempted yet.
func (r *Reducer) ShouldAutoSubmit() bool {
	return r.Phase() == Exhausted &&
		r.buckets.Len() > 0 &&
		r.submission.Status == NotStarted
}

// BeginSubmission moves NotStarted to InFlight for an exhausted session.
func (r *Reducer) BeginSubmission() bool {
	if !r.ShouldAutoSubmit() {
		return false
	}
	r.submission = Submission{Status: InFlight}
	return true
}

// BeginRetry moves Failed back to InFlight.
func (r *Reducer) BeginRetry() bool {
	if r.submission.Status != Failed {
		return false
	}
	r.submission = Submission{Status: InFlight}
	return true
}

// CompleteSubmission records the upload outcome. Completions from an
// earlier generation, or when no upload is in flight, are dropped.
func (r *Reducer) CompleteSubmission(generation int, ok bool, errMsg string) bool {
	if generation != r.generation || r.submission.Status != InFlight {
		return false
	}
	if ok {
		r.submission = Submission{Status: Succeeded}
		return true
	}
	if errMsg == "" {
		errMsg = "Failed to submit results"
	}
	r.submission = Submission{Status: Failed, Err: errMsg}
	return true
}
