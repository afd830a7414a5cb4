// Package session provides SQLite-backed persistence for collected survey
// submissions.
package session

import "time"

// Bucket names stored per verdict row.
const (
	BucketKept   = "kept"
	BucketKilled = "killed"
	BucketMaybe  = "maybe"
)

// Submission is one session's results as received by the collector.
type Submission struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	SubmittedAt time.Time `json:"submittedAt"` // client timestamp, zero if unparseable
	ReceivedAt  time.Time `json:"receivedAt"`
	TotalTime   int       `json:"totalTime"` // seconds
	Summary     string    `json:"summary"`
	UserAgent   string    `json:"userAgent,omitempty"`
	Remote      string    `json:"remote,omitempty"`
	Kept        []string  `json:"kept"`
	Killed      []string  `json:"killed"`
	Maybe       []string  `json:"maybe"`
}

// Summary provides a high-level view of a submission for listing.
type Summary struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Summary    string    `json:"summary"`
	TotalTime  int       `json:"totalTime"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Tally counts the verdicts one item received across all submissions.
type Tally struct {
	Item   string `json:"item"`
	Kept   int    `json:"kept"`
	Killed int    `json:"killed"`
	Maybe  int    `json:"maybe"`
}

// Total returns how many submissions classified the item.
func (t Tally) Total() int {
	return t.Kept + t.Killed + t.Maybe
}
