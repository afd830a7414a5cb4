package submit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/berth-dev/swipe/internal/catalog"
	"github.com/berth-dev/swipe/internal/config"
	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/survey"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingDoer fails the test run if the network is touched.
type countingDoer struct {
	calls atomic.Int32
}

func (d *countingDoer) Do(*http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return nil, errors.New("network must not be used")
}

// memorySink collects events in memory.
type memorySink struct {
	mu     sync.Mutex
	events []swipelog.LogEvent
}

func (s *memorySink) Append(e swipelog.LogEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *memorySink) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		out = append(out, e.Event)
	}
	return out
}

func samplePayload() Payload {
	return Payload{
		Timestamp: time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC),
		SessionID: "sess-1",
		Kept:      []string{"A", "D"},
		Killed:    []string{"B"},
		Skipped:   []string{"C"},
		TotalTime: 42,
		UserAgent: "swipe/test",
	}
}

func TestDisabledSubmitNeverUsesNetwork(t *testing.T) {
	doer := &countingDoer{}
	sink := &memorySink{}
	c := New(config.Resolved{Mode: config.Disabled, Reason: "not configured"},
		WithHTTPClient(doer), WithEvents(sink))

	combos := []Payload{
		{Kept: []string{"A"}},
		{Killed: []string{"A", "B"}},
		{Skipped: []string{"A"}},
		samplePayload(),
	}
	for _, p := range combos {
		res := c.Submit(context.Background(), p)
		assert.Equal(t, Result{Success: true}, res)
	}

	assert.Equal(t, int32(0), doer.calls.Load())
	require.Len(t, sink.events, len(combos))
	last := sink.events[len(sink.events)-1]
	assert.Equal(t, swipelog.EventSubmissionLogged, last.Event)
	assert.Equal(t, "2/1/1", last.Summary)
	assert.Equal(t, "not configured", last.Reason)
}

func TestWebhookSuccess(t *testing.T) {
	var got Body
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotUA = r.Header.Get("User-Agent")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	sink := &memorySink{}
	c := New(config.Resolved{Mode: config.Webhook, EndpointURL: srv.URL},
		WithHTTPClient(srv.Client()), WithEvents(sink), WithUserAgent("swipe/test"))

	res := c.Submit(context.Background(), samplePayload())
	require.True(t, res.Success, res.Error)

	assert.Equal(t, "2026-03-04T05:06:07.890Z", got.Timestamp)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, "A, D", got.KeptWebsites)
	assert.Equal(t, "B", got.KilledWebsites)
	assert.Equal(t, "C", got.SkippedWebsites)
	assert.Equal(t, "42", got.TotalTime)
	assert.Equal(t, "2/1/1", got.Summary)
	assert.Equal(t, "swipe/test", got.UserAgent)
	assert.Equal(t, "swipe/test", gotUA)
	assert.Equal(t, []string{swipelog.EventSubmissionStarted, swipelog.EventSubmissionSucceeded}, sink.kinds())
}

func TestWebhookFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "HTTP 500"},
		{"success false", http.StatusOK, `{"success":false,"error":"sheet locked"}`, "sheet locked"},
		{"success false without message", http.StatusOK, `{"success":false}`, "endpoint reported failure"},
		{"not json", http.StatusOK, `<html>`, "malformed response"},
		{"missing flag", http.StatusOK, `{}`, "malformed response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := New(config.Resolved{Mode: config.Webhook, EndpointURL: srv.URL}, WithHTTPClient(srv.Client()))
			res := c.Submit(context.Background(), samplePayload())
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			assert.Contains(t, res.Error, tt.wantErr)
		})
	}
}

func TestRetryResendsEquivalentPayload(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []Body
		fail   = true
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b Body
		_ = json.NewDecoder(r.Body).Decode(&b)
		mu.Lock()
		defer mu.Unlock()
		bodies = append(bodies, b)
		if fail {
			fail = false
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := New(config.Resolved{Mode: config.Webhook, EndpointURL: srv.URL}, WithHTTPClient(srv.Client()))
	p := samplePayload()

	first := c.Submit(context.Background(), p)
	require.False(t, first.Success)
	second := c.Submit(context.Background(), p)
	require.True(t, second.Success, second.Error)

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(config.Resolved{Mode: config.Webhook, EndpointURL: url}, WithHTTPClient(srv.Client()))
	res := c.Submit(context.Background(), samplePayload())
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "execute request")
}

func TestSheetsAppend(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotRows  valuesRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotRows))
		_, _ = io.WriteString(w, `{"updates":{"updatedRows":1}}`)
	}))
	defer srv.Close()

	c := New(config.Resolved{
		Mode:          config.Sheets,
		APIKey:        "k3y",
		SpreadsheetID: "sheet-1",
		SheetsRange:   "Sheet1!A:H",
		SheetsBaseURL: srv.URL,
	}, WithHTTPClient(srv.Client()))

	res := c.Submit(context.Background(), samplePayload())
	require.True(t, res.Success, res.Error)

	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Sheet1!A:H:append", gotPath)
	assert.Contains(t, gotQuery, "valueInputOption=RAW")
	assert.Contains(t, gotQuery, "key=k3y")
	require.Len(t, gotRows.Values, 1)
	assert.Equal(t, samplePayload().Row(), gotRows.Values[0])
}

func TestSheetsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer srv.Close()

	c := New(config.Resolved{
		Mode: config.Sheets, APIKey: "k", SpreadsheetID: "s",
		SheetsRange: "Sheet1!A:H", SheetsBaseURL: srv.URL,
	}, WithHTTPClient(srv.Client()))

	res := c.Submit(context.Background(), samplePayload())
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "403")
	assert.Contains(t, res.Error, "API key not valid")
}

// blockingDoer holds a request until released.
type blockingDoer struct {
	started chan struct{}
	release chan struct{}
}

func (d *blockingDoer) Do(*http.Request) (*http.Response, error) {
	close(d.started)
	<-d.release
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"success":true}`)),
	}, nil
}

func TestOverlappingSubmitIsRejected(t *testing.T) {
	doer := &blockingDoer{started: make(chan struct{}), release: make(chan struct{})}
	c := New(config.Resolved{Mode: config.Webhook, EndpointURL: "http://collector.invalid/append"},
		WithHTTPClient(doer))

	done := make(chan Result)
	go func() {
		done <- c.Submit(context.Background(), samplePayload())
	}()

	<-doer.started
	assert.True(t, c.InFlight())
	overlap := c.Submit(context.Background(), samplePayload())
	assert.False(t, overlap.Success)
	assert.Equal(t, ErrInFlight.Error(), overlap.Error)

	close(doer.release)
	first := <-done
	assert.True(t, first.Success)
	assert.False(t, c.InFlight())
}

func TestBuildPayload(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start.Add(61*time.Second + 600*time.Millisecond)
	c := New(config.Resolved{},
		WithClock(func() time.Time { return now }),
		WithSessionIDs(func() string { return "fixed" }),
		WithUserAgent("ua"))

	b := survey.Buckets{
		Kept:   []catalog.Item{{ID: 1, Name: "A"}},
		Killed: []catalog.Item{{ID: 2, Name: "B"}},
		Maybe:  []catalog.Item{{ID: 3, Name: "C"}},
	}
	p := c.BuildPayload(b, start)

	assert.Equal(t, 62, p.TotalTime, "elapsed time rounds to whole seconds")
	assert.Equal(t, "fixed", p.SessionID)
	assert.Equal(t, "1/1/1", p.Summary())
	assert.Equal(t, []string{"A"}, p.Kept)
	assert.Equal(t, []string{"C"}, p.Skipped)
	assert.Equal(t, "ua", p.UserAgent)
	assert.Equal(t, now.UTC(), p.Timestamp)
}

func TestDefaultSessionIDsAreUnique(t *testing.T) {
	c := New(config.Resolved{})
	a := c.BuildPayload(survey.Buckets{}, time.Now())
	b := c.BuildPayload(survey.Buckets{}, time.Now())
	assert.NotEmpty(t, a.SessionID)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestCreateHeaders(t *testing.T) {
	var gotPath, gotMethod string
	var gotRows valuesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotRows)
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := New(config.Resolved{
		Mode: config.Sheets, APIKey: "k", SpreadsheetID: "s",
		SheetsRange: "Votes!A:H", SheetsBaseURL: srv.URL,
	}, WithHTTPClient(srv.Client()))

	res := c.CreateHeaders(context.Background())
	require.True(t, res.Success, res.Error)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/v4/spreadsheets/s/values/Votes!A1:H1", gotPath)
	require.Len(t, gotRows.Values, 1)
	assert.Equal(t, Header, gotRows.Values[0])

	disabled := New(config.Resolved{}, WithHTTPClient(&countingDoer{}))
	assert.True(t, disabled.CreateHeaders(context.Background()).Success)
}
