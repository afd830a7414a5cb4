package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/catalog"
	"github.com/berth-dev/swipe/internal/config"
	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/survey"
)

// ErrInFlight is reported when a submission overlaps one still running.
var ErrInFlight = errors.New("submission already in progress")

// maxErrorBody caps how much of a failed response is echoed to the user.
const maxErrorBody = 512

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is what the UI shows after an attempt.
type Result struct {
	Success bool
	Error   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithEvents sets the sink for survey events, including locally kept results.
func WithEvents(s swipelog.Sink) Option {
	return func(c *Client) { c.events = s }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithSessionIDs overrides session id generation.
func WithSessionIDs(gen func() string) Option {
	return func(c *Client) { c.newID = gen }
}

// WithUserAgent sets the user agent reported in payloads and requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// DefaultUserAgent describes this client build.
func DefaultUserAgent(version string) string {
	return fmt.Sprintf("swipe/%s (%s; %s)", version, runtime.GOOS, runtime.GOARCH)
}

// Client sends results to the endpoint chosen by config.Resolve. At most
// one Submit runs at a time.
type Client struct {
	cfg       config.Resolved
	http      Doer
	events    swipelog.Sink
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
	userAgent string

	inFlight atomic.Bool
}

// New creates a Client for a resolved endpoint configuration.
func New(cfg config.Resolved, opts ...Option) *Client {
	c := &Client{
		cfg:       cfg,
		http:      &http.Client{},
		events:    swipelog.Discard,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		userAgent: DefaultUserAgent("dev"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns where results are sent.
func (c *Client) Mode() config.Mode { return c.cfg.Mode }

// Config returns the resolved endpoint configuration.
func (c *Client) Config() config.Resolved { return c.cfg }

// InFlight reports whether a submission is running.
func (c *Client) InFlight() bool { return c.inFlight.Load() }

// BuildPayload captures the buckets, the elapsed time since startedAt and
// a fresh session id.
func (c *Client) BuildPayload(b survey.Buckets, startedAt time.Time) Payload {
	now := c.now()
	return Payload{
		Timestamp: now.UTC(),
		SessionID: c.newID(),
		Kept:      catalog.Names(b.Kept),
		Killed:    catalog.Names(b.Killed),
		Skipped:   catalog.Names(b.Maybe),
		TotalTime: elapsedSeconds(startedAt, now),
		UserAgent: c.userAgent,
	}
}

// Submit delivers p. With sending disabled it only records p locally and
// succeeds. Failures are returned in Result, never as a panic.
func (c *Client) Submit(ctx context.Context, p Payload) Result {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{Error: ErrInFlight.Error()}
	}
	defer c.inFlight.Store(false)

	if !c.cfg.Enabled() {
		c.keepLocally(p)
		return Result{Success: true}
	}

	c.record(swipelog.LogEvent{
		Event:     swipelog.EventSubmissionStarted,
		SessionID: p.SessionID,
		Summary:   p.Summary(),
		Mode:      c.cfg.Mode.String(),
	})

	start := time.Now()
	var err error
	switch c.cfg.Mode {
	case config.Webhook:
		err = c.postWebhook(ctx, p)
	case config.Sheets:
		err = c.appendRow(ctx, p)
	}

	if err != nil {
		c.logger.Warn("submission failed",
			zap.String("mode", c.cfg.Mode.String()),
			zap.String("session", p.SessionID),
			zap.Error(err))
		c.record(swipelog.LogEvent{
			Event:      swipelog.EventSubmissionFailed,
			SessionID:  p.SessionID,
			Mode:       c.cfg.Mode.String(),
			Error:      err.Error(),
			DurationMs: time.Since(start).Milliseconds(),
		})
		return Result{Error: err.Error()}
	}

	c.logger.Info("submission delivered",
		zap.String("mode", c.cfg.Mode.String()),
		zap.String("session", p.SessionID),
		zap.String("summary", p.Summary()))
	c.record(swipelog.LogEvent{
		Event:      swipelog.EventSubmissionSucceeded,
		SessionID:  p.SessionID,
		Summary:    p.Summary(),
		Mode:       c.cfg.Mode.String(),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return Result{Success: true}
}

// keepLocally is the disabled-endpoint path: the payload goes to the event
// log and the diagnostic logger instead of the network.
func (c *Client) keepLocally(p Payload) {
	c.logger.Info("survey results (endpoint disabled)",
		zap.String("reason", c.cfg.Reason),
		zap.String("session", p.SessionID),
		zap.Strings("kept", p.Kept),
		zap.Strings("killed", p.Killed),
		zap.Strings("skipped", p.Skipped),
		zap.Int("total_time", p.TotalTime))
	c.record(swipelog.LogEvent{
		Event:     swipelog.EventSubmissionLogged,
		SessionID: p.SessionID,
		Summary:   p.Summary(),
		Mode:      c.cfg.Mode.String(),
		Reason:    c.cfg.Reason,
		Data: map[string]any{
			"row": p.Row(),
		},
	})
}

func (c *Client) record(e swipelog.LogEvent) {
	if err := c.events.Append(e); err != nil {
		c.logger.Debug("event log append failed", zap.Error(err))
	}
}

// webhookReply is the endpoint's answer to a webhook post.
type webhookReply struct {
	Success *bool  `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) postWebhook(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p.Body())
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	status, respBody, err := c.send(ctx, http.MethodPost, c.cfg.EndpointURL, body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("endpoint returned HTTP %d: %s", status, truncate(respBody))
	}

	var reply webhookReply
	if err := json.Unmarshal(respBody, &reply); err != nil || reply.Success == nil {
		return fmt.Errorf("malformed response from endpoint: %s", truncate(respBody))
	}
	if !*reply.Success {
		if reply.Error != "" {
			return fmt.Errorf("endpoint reported failure: %s", reply.Error)
		}
		return errors.New("endpoint reported failure")
	}
	return nil
}

// valuesRequest is the Sheets values API request body.
type valuesRequest struct {
	Values [][]string `json:"values"`
}

func (c *Client) appendRow(ctx context.Context, p Payload) error {
	body, err := json.Marshal(valuesRequest{Values: [][]string{p.Row()}})
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	status, respBody, err := c.send(ctx, http.MethodPost, c.sheetsURL(c.cfg.SheetsRange, ":append"), body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("failed to submit to Google Sheets: %d %s. %s",
			status, http.StatusText(status), truncate(respBody))
	}
	return nil
}

// CreateHeaders writes Header into the first row of the sheet. Only the
// Sheets mode talks to the network; other modes log the header row.
func (c *Client) CreateHeaders(ctx context.Context) Result {
	if c.cfg.Mode != config.Sheets {
		c.logger.Info("header row (not sent)",
			zap.String("mode", c.cfg.Mode.String()),
			zap.Strings("headers", Header))
		return Result{Success: true}
	}

	body, err := json.Marshal(valuesRequest{Values: [][]string{Header}})
	if err != nil {
		return Result{Error: fmt.Sprintf("marshal headers: %v", err)}
	}

	status, respBody, err := c.send(ctx, http.MethodPut, c.sheetsURL(headerRange(c.cfg.SheetsRange), ""), body)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if status < 200 || status > 299 {
		return Result{Error: fmt.Sprintf("failed to create headers: %d %s", status, truncate(respBody))}
	}

	c.record(swipelog.LogEvent{Event: swipelog.EventHeadersCreated, Mode: c.cfg.Mode.String()})
	return Result{Success: true}
}

func (c *Client) sheetsURL(rng, suffix string) string {
	q := url.Values{}
	q.Set("valueInputOption", "RAW")
	q.Set("key", c.cfg.APIKey)
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s%s?%s",
		c.cfg.SheetsBaseURL,
		url.PathEscape(c.cfg.SpreadsheetID),
		url.PathEscape(rng),
		suffix,
		q.Encode())
}

// headerRange turns "Sheet1!A:H" into "Sheet1!A1:H1".
func headerRange(rng string) string {
	sheet := "Sheet1"
	if i := strings.Index(rng, "!"); i > 0 {
		sheet = rng[:i]
	}
	return sheet + "!A1:H1"
}

func (c *Client) send(ctx context.Context, method, target string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}
