package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultEndpoint is the hosted form relay the site posts to when nothing is
// configured.
const DefaultEndpoint = "https://formspree.io/f/xlgjpaep"

// maxResponseBody caps how much of a relay response is read.
const maxResponseBody = 1 << 20

// Payload is the flat JSON object posted to the relay.
type Payload map[string]string

// Receipt describes an accepted submission.
type Receipt struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Next   string `json:"next,omitempty"`
}

// Sender delivers a payload to a relay. Client implements it; tests stub it.
type Sender interface {
	Send(ctx context.Context, payload Payload) (Receipt, error)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the logger used for submission outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder registers a recorder notified after every attempt.
func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.recorders = append(c.recorders, recorder)
		}
	}
}

// WithHiddenFields adds fields merged into every payload. Payload values win
// on name collisions.
func WithHiddenFields(fields ...HiddenField) Option {
	return func(c *Client) {
		c.hidden = append(c.hidden, fields...)
	}
}

// Client posts JSON payloads to a form relay endpoint. A single call sends a
// single request: there is no retry and no queueing.
type Client struct {
	endpoint  string
	http      *http.Client
	logger    *zap.Logger
	recorders []Recorder
	hidden    []HiddenField
	now       func() time.Time
}

// New constructs a Client for endpoint, falling back to DefaultEndpoint.
func New(endpoint string, options ...Option) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Endpoint reports the configured relay URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts payload. Any 2xx status is a success; other statuses return a
// *SubmitError wrapping ErrRejected and transport failures wrap
// ErrUnavailable.
func (c *Client) Send(ctx context.Context, payload Payload) (Receipt, error) {
	attempt := Attempt{
		ID:       uuid.NewString(),
		Endpoint: c.endpoint,
		Subject:  payload["_subject"],
		Fields:   len(payload),
		At:       c.now(),
	}

	receipt, err := c.send(ctx, attempt.ID, c.body(payload))
	attempt.Status = receipt.Status
	attempt.Duration = c.now().Sub(attempt.At)
	if err != nil {
		attempt.Err = err.Error()
		c.logger.Warn("relay submission failed",
			zap.String("attempt", attempt.ID),
			zap.Int("status", receipt.Status),
			zap.Error(err),
		)
	} else {
		c.logger.Info("relay submission accepted",
			zap.String("attempt", attempt.ID),
			zap.Int("status", receipt.Status),
			zap.Duration("duration", attempt.Duration),
		)
	}

	for _, recorder := range c.recorders {
		if recErr := recorder.Record(ctx, attempt); recErr != nil {
			c.logger.Debug("relay recorder failed", zap.String("attempt", attempt.ID), zap.Error(recErr))
		}
	}
	return receipt, err
}

func (c *Client) body(payload Payload) map[string]string {
	merged := MergeHiddenFields(nil, c.hidden...)
	if merged == nil {
		merged = make(map[string]string, len(payload))
	}
	for key, value := range payload {
		merged[key] = value
	}
	return merged
}

func (c *Client) send(ctx context.Context, id string, body map[string]string) (Receipt, error) {
	receipt := Receipt{ID: id}

	encoded, err := json.Marshal(body)
	if err != nil {
		return receipt, fmt.Errorf("relay: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return receipt, fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return receipt, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	receipt.Status = resp.StatusCode
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var ok struct {
			Next string `json:"next"`
		}
		if len(raw) > 0 && json.Unmarshal(raw, &ok) == nil {
			receipt.Next = ok.Next
		}
		return receipt, nil
	}

	mapping := DecodeErrorBody(raw)
	return receipt, &SubmitError{
		Status:   resp.StatusCode,
		Messages: mapping.Messages(),
		Fields:   mapping.Fields,
	}
}
