// Package api provides the REST client for the DataBot backend. It is the
// single point of outbound HTTP communication: it attaches the bearer token
// to every request, normalizes the backend's response envelopes, and turns
// failures into typed errors. It never retries; surfacing an error and
// deciding whether to re-invoke the action is the caller's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:3000/api"

// Client talks to the DataBot backend under the /api base path.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	token          func() string
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the function the client reads the bearer token from.
// It is called at request-send time, so a token cleared by a concurrent 401
// is simply absent from later requests.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithUnauthorizedHandler sets the hook invoked once per 401 response,
// before the typed error is returned. The hook must be idempotent: two
// overlapping requests can both come back 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a backend client. If baseURL is empty, DATABOT_API_URL is
// consulted before falling back to localhost. The timeout can be set via
// DATABOT_CLIENT_TIMEOUT (uploads of large document batches take a while).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("DATABOT_API_URL")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("DATABOT_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the normalized backend response shape. Most operations nest
// their payload under data; a few put siblings beside it (total for
// paginated lists, usage for the stats snapshot, per-file results for
// uploads, tenant and token for auth).
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Total    int             `json:"total"`
	Tenant   json.RawMessage `json:"tenant,omitempty"`
	Token    string          `json:"token,omitempty"`
	Usage    json.RawMessage `json:"usage,omitempty"`
	Sessions json.RawMessage `json:"sessions,omitempty"`
	Messages json.RawMessage `json:"messages,omitempty"`
	Results  json.RawMessage `json:"results,omitempty"`
	Errors   json.RawMessage `json:"errors,omitempty"`
	Uploaded int             `json:"uploaded"`
	Failed   int             `json:"failed"`
	Error    string          `json:"error,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// do executes one JSON request against the backend and decodes the envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	c.logger.Debug("request completed",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds(),
	)

	return c.decode(resp)
}

// authorize attaches the bearer token, read at send time.
func (c *Client) authorize(req *http.Request) {
	if c.token == nil {
		return
	}
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

// decode reads the response body and converts non-2xx statuses into typed
// errors. Every 401, including one from a request that was already in
// flight when the session was cleared, fires the unauthorized hook exactly
// once.
func (c *Client) decode(resp *http.Response) (*envelope, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the status code still drives
		// the error path below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	return &env, nil
}

// unmarshal decodes a raw envelope field into out, treating an absent
// field as an empty value.
func unmarshal(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response data: %w", err)
	}
	return nil
}
