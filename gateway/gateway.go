// ABOUTME: Uniform request gateway for the identity backend API
// ABOUTME: Attaches the session credential and normalizes every outcome into a Result

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds a call when no per-call timeout is given
const DefaultTimeout = 10 * time.Second

// TokenSource yields the current bearer credential, or empty when
// unauthenticated. Unauthenticated calls pass through without the header.
type TokenSource interface {
	Token() string
}

// Options carries optional per-call settings
type Options struct {
	Headers map[string]string
	Query   map[string]string
	Timeout time.Duration
}

// Result is the normalized outcome of a call. Exactly one of Data or Errors
// is meaningful depending on Success. Callers never receive a Go error from
// the gateway itself.
type Result struct {
	Success    bool
	Data       json.RawMessage
	Errors     []string
	StatusCode int
}

// Decode unmarshals the payload of a successful result into v
func (r Result) Decode(v any) error {
	if !r.Success {
		return errors.New("cannot decode a failed result")
	}
	if len(r.Data) == 0 {
		return errors.New("result has no payload")
	}
	return json.Unmarshal(r.Data, v)
}

// ErrorText joins the error list for display
func (r Result) ErrorText() string {
	if len(r.Errors) == 0 {
		return ""
	}
	out := r.Errors[0]
	for _, e := range r.Errors[1:] {
		out += ", " + e
	}
	return out
}

// Gateway issues requests against a single backend base URL
type Gateway struct {
	baseURL        string
	tokens         TokenSource
	client         *http.Client
	timeout        time.Duration
	onUnauthorized func()
}

// Option configures a Gateway
type Option func(*Gateway)

// WithHTTPClient overrides the underlying HTTP client (useful for testing)
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) { g.client = client }
}

// WithTimeout changes the default per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithUnauthorizedHook registers a callback invoked once for any response
// carrying status 401. The gateway performs no session handling itself; the
// application wiring subscribes teardown and navigation here.
func WithUnauthorizedHook(fn func()) Option {
	return func(g *Gateway) { g.onUnauthorized = fn }
}

// New creates a gateway for the given base URL. tokens may be nil for a
// purely anonymous client.
func New(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: baseURL,
		tokens:  tokens,
		client:  &http.Client{Transport: newTransport()},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Call issues a request and normalizes the outcome. Transport failures,
// non-2xx statuses, and payload-level error lists all surface as a Result
// with Success=false; nothing is thrown past this boundary. The body is
// ignored for GET and DELETE.
func (g *Gateway) Call(ctx context.Context, method, endpoint string, body any, opts *Options) Result {
	if opts == nil {
		opts = &Options{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = g.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var payload io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		// no request body
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				return transportFailure(fmt.Sprintf("failed to encode request body: %v", err))
			}
			payload = bytes.NewReader(raw)
		}
	default:
		return transportFailure(fmt.Sprintf("unsupported HTTP method: %s", method))
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, payload)
	if err != nil {
		return transportFailure(err.Error())
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if len(opts.Query) > 0 {
		q := req.URL.Query()
		for k, v := range opts.Query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	slog.Debug("Request started",
		"request_id", requestID,
		"method", method,
		"path", endpoint,
	)

	resp, err := g.client.Do(req)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		slog.Warn("Request failed",
			"request_id", requestID,
			"method", method,
			"path", endpoint,
			"error", msg,
		)
		return transportFailure(msg)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(fmt.Sprintf("failed to read response: %v", err))
	}

	result := normalize(resp.StatusCode, raw)

	slog.Info("Request completed",
		"request_id", requestID,
		"method", method,
		"path", endpoint,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	// A 401 anywhere means the session is no longer valid, not that this
	// particular request was invalid.
	if resp.StatusCode == http.StatusUnauthorized && g.onUnauthorized != nil {
		g.onUnauthorized()
	}

	return result
}

// Get issues a GET request
func (g *Gateway) Get(ctx context.Context, endpoint string, opts *Options) Result {
	return g.Call(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post issues a POST request
func (g *Gateway) Post(ctx context.Context, endpoint string, body any, opts *Options) Result {
	return g.Call(ctx, http.MethodPost, endpoint, body, opts)
}

// Put issues a PUT request
func (g *Gateway) Put(ctx context.Context, endpoint string, body any, opts *Options) Result {
	return g.Call(ctx, http.MethodPut, endpoint, body, opts)
}

// Patch issues a PATCH request
func (g *Gateway) Patch(ctx context.Context, endpoint string, body any, opts *Options) Result {
	return g.Call(ctx, http.MethodPatch, endpoint, body, opts)
}

// Delete issues a DELETE request
func (g *Gateway) Delete(ctx context.Context, endpoint string, opts *Options) Result {
	return g.Call(ctx, http.MethodDelete, endpoint, nil, opts)
}

// normalize maps an HTTP response onto the Result contract. A payload-level
// non-empty error list forces failure even on a 2xx status.
func normalize(status int, body []byte) Result {
	errList := extractErrors(body)

	if status >= 200 && status <= 299 {
		if len(errList) > 0 {
			return Result{Success: false, Errors: errList, StatusCode: status}
		}
		return Result{Success: true, Data: json.RawMessage(body), StatusCode: status}
	}

	msgs := errList
	if len(msgs) == 0 {
		if msg := gjson.GetBytes(body, "message"); msg.Type == gjson.String && msg.String() != "" {
			msgs = []string{msg.String()}
		} else {
			msgs = []string{"Server error"}
		}
	}
	return Result{Success: false, Errors: msgs, StatusCode: status}
}

// transportFailure builds the Result for failures with no backend response
func transportFailure(msg string) Result {
	if msg == "" {
		msg = "An unexpected error occurred"
	}
	return Result{
		Success:    false,
		Errors:     []string{msg},
		StatusCode: http.StatusInternalServerError,
	}
}

// extractErrors pulls a backend error list out of an arbitrary payload shape
func extractErrors(body []byte) []string {
	if !gjson.ValidBytes(body) {
		return nil
	}
	field := gjson.GetBytes(body, "error")
	if !field.Exists() {
		return nil
	}
	if field.IsArray() {
		var out []string
		for _, e := range field.Array() {
			if s := e.String(); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if field.Type == gjson.String && field.String() != "" {
		return []string{field.String()}
	}
	return nil
}
