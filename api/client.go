package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoResponse is returned when the transport produced no HTTP
	// response at all (DNS failure, refused connection, timeout).
	ErrNoResponse = errors.New("no response received")
	// ErrBadEnvelope is returned when a 2xx response does not match the
	// {success, message?, data} contract or reports success=false.
	ErrBadEnvelope = errors.New("malformed response envelope")
)

// StatusError carries a non-2xx HTTP status and the server's message, if
// the error body held one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Config configures a [Client].
//
// Config instances are intended to be set up during initialization and then
// treated as immutable.
type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:5000/api".
	BaseURL string
	// HTTPClient overrides the transport. Nil selects a client with a
	// 15 second timeout.
	HTTPClient *http.Client
	// TokenSource returns the current bearer token, or "" when no session
	// is active. Called once per request.
	TokenSource func(ctx context.Context) string
}

// Client is the admin console backend client. Safe for concurrent use
// after construction; SetUnauthorizedHandler must be called before the
// first request.
type Client struct {
	baseURL        string
	http           *http.Client
	tokenSource    func(ctx context.Context) string
	onUnauthorized func()
}

// NewClient creates a [Client] for the given backend.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        httpClient,
		tokenSource: cfg.TokenSource,
	}
}

// SetUnauthorizedHandler installs the hook invoked on any 401 response.
// The session store uses it to force a logout, mirroring the console's
// response interceptor.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// envelope is the uniform backend response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Pagination is the list-endpoint page block nested inside data.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// request performs one round trip and returns the raw body and status.
// All error paths that never reached the server collapse into
// [ErrNoResponse]; status handling is the caller's concern.
func (c *Client) request(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokenSource != nil {
		if token := c.tokenSource(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}

	return raw, resp.StatusCode, nil
}

// do performs a round trip, enforces the envelope contract, and decodes
// data into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, status, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}

	// Auth endpoints are exempt from the force-logout hook: a rejected
	// login or refresh must surface as its own error, not tear down the
	// session that is being established.
	if status == http.StatusUnauthorized && !strings.HasPrefix(path, "/auth/") {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	if status < 200 || status >= 300 {
		return &StatusError{StatusCode: status, Message: serverMessage(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("%w: %s", ErrBadEnvelope, env.Message)
		}
		return ErrBadEnvelope
	}
	if out != nil {
		if env.Data == nil {
			return ErrBadEnvelope
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}
	}

	return nil
}

// serverMessage extracts the message field from an error body, tolerating
// bodies that are not envelopes at all.
func serverMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Message
}
