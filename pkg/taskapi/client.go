package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. An empty string means
// no authenticated session; the request is then sent without an
// Authorization header.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed token. Useful for tests
// and one-shot scripts.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Request describes one API call.
type Request struct {
	// Path is appended to the configured base URL, e.g. "/tasks".
	Path string

	// Method defaults to GET when empty.
	Method string

	// Body, when non-nil, is serialized to JSON.
	Body any

	// Header holds extra headers. They are applied last and may
	// override the defaults, including Authorization.
	Header http.Header
}

// Client executes API calls against the taskdeck server. All requests
// made by the higher-level wrappers pass through Do, which attaches
// auth, parses responses, and normalizes failures into *Error.
//
// The client performs no retries and no caching: each call is a single
// best-effort round trip.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// New creates an API client. tokens may be nil, in which case every
// request is unauthenticated.
func New(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		logger:     logger.With("component", "taskapi"),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Do executes a single request and returns the parsed response body.
// The result is nil when the response body was empty or not valid
// JSON; a non-JSON body on a 2xx response is not an error.
//
// Any failure — server-reported or transport-level — is returned as a
// *Error.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + req.Path
	logger := c.logger.With("method", method, "url", url)

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		logger.Debug("request body", "body", string(data))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	// Caller headers win, including Authorization.
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	logger.Debug("sending request", "request_id", httpReq.Header.Get("X-Request-ID"))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Debug("transport failure", "error", err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("read failure", "error", err)
		return nil, transportError(fmt.Errorf("read response: %w", err))
	}

	logger.Debug("response", "status", resp.StatusCode, "bytes", len(respBody))

	// Empty or malformed bodies are treated as absent. Only the status
	// code decides success or failure.
	var parsed json.RawMessage
	if len(respBody) > 0 && json.Valid(respBody) {
		parsed = json.RawMessage(respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, parsed)
		logger.Debug("API error", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	return parsed, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Path: path})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Path: path, Method: http.MethodPost, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Path: path, Method: http.MethodPut, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, Request{Path: path, Method: http.MethodDelete})
	return err
}

// unmarshalInto decodes a response payload into v. A nil payload
// leaves v at its zero value.
func unmarshalInto(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
