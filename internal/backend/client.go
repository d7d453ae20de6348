// Package backend is the typed HTTP client for the store's backend API.
// All business logic (pricing, inventory, payment, shipping rates, real
// authentication) lives behind that API; this package only moves JSON
// across the boundary and translates failures into errors the rest of the
// application can show to the user.
package backend

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
)

// ErrNoToken is returned by authenticated calls when no bearer token was
// supplied. Callers catch this and redirect to the login page; the client
// itself never redirects.
var ErrNoToken = errors.New("no session token available")

// GenericFailureMessage is shown when the backend gives no usable message.
const GenericFailureMessage = "Terjadi kesalahan, silakan coba lagi"

// APIError carries a backend rejection (4xx/5xx). Message holds the
// backend's own message verbatim when the response body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the backend API at a configured base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend API client with a pooled transport and a
// request timeout, so a hung backend cannot pin a handler forever.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// envelope is the backend's standard response wrapper. Some endpoints
// (notably payment initiation) respond without it, so Data may be empty.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// request performs one JSON round trip. A non-empty token is attached as a
// bearer header; caller-supplied state is never mutated. On 4xx/5xx the
// body's message/error field becomes an *APIError.
func (c *Client) request(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to backend failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return apiErrorFromBody(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode backend response data: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// authed is request for endpoints that require a session. It fails before
// any network activity when the token is absent.
func (c *Client) authed(ctx context.Context, method, path, token string, in, out interface{}) error {
	if token == "" {
		return ErrNoToken
	}
	return c.request(ctx, method, path, token, in, out)
}

// apiErrorFromBody extracts the backend's message field, preferring
// "message" over "error", falling back to a generic localized string when
// the body is not JSON or carries neither.
func apiErrorFromBody(status int, raw []byte) *APIError {
	var env envelope
	msg := GenericFailureMessage
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			msg = env.Message
		} else if env.Error != "" {
			msg = env.Error
		}
	}
	return &APIError{Status: status, Message: msg}
}
