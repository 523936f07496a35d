// Package api is the REST client for the workout-logging backend. All
// authenticated traffic flows through Client.do, which attaches the bearer
// header from the session gate and routes every observed 401 back to it.
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

	"liftlog/internal/logger"
	"liftlog/internal/session"
)

// ErrUnauthorized is returned for any HTTP 401. By the time the caller sees
// it the session gate has already been notified; callers must stop
// processing and must not surface it as a generic request error.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-401 failure response from the backend.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	gate       *session.Gate
}

func NewClient(baseURL string, gate *session.Gate) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		gate: gate,
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// Gate exposes the session gate so callers can react to expiry.
func (c *Client) Gate() *session.Gate {
	return c.gate
}

// do issues one JSON request. On 2xx the body (if any) is decoded into out.
// On 401 the gate is notified and ErrUnauthorized returned; no decoding or
// other processing happens past that point.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, out)
}

// decorate attaches the auth header and a request id for log correlation.
func (c *Client) decorate(req *http.Request) {
	for k, v := range c.gate.AuthHeader() {
		req.Header.Set(k, v)
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)
	logger.Debug("api request", "id", reqID, "method", req.Method, "path", req.URL.Path)
}

func (c *Client) handleResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.gate.HandleUnauthorized()
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError extracts the backend's {"detail": ...} message when present,
// falling back to the raw body.
func decodeError(status int, data []byte) *Error {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return &Error{Status: status, Detail: body.Detail}
	}
	detail := strings.TrimSpace(string(data))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return &Error{Status: status, Detail: detail}
}
