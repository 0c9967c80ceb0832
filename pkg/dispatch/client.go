// Package dispatch is the uniform request/response wrapper around the Aura
// reasoning endpoint, shared by the chat session and the selection capture
// path.
//
// Every call is a single independent exchange: no retries, no backoff, no
// caching. A failed call surfaces immediately to the caller as a structured
// *Error.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single exchange with the reasoning service.
const DefaultTimeout = 60 * time.Second

// ErrorKind classifies dispatch failures.
type ErrorKind int

const (
	// KindTransport covers network-level failures: unreachable host,
	// connection refused, timeout.
	KindTransport ErrorKind = iota
	// KindService covers reachable endpoints returning a non-success status.
	KindService
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a classified dispatch failure with a human-readable message
// suitable for rendering as an agent-sender turn.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status for service errors, 0 otherwise
}

func (e *Error) Error() string { return e.Message }

// transportMessage is the generic connectivity explanation shown to the user.
const transportMessage = "Could not reach the Aura service. Please check that it is running and try again."

// serviceFallbackMessage is used when an error response carries no detail.
const serviceFallbackMessage = "The Aura service reported an error while handling your request."

// request and response mirror the /handle wire contract.
type request struct {
	Text string `json:"text"`
}

type response struct {
	Response string `json:"response"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// Client performs exchanges with the reasoning endpoint. It is stateless
// with respect to prior calls and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a dispatch client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("dispatch: base URL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Send performs one POST /handle exchange and returns the service's reply
// text. Failures are returned as *Error: KindTransport when the endpoint
// cannot be reached, KindService when it responds with a non-success status.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(request{Text: text})
	if err != nil {
		return "", fmt.Errorf("dispatch: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/handle", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("dispatch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: transportMessage}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: transportMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{
			Kind:    KindService,
			Message: serviceErrorMessage(respBody),
			Status:  resp.StatusCode,
		}
	}

	var parsed response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &Error{Kind: KindService, Message: serviceFallbackMessage, Status: resp.StatusCode}
	}
	return parsed.Response, nil
}

// serviceErrorMessage extracts the structured detail from an error body,
// falling back to a generic message.
func serviceErrorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return serviceFallbackMessage
}
