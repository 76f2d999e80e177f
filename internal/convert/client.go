package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"web2pdf/internal/domain"
)

// ConvertPath is the backend route that turns a URL into a PDF.
const ConvertPath = "/convert"

// DefaultBackendURL points at a locally running relay.
const DefaultBackendURL = "http://localhost:5000"

// Backend performs one remote conversion.
type Backend interface {
	Convert(ctx context.Context, payload domain.BackendPayload) ([]byte, error)
}

// Client posts conversion requests to the backend over HTTP. It attaches no
// credentials: the backend holds whatever keys the upstream renderer needs.
type Client struct {
	endpoint string
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds a whole request. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
	}
}

// NewClient creates a Client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBackendURL
	}
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + ConvertPath,
		http:     &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Convert posts payload and returns the response body on a 2xx status.
// Transport failures come back as *domain.NetworkError, non-2xx statuses as
// *domain.BackendError.
func (c *Client) Convert(ctx context.Context, payload domain.BackendPayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, backendError(resp, data)
	}
	if readErr != nil {
		return nil, &domain.NetworkError{Err: readErr}
	}
	return data, nil
}

// errorBody accepts both {"error":"msg"} and {"error":{"message":"msg"}}.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

func backendError(resp *http.Response, body []byte) error {
	if msg := errorMessage(body); msg != "" {
		return domain.NewBackendError(resp.StatusCode, msg)
	}
	return domain.NewBackendError(resp.StatusCode, statusText(resp))
}

func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Error, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(eb.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}

// statusText returns the reason phrase the server sent, or the canonical one.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
