// Package upstream talks to the external rendering service that actually
// turns a web page into a PDF. The relay is the only holder of its API key.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// renderPath is the URL rendering endpoint of the upstream service.
const renderPath = "/v1/pdf"

// ErrTooLarge is returned when the upstream PDF exceeds the configured limit.
var ErrTooLarge = errors.New("pdf exceeds allowed size")

// Error is a non-success answer from the upstream service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// Request describes one page to render.
type Request struct {
	URL         string
	PageSize    string
	Orientation string
	Filename    string
}

// Client calls the upstream renderer.
type Client struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	maxBytes int
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout bounds each render. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxBytes rejects PDFs larger than n bytes. Zero disables the check.
func WithMaxBytes(n int) Option {
	return func(c *Client) { c.maxBytes = n }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Render asks the upstream service for a PDF of req.URL.
func (c *Client) Render(ctx context.Context, req Request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("url", req.URL)
	q.Set("format", strings.ToUpper(req.PageSize))
	q.Set("orientation", strings.ToLower(req.Orientation))
	if req.Filename != "" {
		q.Set("filename", req.Filename)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+renderPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/pdf")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	var r io.Reader = resp.Body
	if c.maxBytes > 0 {
		r = io.LimitReader(resp.Body, int64(c.maxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if c.maxBytes > 0 && len(data) > c.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// errorMessage understands {"error":{"message":...}} and {"error":"..."}.
func errorMessage(status int, body []byte) string {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var flat string
		if err := json.Unmarshal(env.Error, &flat); err == nil && flat != "" {
			return flat
		}
	}
	return http.StatusText(status)
}
