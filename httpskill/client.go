package httpskill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voxkit/skilltest/harness"
	"github.com/voxkit/skilltest/request"
)

const defaultTimeout = 30 * time.Second

// Client dispatches request envelopes to a skill endpoint over HTTP.
type Client struct {
	endpoint string
	hc       *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. to adjust the
// timeout or inject a test transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.hc = hc }
}

// New creates a Client for the given endpoint URL.
func New(endpoint string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("httpskill: endpoint is required")
	}
	c := &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Handler returns a harness.Handler backed by this client.
func (c *Client) Handler() harness.Handler {
	return c.invoke
}

func (c *Client) invoke(ctx context.Context, req *request.Envelope) (*harness.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("httpskill: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("httpskill: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("httpskill: dispatch: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("httpskill: endpoint returned %s: %s", httpResp.Status, bytes.TrimSpace(snippet))
	}

	var resp harness.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("httpskill: decode response: %w", err)
	}
	return &resp, nil
}
