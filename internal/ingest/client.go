package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submitter posts ingestion requests. Implemented by *Client; tests use fakes.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Response, error)
}

// Ensure Client implements Submitter at compile time.
var _ Submitter = (*Client)(nil)

// Client talks to the ingestion HTTP API.
type Client struct {
	baseURL    *url.URL
	ingestPath string
	http       *http.Client
	userAgent  string
	newID      func() string
}

const (
	defaultAPIBase    = "http://127.0.0.1:8000"
	defaultIngestPath = "/api/ingest"
	defaultUserAgent  = "mtlreq/0.1"
	// DefaultTimeout bounds one ingestion call. Scraping a whole book is slow,
	// so this is far longer than a typical API timeout.
	DefaultTimeout = 120 * time.Second

	maxResponseBytes = 1 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithIngestPath overrides the endpoint path.
func WithIngestPath(path string) Option {
	return func(c *Client) {
		if p := strings.TrimSpace(path); p != "" {
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			c.ingestPath = p
		}
	}
}

// WithTimeout overrides the transport timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for apiBase, a URL or bare host:port.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    base,
		ingestPath: defaultIngestPath,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: defaultUserAgent,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the absolute ingestion URL.
func (c *Client) Endpoint() string {
	return c.baseURL.ResolveReference(&url.URL{Path: c.ingestPath}).String()
}

// Submit issues a single POST. It returns a *TransportError when no response
// arrived and a *BackendError when the response does not carry a novel_id.
func (c *Client) Submit(ctx context.Context, req Request) (Response, error) {
	if c == nil {
		return Response{}, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	requestID := c.newID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeResponse(resp, requestID)
}

func decodeResponse(resp *http.Response, requestID string) (Response, error) {
	out := Response{StatusCode: resp.StatusCode, RequestID: requestID}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return out, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &out)
		out.StatusCode = resp.StatusCode
		out.RequestID = requestID
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	switch {
	case !ok:
		return out, &BackendError{
			Status:   resp.StatusCode,
			Message:  out.Reason(),
			Response: out,
			Err:      fmt.Errorf("api returned status %d", resp.StatusCode),
		}
	case decodeErr != nil:
		return out, &BackendError{
			Status:   resp.StatusCode,
			Response: out,
			Err:      fmt.Errorf("decode response: %w", decodeErr),
		}
	case out.NovelID.Empty():
		return out, &BackendError{
			Status:   resp.StatusCode,
			Message:  out.Reason(),
			Response: out,
			Err:      ErrMissingNovelID,
		}
	}
	return out, nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
