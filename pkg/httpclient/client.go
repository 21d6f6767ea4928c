package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const userAgent = "catalog-browser/1.0 (+https://www.themoviedb.org)"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues one GET per call. It never retries; callers own retry policy.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new HTTP client
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWith wraps an existing *http.Client (httptest servers, custom transports).
func NewClientWith(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// Get makes a single HTTP GET request and reads the whole body.
// Non-2xx responses are returned without error so the caller can decode them.
func (c *Client) Get(ctx context.Context, targetURL string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().
			Err(err).
			Str("host", req.URL.Host).
			Str("path", req.URL.Path).
			Msg("Request failed")
		return nil, err
	}

	// 读取并立即关闭 body
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Str("path", req.URL.Path).
		Dur("latency", time.Since(start)).
		Msg("Upstream request")

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}
