package showtimes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tailscale/hujson"
)

// Client fetches the current showtime document from the upstream feed.
type Client interface {
	FetchShowtime(ctx context.Context) (*Showtime, error)
}

// HTTPClient is the production Client. It expects the feed to respond with a
// JSON array containing one showtime object and tolerates the feed's sloppy
// serializer (trailing commas).
type HTTPClient struct {
	url        string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the feed at url with a per-call timeout.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchShowtime performs one GET against the feed. Non-2xx statuses come back
// as *StatusError, unusable payloads as ErrMalformedResponse; both are
// transient to the retry layer.
func (c *HTTPClient) FetchShowtime(ctx context.Context) (*Showtime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	return parseShowtimeFeed(body)
}

// parseShowtimeFeed decodes a feed payload. The feed wraps the document in an
// array and is known to emit trailing commas, so the body is standardized to
// strict JSON first.
func parseShowtimeFeed(body []byte) (*Showtime, error) {
	standardized, err := hujson.Standardize(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var docs []Showtime
	if err := json.Unmarshal(standardized, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: empty feed", ErrMalformedResponse)
	}

	return &docs[0], nil
}
