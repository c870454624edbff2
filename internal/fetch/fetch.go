// Package fetch downloads raw feed documents. Retry policy lives here, on
// the calling side of the pipeline, not inside it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "globenews/1.0"

// Client fetches feed bodies with a timeout and a small linear-backoff
// retry loop.
type Client struct {
	client   *http.Client
	attempts int
	delay    time.Duration
}

// New builds a fetcher; attempts below 1 are clamped to 1.
func New(timeout time.Duration, attempts int, delay time.Duration) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
		delay:    delay,
	}
}

// Feed returns the raw feed text at url, retrying transient failures.
func (c *Client) Feed(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		body, err := c.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if attempt == c.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * c.delay):
		}
	}
	return "", fmt.Errorf("fetch feed after %d attempts: %w", c.attempts, lastErr)
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}
	return string(body), nil
}
