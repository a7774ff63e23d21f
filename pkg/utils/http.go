package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultUpstreamTimeout bounds outbound calls to third-party REST APIs.
const DefaultUpstreamTimeout = 10 * time.Second

// maxErrorBody caps how much of an upstream error body is carried in an
// HTTPError.
const maxErrorBody = 200

// NewUpstreamClient creates an HTTP client for third-party API calls.
func NewUpstreamClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultUpstreamTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}

// HTTPError represents a non-success response from an upstream REST API.
type HTTPError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// GetJSON issues a GET request and decodes the JSON response into target.
// Non-2xx statuses become an *HTTPError carrying a truncated body.
func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer SafeClose(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			URL:        url,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}

// SafeClose closes an HTTP response body, logging instead of failing.
func SafeClose(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[HTTP] Failed to close response body: %v", err)
		}
	}
}
