package oauth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// expiryMargin is subtracted from the provider-declared token lifetime so
	// a token is never presented within five minutes of its true expiry.
	expiryMargin = 300 * time.Second

	// upstreamTimeout bounds every outbound call (token and query).
	upstreamTimeout = 10 * time.Second

	// maxErrorBodyLen caps how much of an upstream error body is kept for
	// logging and error messages.
	maxErrorBodyLen = 200
)

// cachedToken is the in-memory token slot for a client. A token is usable
// iff now < expiresAt.
type cachedToken struct {
	value     string
	expiresAt time.Time
}

// tokenResponse is the OAuth token endpoint payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Client executes authenticated GraphQL queries against a single provider,
// acquiring and caching a client-credentials bearer token as needed. Safe
// for concurrent use; concurrent refreshes are coalesced behind one mutex so
// at most one OAuth round trip is in flight per provider.
type Client struct {
	provider   Provider
	httpClient *http.Client
	now        func() time.Time

	mu    sync.Mutex
	token cachedToken
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock replaces the time source, so tests can simulate token expiry
// without real delays.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client for the given provider.
func NewClient(provider Provider, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		httpClient: &http.Client{
			Timeout: upstreamTimeout,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the provider's credentials are present.
func (c *Client) Configured() bool {
	return c.provider.Credential.Configured()
}

// GetAccessToken returns a bearer token valid for at least the expiry
// margin, refreshing it from the token endpoint when the cached one has
// expired. Returns ErrNotConfigured without any network call when
// credentials are absent.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.value != "" && c.now().Before(c.token.expiresAt) {
		return c.token.value, nil
	}

	token, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	return token.value, nil
}

// requestToken performs the client-credentials exchange. Caller holds c.mu.
func (c *Client) requestToken(ctx context.Context) (cachedToken, error) {
	cred := c.provider.Credential
	basic := base64.StdEncoding.EncodeToString([]byte(cred.ClientID + ":" + cred.ClientSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.provider.TokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return cachedToken{}, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cachedToken{}, &TransportError{Provider: c.provider.Name, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[OAUTH] Failed to close token response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		log.Printf("[OAUTH] %s token request failed: %d %s", c.provider.Name, resp.StatusCode, string(body))
		return cachedToken{}, &AuthError{
			Provider: c.provider.Name,
			Status:   resp.StatusCode,
			Body:     string(body),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return cachedToken{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return cachedToken{}, &AuthError{
			Provider: c.provider.Name,
			Status:   resp.StatusCode,
			Body:     "empty access_token in response",
		}
	}

	return cachedToken{
		value:     tr.AccessToken,
		expiresAt: c.now().Add(time.Duration(tr.ExpiresIn)*time.Second - expiryMargin),
	}, nil
}

// Execute runs one GraphQL query against the provider's query endpoint with
// a fresh bearer token attached. The decoded response is returned verbatim;
// GraphQL-level errors are the caller's concern.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (map[string]interface{}, error) {
	token, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.provider.QueryURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build query request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: c.provider.Name, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[OAUTH] Failed to close query response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Provider: c.provider.Name, Status: resp.StatusCode}
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	return result, nil
}
