package xivapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yurikomh/portfolio-api/pkg/utils"
)

const defaultBaseURL = "https://xivapi.com"

// userAgent identifies the proxy to XIVAPI, which rate-limits anonymous
// default agents aggressively.
const userAgent = "Portfolio-Site/1.0"

// Client proxies character lookups to XIVAPI. No API key is required.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host, for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates an XIVAPI client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: utils.NewUpstreamClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchCharacter looks up characters by name and server. The response is
// passed through unmodified.
func (c *Client) SearchCharacter(ctx context.Context, name, server string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/character/search?name=%s&server=%s",
		c.baseURL, url.QueryEscape(name), url.QueryEscape(server))
	return c.get(ctx, endpoint)
}

// Character fetches full character details including free company data.
func (c *Client) Character(ctx context.Context, id string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/character/%s?extended=1&data=FC", c.baseURL, url.PathEscape(id))
	return c.get(ctx, endpoint)
}

func (c *Client) get(ctx context.Context, endpoint string) (map[string]interface{}, error) {
	var result map[string]interface{}
	err := utils.GetJSON(ctx, c.httpClient, endpoint, map[string]string{
		"User-Agent": userAgent,
		"Accept":     "application/json",
	}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
