package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yurikomh/portfolio-api/pkg/utils"
)

const defaultBaseURL = "https://api.steampowered.com"

// Client calls the Steam Web API for one profile.
type Client struct {
	apiKey     string
	steamID    string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Steam client for the given key and profile.
func NewClient(apiKey, steamID string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		steamID:    steamID,
		baseURL:    defaultBaseURL,
		httpClient: utils.NewUpstreamClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.steamID != ""
}

// Profile returns the player summary, or nil when the profile is hidden.
func (c *Client) Profile(ctx context.Context) (map[string]interface{}, error) {
	var result struct {
		Response struct {
			Players []map[string]interface{} `json:"players"`
		} `json:"response"`
	}

	query := url.Values{
		"key":      {c.apiKey},
		"steamids": {c.steamID},
	}
	endpoint := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v2/?%s", c.baseURL, query.Encode())
	if err := utils.GetJSON(ctx, c.httpClient, endpoint, nil, &result); err != nil {
		return nil, err
	}

	if len(result.Response.Players) == 0 {
		return nil, nil
	}
	return result.Response.Players[0], nil
}

// OwnedGames returns the owned-games response: game list plus game_count.
func (c *Client) OwnedGames(ctx context.Context) (map[string]interface{}, error) {
	var result struct {
		Response map[string]interface{} `json:"response"`
	}

	query := url.Values{
		"key":                       {c.apiKey},
		"steamid":                   {c.steamID},
		"include_appinfo":           {"1"},
		"include_played_free_games": {"1"},
	}
	endpoint := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?%s", c.baseURL, query.Encode())
	if err := utils.GetJSON(ctx, c.httpClient, endpoint, nil, &result); err != nil {
		return nil, err
	}

	if result.Response == nil {
		return map[string]interface{}{"games": []interface{}{}, "game_count": 0}, nil
	}
	return result.Response, nil
}

// RecentGames returns up to ten recently played games.
func (c *Client) RecentGames(ctx context.Context) ([]interface{}, error) {
	var result struct {
		Response struct {
			Games []interface{} `json:"games"`
		} `json:"response"`
	}

	query := url.Values{
		"key":     {c.apiKey},
		"steamid": {c.steamID},
		"count":   {"10"},
	}
	endpoint := fmt.Sprintf("%s/IPlayerService/GetRecentlyPlayedGames/v1/?%s", c.baseURL, query.Encode())
	if err := utils.GetJSON(ctx, c.httpClient, endpoint, nil, &result); err != nil {
		return nil, err
	}

	if result.Response.Games == nil {
		return []interface{}{}, nil
	}
	return result.Response.Games, nil
}
