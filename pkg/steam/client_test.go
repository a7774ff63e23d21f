package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSteamServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/ISteamUser/GetPlayerSummaries/v2/":
			assert.Equal(t, "76561198355375261", r.URL.Query().Get("steamids"))
			_, _ = w.Write([]byte(`{"response":{"players":[{"personaname":"yuriko","steamid":"76561198355375261"}]}}`))
		case "/IPlayerService/GetOwnedGames/v1/":
			assert.Equal(t, "1", r.URL.Query().Get("include_appinfo"))
			_, _ = w.Write([]byte(`{"response":{"game_count":2,"games":[{"appid":570,"name":"Dota 2"},{"appid":730,"name":"Counter-Strike 2"}]}}`))
		case "/IPlayerService/GetRecentlyPlayedGames/v1/":
			assert.Equal(t, "10", r.URL.Query().Get("count"))
			_, _ = w.Write([]byte(`{"response":{"total_count":1,"games":[{"appid":570,"name":"Dota 2"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_Profile(t *testing.T) {
	server := newMockSteamServer(t)
	defer server.Close()

	client := NewClient("test-key", "76561198355375261", WithBaseURL(server.URL))
	require.True(t, client.Configured())

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "yuriko", profile["personaname"])
}

func TestClient_OwnedGames(t *testing.T) {
	server := newMockSteamServer(t)
	defer server.Close()

	client := NewClient("test-key", "76561198355375261", WithBaseURL(server.URL))

	games, err := client.OwnedGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(2), games["game_count"])
}

func TestClient_RecentGames(t *testing.T) {
	server := newMockSteamServer(t)
	defer server.Close()

	client := NewClient("test-key", "76561198355375261", WithBaseURL(server.URL))

	recent, err := client.RecentGames(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestClient_NotConfigured(t *testing.T) {
	assert.False(t, NewClient("", "123").Configured())
	assert.False(t, NewClient("key", "").Configured())
}

func TestClient_EmptyProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"players":[]}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "123", WithBaseURL(server.URL))
	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}
