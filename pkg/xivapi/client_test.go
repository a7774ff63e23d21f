package xivapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchCharacter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/character/search", r.URL.Path)
		assert.Equal(t, "Yuriko Mh", r.URL.Query().Get("name"))
		assert.Equal(t, "Excalibur", r.URL.Query().Get("server"))
		assert.Equal(t, "Portfolio-Site/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Results":[{"ID":26595912,"Name":"Yuriko Mh","Server":"Excalibur"}]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	result, err := client.SearchCharacter(context.Background(), "Yuriko Mh", "Excalibur")
	require.NoError(t, err)

	results, ok := result["Results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 1)
}

func TestClient_Character(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/character/26595912", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("extended"))
		assert.Equal(t, "FC", r.URL.Query().Get("data"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Character":{"ID":26595912,"Name":"Yuriko Mh"}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	result, err := client.Character(context.Background(), "26595912")
	require.NoError(t, err)
	assert.NotNil(t, result["Character"])
}
