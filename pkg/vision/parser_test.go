package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockOpenAI(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req["model"])
		assert.Equal(t, float64(1000), req["max_tokens"])

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestParseScreenshot(t *testing.T) {
	content := `{"map": "Volta", "status": "survived", "items": [{"item_name": "Titanium Ore", "quantity": 5, "value": 2000}]}`
	server := newMockOpenAI(t, content, http.StatusOK)
	defer server.Close()

	p := NewParser("test-key", WithBaseURL(server.URL))
	parsed, err := p.ParseScreenshot(context.Background(), "aGVsbG8=")
	require.NoError(t, err)

	assert.Equal(t, "Volta", parsed.Map)
	assert.Equal(t, "survived", parsed.Status)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Titanium Ore", parsed.Items[0].ItemName)
	assert.Equal(t, 5, parsed.Items[0].Quantity)
	assert.Equal(t, 2000, parsed.Items[0].Value)
}

func TestParseScreenshotDataURLPassedThrough(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		var parts []struct {
			Type     string `json:"type"`
			ImageURL struct {
				URL string `json:"url"`
			} `json:"image_url"`
		}
		require.NoError(t, json.Unmarshal(req.Messages[1].Content, &parts))
		for _, part := range parts {
			if part.Type == "image_url" {
				gotURL = part.ImageURL.URL
			}
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"map\":\"Karst\",\"status\":\"kia\",\"items\":[]}"}}]}`))
	}))
	defer server.Close()

	p := NewParser("test-key", WithBaseURL(server.URL))

	_, err := p.ParseScreenshot(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", gotURL)

	_, err = p.ParseScreenshot(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", gotURL)
}

func TestParseScreenshotAPIError(t *testing.T) {
	server := newMockOpenAI(t, "", http.StatusTooManyRequests)
	defer server.Close()

	p := NewParser("test-key", WithBaseURL(server.URL))
	_, err := p.ParseScreenshot(context.Background(), "aGVsbG8=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestParseScreenshotInvalidModelOutput(t *testing.T) {
	server := newMockOpenAI(t, "Sorry, I cannot parse that image.", http.StatusOK)
	defer server.Close()

	p := NewParser("test-key", WithBaseURL(server.URL))
	_, err := p.ParseScreenshot(context.Background(), "aGVsbG8=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewParser("key").Configured())
	assert.False(t, NewParser("").Configured())
}
