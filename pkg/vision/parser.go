package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yurikomh/portfolio-api/pkg/raids"
	"github.com/yurikomh/portfolio-api/pkg/utils"
)

const defaultBaseURL = "https://api.openai.com"

const visionModel = "gpt-4o"

const systemPrompt = `You are an AI that analyzes ARC Raiders end-of-raid screenshots.
Extract the following information and return it as JSON:
- map: The map name (e.g., "Volta", "Karst", etc.)
- status: One of "survived", "kia", or "extract"
- items: Array of extracted items with { item_name, quantity, value (estimate in credits) }

Return ONLY valid JSON, no markdown or explanation.
Example: {"map": "Volta", "status": "survived", "items": [{"item_name": "Titanium Ore", "quantity": 5, "value": 2000}]}`

// ParsedRaid is what the model extracts from one screenshot.
type ParsedRaid struct {
	Map    string           `json:"map"`
	Status string           `json:"status"`
	Items  []raids.RaidItem `json:"items"`
}

// Parser extracts raid results from end-of-raid screenshots via the OpenAI
// Vision API.
type Parser struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Parser.
type Option func(*Parser)

// WithBaseURL points the parser at a different host, for tests.
func WithBaseURL(baseURL string) Option {
	return func(p *Parser) {
		p.baseURL = baseURL
	}
}

// NewParser creates a screenshot parser.
func NewParser(apiKey string, opts ...Option) *Parser {
	p := &Parser{
		apiKey: apiKey,
		// Vision calls are slow; give them more headroom than REST proxies.
		httpClient: utils.NewUpstreamClient(60 * time.Second),
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether an OpenAI key is present.
func (p *Parser) Configured() bool {
	return p.apiKey != ""
}

// ParseScreenshot sends a base64-encoded screenshot to the model and
// decodes the structured result. Accepts both raw base64 and data URLs.
func (p *Parser) ParseScreenshot(ctx context.Context, image string) (*ParsedRaid, error) {
	imageURL := image
	if !strings.HasPrefix(image, "data:") {
		imageURL = "data:image/png;base64," + image
	}

	payload := map[string]interface{}{
		"model": visionModel,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": systemPrompt,
			},
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": "Analyze this ARC Raiders end-of-raid screenshot and extract the map, status, and items.",
					},
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url": imageURL,
						},
					},
				},
			},
		},
		"max_tokens": 1000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build vision request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.SafeClose(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, openAIError(resp)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no response from AI")
	}

	var parsed ParsedRaid
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		log.Printf("[VISION] Unparseable model output: %.200s", content)
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	return &parsed, nil
}

// openAIError extracts the API error message from a failed response.
func openAIError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("OpenAI API error: %s", apiErr.Error.Message)
	}
	return fmt.Errorf("OpenAI API error: %d", resp.StatusCode)
}
