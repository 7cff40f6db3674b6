package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// openrouterAPIURL is a var to allow test overrides via httptest.
var openrouterAPIURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterAPIURL returns the current OpenRouter API endpoint URL.
// Exposed for use by integration tests via httptest servers.
func OpenRouterAPIURL() string { return openrouterAPIURL }

// SetOpenRouterAPIURL overrides the OpenRouter API endpoint URL.
// Intended for use in tests only.
func SetOpenRouterAPIURL(u string) { openrouterAPIURL = u }

// OpenRouter asks callers to identify themselves for its app rankings.
const (
	openrouterReferer = "https://github.com/dshills/guildsmith"
	openrouterTitle   = "Guildsmith"
)

// openrouterProvider speaks the OpenAI chat-completions wire format against
// the OpenRouter endpoint, which routes to many underlying models.
type openrouterProvider struct {
	model  string
	apiKey string // unexported; never serialized by encoding/json
}

func (p *openrouterProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	status, respBytes, err := postJSON(ctx, openrouterAPIURL, map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"HTTP-Referer":  openrouterReferer,
		"X-Title":       openrouterTitle,
	}, buildChatRequest(p.model, req))
	if err != nil {
		return nil, err
	}

	var orResp chatResponse
	if err := json.Unmarshal(respBytes, &orResp); err != nil {
		return nil, fmt.Errorf("parsing response JSON (HTTP %d, body: %s): %w", status, truncate(string(respBytes), 200), err)
	}

	// Check status code first, then structured error field.
	if status != http.StatusOK {
		if orResp.Error != nil {
			return nil, fmt.Errorf("openrouter: %s: %s", orResp.Error.Type, orResp.Error.Message)
		}
		return nil, fmt.Errorf("openrouter: HTTP %d: %s", status, truncate(string(respBytes), 200))
	}

	if len(orResp.Choices) == 0 {
		return nil, fmt.Errorf("openrouter: empty choices in response")
	}
	content := orResp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("openrouter: missing message content in response")
	}

	return &Response{
		Content: content,
		Model:   fmt.Sprintf("openrouter:%s", orResp.Model),
	}, nil
}
