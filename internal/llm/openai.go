package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// openaiAPIURL is a var to allow test overrides via httptest.
var openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIAPIURL returns the current OpenAI API endpoint URL.
// Exposed for use by integration tests via httptest servers.
func OpenAIAPIURL() string { return openaiAPIURL }

// SetOpenAIAPIURL overrides the OpenAI API endpoint URL.
// Intended for use in tests only.
func SetOpenAIAPIURL(u string) { openaiAPIURL = u }

type openaiProvider struct {
	model  string
	apiKey string // unexported; never serialized by encoding/json
}

// chatRequest is the OpenAI chat-completions request body, also used by the
// OpenRouter provider.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// buildChatRequest assembles the wire request from a Request, applying the
// provider's default model and the package default max tokens.
func buildChatRequest(providerModel string, req *Request) chatRequest {
	model := providerModel
	if req.Model != "" {
		model = req.Model
	}

	// Only include system message when non-empty to avoid unnecessary token usage.
	var messages []chatMessage
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.UserPrompt})

	body := chatRequest{Model: model, Messages: messages}
	if req.Temperature != 0 {
		t := req.Temperature
		body.Temperature = &t
	}
	body.MaxTokens = req.MaxTokens
	if body.MaxTokens <= 0 {
		body.MaxTokens = defaultMaxTokens
	}
	return body
}

func (p *openaiProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	status, respBytes, err := postJSON(ctx, openaiAPIURL, map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	}, buildChatRequest(p.model, req))
	if err != nil {
		return nil, err
	}

	var oaiResp chatResponse
	if err := json.Unmarshal(respBytes, &oaiResp); err != nil {
		return nil, fmt.Errorf("parsing response JSON (HTTP %d, body: %s): %w", status, truncate(string(respBytes), 200), err)
	}

	// Check status code first, then structured error field.
	if status != http.StatusOK {
		if oaiResp.Error != nil {
			return nil, fmt.Errorf("openai: %s: %s", oaiResp.Error.Type, oaiResp.Error.Message)
		}
		return nil, fmt.Errorf("openai: HTTP %d: %s", status, truncate(string(respBytes), 200))
	}

	if len(oaiResp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices in response")
	}
	content := oaiResp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("openai: missing message content in response")
	}

	return &Response{
		Content: content,
		Model:   fmt.Sprintf("openai:%s", oaiResp.Model),
	}, nil
}
