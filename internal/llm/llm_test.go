package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProvider_InvalidFormat(t *testing.T) {
	tests := []string{"", "openrouter", ":model", "openrouter:", "nosuch:model"}
	for _, pm := range tests {
		if _, err := NewProvider(pm); err == nil {
			t.Errorf("NewProvider(%q): expected error", pm)
		}
	}
}

func TestNewProvider_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	if _, err := NewProvider("openrouter:anthropic/claude-3.5-haiku"); err == nil {
		t.Error("expected error when OPENROUTER_API_KEY is unset")
	}
}

func TestNewProvider_Valid(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	for _, pm := range []string{"openrouter:some/model", "openai:gpt-4o", "anthropic:claude-3-opus"} {
		if _, err := NewProvider(pm); err != nil {
			t.Errorf("NewProvider(%q): %v", pm, err)
		}
	}
}

func TestOpenRouterComplete(t *testing.T) {
	var gotReq chatRequest
	var gotReferer, gotTitle, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model": "anthropic/claude-3.5-haiku",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hello"}},
			},
		})
	}))
	defer srv.Close()

	oldURL := OpenRouterAPIURL()
	SetOpenRouterAPIURL(srv.URL)
	defer SetOpenRouterAPIURL(oldURL)

	p := &openrouterProvider{model: "anthropic/claude-3.5-haiku", apiKey: "test-key"}
	resp, err := p.Complete(context.Background(), &Request{UserPrompt: "design a server", Temperature: 0.7})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != "hello" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Model != "openrouter:anthropic/claude-3.5-haiku" {
		t.Errorf("model = %q", resp.Model)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReferer != openrouterReferer || gotTitle != openrouterTitle {
		t.Errorf("identification headers = %q / %q", gotReferer, gotTitle)
	}
	if gotReq.Model != "anthropic/claude-3.5-haiku" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.7 {
		t.Errorf("request temperature = %v", gotReq.Temperature)
	}
	if gotReq.MaxTokens != defaultMaxTokens {
		t.Errorf("request max_tokens = %d, want default %d", gotReq.MaxTokens, defaultMaxTokens)
	}
}

func TestOpenRouterComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "rate_limit", "message": "slow down"},
		})
	}))
	defer srv.Close()

	oldURL := OpenRouterAPIURL()
	SetOpenRouterAPIURL(srv.URL)
	defer SetOpenRouterAPIURL(oldURL)

	p := &openrouterProvider{model: "m", apiKey: "k"}
	_, err := p.Complete(context.Background(), &Request{UserPrompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "rate_limit") || !strings.Contains(err.Error(), "slow down") {
		t.Errorf("error = %v, want structured API error", err)
	}
}

func TestOpenRouterComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"model": "m", "choices": []any{}})
	}))
	defer srv.Close()

	oldURL := OpenRouterAPIURL()
	SetOpenRouterAPIURL(srv.URL)
	defer SetOpenRouterAPIURL(oldURL)

	p := &openrouterProvider{model: "m", apiKey: "k"}
	if _, err := p.Complete(context.Background(), &Request{UserPrompt: "x"}); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestOpenAIComplete_ModelOverride(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-3.5-turbo",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	oldURL := OpenAIAPIURL()
	SetOpenAIAPIURL(srv.URL)
	defer SetOpenAIAPIURL(oldURL)

	p := &openaiProvider{model: "gpt-4o", apiKey: "k"}
	_, err := p.Complete(context.Background(), &Request{UserPrompt: "x", Model: "gpt-3.5-turbo"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotReq.Model != "gpt-3.5-turbo" {
		t.Errorf("request model = %q, want per-request override", gotReq.Model)
	}
}

func TestAnthropicComplete_JoinsTextBlocks(t *testing.T) {
	var gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "claude-3-opus",
			"content": []map[string]string{
				{"type": "text", "text": "part one "},
				{"type": "tool_use", "text": "ignored"},
				{"type": "text", "text": "part two"},
			},
		})
	}))
	defer srv.Close()

	oldURL := AnthropicAPIURL()
	SetAnthropicAPIURL(srv.URL)
	defer SetAnthropicAPIURL(oldURL)

	p := &anthropicProvider{model: "claude-3-opus", apiKey: "k"}
	resp, err := p.Complete(context.Background(), &Request{UserPrompt: "x"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "part one part two" {
		t.Errorf("content = %q", resp.Content)
	}
	if gotVersion != anthropicVersion {
		t.Errorf("anthropic-version header = %q", gotVersion)
	}
}

func TestBuildChatRequest_SystemMessageOptional(t *testing.T) {
	body := buildChatRequest("m", &Request{UserPrompt: "hi"})
	if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want single user message", body.Messages)
	}

	body = buildChatRequest("m", &Request{SystemPrompt: "sys", UserPrompt: "hi"})
	if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
		t.Errorf("messages = %+v, want system then user", body.Messages)
	}
}

func TestBuildStructurePrompt(t *testing.T) {
	prompt := BuildStructurePrompt("space exploration", 20, 1, 3)

	if !strings.Contains(prompt, "space exploration") {
		t.Error("prompt missing theme")
	}
	if !strings.Contains(prompt, "20 channels max") {
		t.Error("prompt missing channel cap")
	}
	if !strings.Contains(prompt, "1-3 voice channels") {
		t.Error("prompt missing voice bounds")
	}
	if !strings.Contains(prompt, "SEND_MESSAGES") {
		t.Error("prompt missing permission allow-list")
	}
	if !strings.Contains(prompt, `"categories"`) {
		t.Error("prompt missing format example")
	}
}

func TestCleanEnhanced(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Enhanced theme: a cozy book club", "a cozy book club"},
		{`"quoted theme"`, "quoted theme"},
		{"plain theme", "plain theme"},
		{"   ", "fallback"},
	}
	for _, tt := range tests {
		if got := CleanEnhanced(tt.in, "fallback"); got != tt.want {
			t.Errorf("CleanEnhanced(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a longer string", 8); got != "a longer..." {
		t.Errorf("truncate = %q", got)
	}
}
