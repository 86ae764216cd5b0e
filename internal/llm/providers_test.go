package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func anthropicMessage(stop string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": `{"header":"Capitals"}`},
		},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	}
}

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestAnthropicProvider(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, resp *Response, err error)
	}{
		{
			name:    "happy path",
			handler: jsonHandler(http.StatusOK, anthropicMessage("end_turn")),
			check: func(t *testing.T, resp *Response, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
					t.Fatalf("unexpected usage: %+v", resp.Usage)
				}
				if string(resp.Content) != `{"header":"Capitals"}` {
					t.Fatalf("unexpected content: %s", resp.Content)
				}
			},
		},
		{
			name:    "truncated",
			handler: jsonHandler(http.StatusOK, anthropicMessage("max_tokens")),
			check: func(t *testing.T, _ *Response, err error) {
				var maxTok *ErrMaxTokensExceeded
				if !errors.As(err, &maxTok) {
					t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
				}
			},
		},
		{
			name:    "rate limit",
			handler: jsonHandler(http.StatusTooManyRequests, anthropicError("rate_limit_error")),
			check: func(t *testing.T, _ *Response, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
				}
			},
		},
		{
			name:    "server error",
			handler: jsonHandler(http.StatusInternalServerError, anthropicError("api_error")),
			check: func(t *testing.T, _ *Response, err error) {
				var unavail *ErrProviderUnavailable
				if !errors.As(err, &unavail) {
					t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, tt.handler)
			resp, err := p.Generate(context.Background(), Request{
				System:    "You write matching exercises.",
				Messages:  []Message{{Role: RoleUser, Content: "Capitals of Europe."}},
				MaxTokens: 256,
			})
			tt.check(t, resp, err)
		})
	}
}

func openAICompletion(finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": `{"header":"Capitals"}`},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func openAIError(code string) map[string]any {
	return map[string]any{"error": map[string]any{"message": code, "type": code, "code": code}}
}

func TestOpenAICompatibleProviders(t *testing.T) {
	constructors := map[string]func(baseURL string) (*OpenAIProvider, error){
		"openai": func(baseURL string) (*OpenAIProvider, error) {
			return NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: baseURL})
		},
		"openrouter": func(baseURL string) (*OpenAIProvider, error) {
			return NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "openai/gpt-4o-mini", BaseURL: baseURL})
		},
	}

	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    func(error) bool
	}{
		{"happy path", jsonHandler(http.StatusOK, openAICompletion("stop")), func(err error) bool { return err == nil }},
		{"truncated", jsonHandler(http.StatusOK, openAICompletion("length")), func(err error) bool {
			var e *ErrMaxTokensExceeded
			return errors.As(err, &e)
		}},
		{"rate limit", jsonHandler(http.StatusTooManyRequests, openAIError("rate_limit_exceeded")), func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", jsonHandler(http.StatusInternalServerError, openAIError("server_error")), func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}

	for name, newProvider := range constructors {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				server := httptest.NewServer(tc.handler)
				t.Cleanup(server.Close)

				p, err := newProvider(server.URL + "/v1")
				if err != nil {
					t.Fatalf("new provider: %v", err)
				}
				if p.Name() != name {
					t.Fatalf("name = %q, want %q", p.Name(), name)
				}

				resp, err := p.Generate(context.Background(), Request{
					System:    "You write matching exercises.",
					Messages:  []Message{{Role: RoleUser, Content: "Capitals of Europe."}},
					MaxTokens: 256,
				})
				if !tc.want(err) {
					t.Fatalf("unexpected result: %T (%v)", err, err)
				}
				if err == nil && resp.Usage.OutputTokens != 25 {
					t.Fatalf("unexpected usage: %+v", resp.Usage)
				}
			})
		}
	}
}

func TestProviderConstructorsRequireKeys(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Error("anthropic: expected error for empty API key")
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("openai: expected error for empty API key")
	}
	if _, err := NewOpenRouterProvider(OpenRouterConfig{}); err == nil {
		t.Error("openrouter: expected error for empty API key")
	}
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Error("gemini: expected error for empty API key")
	}
}

func TestOpenRouterPassesModelThrough(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("model = %q", p.ModelID())
	}
}

func TestModelMapping(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{openaiModels, "gpt-4o-mini", "gpt-4o-mini"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"header": map[string]any{"type": "string", "description": "Title"},
			"tone":   map[string]any{"type": "string", "enum": []any{"formal", "casual"}},
			"pairs": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 12,
				"items": map[string]any{
					"type":       "object",
					"properties": map[string]any{"question": map[string]any{"type": "string", "minLength": 1}},
				},
			},
		},
		"required": []any{"pairs"},
	}

	schema := geminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 || len(schema.Required) != 1 {
		t.Fatalf("unexpected shape: %d properties, %d required", len(schema.Properties), len(schema.Required))
	}
	if schema.Properties["header"].Description != "Title" {
		t.Errorf("description lost")
	}
	if len(schema.Properties["tone"].Enum) != 2 {
		t.Errorf("expected 2 enum values, got %d", len(schema.Properties["tone"].Enum))
	}
	pairs := schema.Properties["pairs"]
	if pairs.Type != genai.TypeArray || pairs.MinItems == nil || *pairs.MinItems != 3 || pairs.MaxItems == nil || *pairs.MaxItems != 12 {
		t.Fatalf("array bounds lost: %+v", pairs)
	}
	q := pairs.Items.Properties["question"]
	if q.Type != genai.TypeString || q.MinLength == nil || *q.MinLength != 1 {
		t.Fatalf("item schema lost: %+v", q)
	}
}
