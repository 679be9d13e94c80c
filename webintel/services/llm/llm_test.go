package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"webintel/webintel/config"
	"webintel/webintel/utils/logging"

	aoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func temp(v float64) *float64 { return &v }

func TestGPTClientRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/chat/completions")
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, 0.0, body["temperature"])
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
		msgs := body["messages"].([]any)
		assert.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": `{"company_name":"Acme Inc"}`},
			}},
		})
	}))
	defer srv.Close()

	c := NewGPTClient("sk-test", logging.NewNop(), option.WithBaseURL(srv.URL))
	out, err := c.Run(context.Background(), ChatRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a helpful assistant."},
			{Role: RoleUser, Content: "Analyze"},
		},
		Temperature: temp(0),
		JSONMode:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"company_name":"Acme Inc"}`, out)
	assert.Equal(t, config.ProviderOpenAI, c.Provider())
}

func TestGPTClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := NewGroqClient("gsk", logging.NewNop(), option.WithBaseURL(srv.URL))
	_, err := c.Run(context.Background(), ChatRequest{Model: "m", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Equal(t, config.ProviderGroq, c.Provider())
}

func TestAnthropicClientClampsTemperature(t *testing.T) {
	var got any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = body["temperature"]

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_2",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": "ok"}},
			"model":       "claude-3-5-haiku-latest",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 1, "output_tokens": 1},
		})
	}))
	defer srv.Close()

	temp := 1.5
	c := NewAnthropicClient("key", logging.NewNop(), aoption.WithBaseURL(srv.URL))
	_, err := c.Run(context.Background(), ChatRequest{
		Model:       "claude-3-5-haiku-latest",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestAnthropicClientRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/messages")

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(defaultAnthropicMaxTokens), body["max_tokens"])
		system := body["system"].([]any)
		assert.Equal(t, "Be terse.", system[0].(map[string]any)["text"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_1",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": `{"answer":`},
				{"type": "text", "text": `"Berlin"}`},
			},
			"model":       "claude-3-5-haiku-latest",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient("key", logging.NewNop(), aoption.WithBaseURL(srv.URL))
	out, err := c.Run(context.Background(), ChatRequest{
		Model: "claude-3-5-haiku-latest",
		Messages: []Message{
			{Role: RoleSystem, Content: "Be terse."},
			{Role: RoleUser, Content: "Where?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"answer":"Berlin"}`, out)
}

func TestOllamaClientRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var body ollamaChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "json", body.Format)
		assert.False(t, body.Stream)
		assert.Equal(t, 0.1, body.Options["temperature"])

		json.NewEncoder(w).Encode(ollamaChatResponse{Message: Message{Role: RoleAssistant, Content: "{}"}, Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL+"/api", logging.NewNop())
	out, err := c.Run(context.Background(), ChatRequest{
		Model:       "llama3.1",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		Temperature: temp(0.1),
		JSONMode:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestNewClient(t *testing.T) {
	for _, p := range []string{config.ProviderOpenAI, config.ProviderGroq, config.ProviderAnthropic, config.ProviderOllama} {
		c, err := NewClient(config.Config{LLMProvider: p, OpenAIAPIKey: "k", GroqAPIKey: "k", AnthropicAPIKey: "k"}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, p, c.Provider())
		assert.NotEmpty(t, DefaultModel(p))
	}

	_, err := NewClient(config.Config{LLMProvider: "mystery"}, logging.NewNop())
	assert.Error(t, err)
}
