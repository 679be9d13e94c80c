package llm

import (
	"context"
	"fmt"
	"time"

	"webintel/webintel/config"
	"webintel/webintel/metrics"
	httputils "webintel/webintel/utils/http"
	"webintel/webintel/utils/logging"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is a single-shot chat completion endpoint.
type Client interface {
	Run(ctx context.Context, req ChatRequest) (string, error)
	Provider() string
}

type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	// JSONMode asks the provider for a single JSON object when it supports it.
	JSONMode  bool
	MaxTokens int64
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func DefaultModel(provider string) string {
	switch provider {
	case config.ProviderGroq:
		return "llama-3.3-70b-versatile"
	case config.ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case config.ProviderOllama:
		return "llama3.1"
	default:
		return "gpt-4o-mini"
	}
}

// NewClient builds the client for cfg.LLMProvider.
func NewClient(cfg config.Config, logger *logging.Loggers) (Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewGPTClient(cfg.OpenAIAPIKey, logger), nil
	case config.ProviderGroq:
		return NewGroqClient(cfg.GroqAPIKey, logger), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.AnthropicAPIKey, logger), nil
	case config.ProviderOllama:
		return NewOllamaClient(cfg.OllamaURL, logger), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
}

func observe(provider string, start time.Time) {
	metrics.LLMRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

type OllamaClient struct {
	baseURL string
	logger  *logging.Loggers
}

func NewOllamaClient(baseURL string, logger *logging.Loggers) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434/api"
	}
	return &OllamaClient{baseURL: baseURL, logger: logger}
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

func (c *OllamaClient) Provider() string { return config.ProviderOllama }

func (c *OllamaClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer c.logger.LogDuration(ctx, "ollama_service_run")()
	defer observe(c.Provider(), time.Now())

	body := ollamaChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
	}
	if req.JSONMode {
		body.Format = "json"
	}
	if req.Temperature != nil {
		body.Options = map[string]any{"temperature": *req.Temperature}
	}

	var resp ollamaChatResponse
	if err := httputils.PostJSON(ctx, nil, c.baseURL+"/chat", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}
