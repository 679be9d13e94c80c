package llm

import (
	"context"
	"time"

	"webintel/webintel/config"
	"webintel/webintel/utils/logging"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rotisserie/eris"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GPTClient talks to OpenAI or any OpenAI-compatible chat completions API.
type GPTClient struct {
	client   openai.Client
	provider string
	logger   *logging.Loggers
}

func NewGPTClient(apiKey string, logger *logging.Loggers, opts ...option.RequestOption) *GPTClient {
	return newCompatClient(config.ProviderOpenAI, apiKey, logger, opts...)
}

// NewGroqClient returns a client pointing to Groq's OpenAI-compatible endpoint.
func NewGroqClient(apiKey string, logger *logging.Loggers, opts ...option.RequestOption) *GPTClient {
	opts = append([]option.RequestOption{option.WithBaseURL(groqBaseURL)}, opts...)
	return newCompatClient(config.ProviderGroq, apiKey, logger, opts...)
}

func newCompatClient(provider, apiKey string, logger *logging.Loggers, opts ...option.RequestOption) *GPTClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &GPTClient{
		client:   openai.NewClient(opts...),
		provider: provider,
		logger:   logger,
	}
}

func (c *GPTClient) Provider() string { return c.provider }

// Run executes a single completion request (non-streaming)
func (c *GPTClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer c.logger.LogDuration(ctx, c.provider+"_service_run")()
	defer observe(c.provider, time.Now())

	params := openai.ChatCompletionNewParams{
		Messages: toOpenAIMessages(req.Messages),
		Model:    openai.ChatModel(req.Model),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", eris.Wrapf(err, "%s: chat completion", c.provider)
	}
	if len(resp.Choices) == 0 {
		return "", eris.Errorf("%s: no choices returned", c.provider)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
