package llm

import (
	"context"
	"strings"
	"time"

	"webintel/webintel/config"
	"webintel/webintel/utils/logging"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const (
	defaultAnthropicMaxTokens = 2048
	maxAnthropicTemperature   = 1.0
)

type AnthropicClient struct {
	client sdk.Client
	logger *logging.Loggers
}

func NewAnthropicClient(apiKey string, logger *logging.Loggers, opts ...option.RequestOption) *AnthropicClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &AnthropicClient{
		client: sdk.NewClient(opts...),
		logger: logger,
	}
}

func (c *AnthropicClient) Provider() string { return config.ProviderAnthropic }

// Run sends system messages as system blocks and the rest as the conversation.
// Temperature is clamped to [0, 1], the range the Messages API accepts.
// Anthropic has no JSON response mode; the prompt carries that instruction.
func (c *AnthropicClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer c.logger.LogDuration(ctx, "anthropic_service_run")()
	defer observe(c.Provider(), time.Now())

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: maxTokens,
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, sdk.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		}
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(min(max(*req.Temperature, 0), maxAnthropicTemperature))
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}
