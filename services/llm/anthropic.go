package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"nursethink/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const providerAnthropic = "Anthropic"

type AnthropicGenerator struct {
	client  *anthropic.Client
	timeout time.Duration
	log     *logger.Logger
}

func NewAnthropicGenerator(apiKey string, timeout time.Duration, log *logger.Logger) *AnthropicGenerator {
	g := &AnthropicGenerator{timeout: timeout, log: log}
	if apiKey == "" {
		log.Warn("Anthropic API key not set; real AI requests will fail")
		return g
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0))
	g.client = &client
	return g
}

func (g *AnthropicGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", &AuthError{Provider: providerAnthropic, Err: ErrMissingAPIKey}
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	g.log.Debug("Calling LLM", "provider", providerAnthropic, "prompt_chars", len(prompt))
	response, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		g.log.Error("Failed to call Anthropic API", "error", err)
		return "", classifyAnthropic(err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}
	return clean(text.String()), nil
}

func classifyAnthropic(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return classify(providerAnthropic, err)
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Provider: providerAnthropic, Err: err}
	case http.StatusRequestTimeout:
		return &TransportError{Provider: providerAnthropic, Err: err}
	default:
		return &UpstreamError{Provider: providerAnthropic, StatusCode: apiErr.StatusCode, Err: err}
	}
}
