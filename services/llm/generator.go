// Package llm is the boundary to the language-model service. Callers only see
// GenerateText and the typed errors it returns.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nursethink/config"
	"nursethink/logger"
)

const DefaultTimeout = 30 * time.Second

// Generator turns a prompt into model text. Implementations make a single
// attempt and return *AuthError, *TransportError or *UpstreamError on failure.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

func NewFromConfig(cfg *config.Config, log *logger.Logger) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		g, err := NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderAnthropic:
		return NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.LLMTimeout, log), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func clean(text string) string {
	return strings.TrimSpace(text)
}
