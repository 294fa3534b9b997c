package llm

import (
	"context"
	"fmt"
	"time"

	"nursethink/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const providerOpenAI = "OpenAI"

type OpenAIGenerator struct {
	llm     llms.Model
	timeout time.Duration
	log     *logger.Logger
}

// NewOpenAIGenerator builds a generator even without a key so that demo mode
// keeps working; calls then fail with an AuthError.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration, log *logger.Logger) (*OpenAIGenerator, error) {
	g := &OpenAIGenerator{timeout: timeout, log: log}
	if apiKey == "" {
		log.Warn("OpenAI API key not set; real AI requests will fail")
		return g, nil
	}

	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	g.llm = llm
	return g, nil
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.llm == nil {
		return "", &AuthError{Provider: providerOpenAI, Err: ErrMissingAPIKey}
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	g.log.Debug("Calling LLM", "provider", providerOpenAI, "prompt_chars", len(prompt))
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		g.log.Error("Failed to generate LLM response", "provider", providerOpenAI, "error", err)
		return "", classify(providerOpenAI, err)
	}
	return clean(completion), nil
}
