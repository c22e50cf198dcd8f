package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursemap/coursemap/internal/config"
)

// NewGenerator builds the configured provider. Ollama is driven through its
// OpenAI-compatible endpoint, so it shares the OpenAI client.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		// Ollama ignores the API key but the client config requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}

		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
