package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursemap/coursemap/internal/config"
)

func TestNewGenerator_Providers(t *testing.T) {
	cases := []config.LLMConfig{
		{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"},
		{Provider: "OpenAI", APIKey: "k", Model: "gpt-4o-mini"},
		{Provider: "claude", APIKey: "k", Model: "claude-sonnet-4-20250514"},
		{Provider: "ollama", Model: "gpt-oss:latest", BaseURL: "http://localhost:11434"},
	}

	for _, cfg := range cases {
		t.Run(cfg.Provider, func(t *testing.T) {
			gen, err := NewGenerator(context.Background(), cfg)
			require.NoError(t, err)
			assert.NotNil(t, gen)
		})
	}
}

func TestNewGenerator_Unsupported(t *testing.T) {
	_, err := NewGenerator(context.Background(), config.LLMConfig{Provider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}

func TestNewGenerator_EmptyProvider(t *testing.T) {
	_, err := NewGenerator(context.Background(), config.LLMConfig{})
	assert.Error(t, err)
}
