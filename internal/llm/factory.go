package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new AI extraction provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "gemini", "google":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (AI extraction disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown AI provider: %s (supported: gemini, openai, anthropic, ollama)", config.Provider)
	}
}
