package llm

import (
	"context"
	"fmt"
	"time"
)

// ProviderConfig describe el backend a construir.
type ProviderConfig struct {
	Provider   string
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	Generation GenerationConfig
}

// NewFromConfig crea el cliente del proveedor indicado.
func NewFromConfig(ctx context.Context, cfg ProviderConfig) (LLMClient, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiClient(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, cfg.Generation)
	case "openai":
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, cfg.Generation), nil
	case "anthropic":
		return NewAnthropicClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, cfg.Generation), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
