package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/matchup/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped so that
// callers go through retry, then logging, then the base provider.
// A nil eventRepo disables logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo != nil {
		base = WithLogging(base, eventRepo)
	}
	return WithRetry(base, cfg.Retry, cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from MATCHUP_* variables. When
// MATCHUP_LLM_PROVIDER is unset it falls back to whichever standard API
// key variable is present.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		cfg, ok = DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: set MATCHUP_LLM_PROVIDER or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
		}
	}
	return NewProvider(ctx, cfg, eventRepo)
}
