package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible endpoints
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default https://openrouter.ai/api/v1
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Generating a
// whole problem takes longer than a single question, hence the 60s timeout.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// envOverrides lists the MATCHUP_* variables that override a Config field.
func envOverrides(cfg *Config) []struct {
	name   string
	target *string
} {
	return []struct {
		name   string
		target *string
	}{
		{"MATCHUP_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"MATCHUP_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"MATCHUP_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"MATCHUP_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"MATCHUP_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"MATCHUP_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"MATCHUP_GEMINI_MODEL", &cfg.Gemini.Model},
		{"MATCHUP_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"MATCHUP_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
		{"MATCHUP_OPENROUTER_BASE_URL", &cfg.OpenRouter.BaseURL},
	}
}

// ConfigFromEnv builds a Config from MATCHUP_* environment variables on
// top of the defaults. The second result reports whether a provider was
// chosen explicitly with MATCHUP_LLM_PROVIDER.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()

	p := os.Getenv("MATCHUP_LLM_PROVIDER")
	if p != "" {
		cfg.Provider = p
	}
	for _, o := range envOverrides(&cfg) {
		if v := os.Getenv(o.name); v != "" {
			*o.target = v
		}
	}
	if v := os.Getenv("MATCHUP_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring MATCHUP_LLM_TIMEOUT=%q\n", v)
		}
	}

	return cfg, p != ""
}

// DiscoverConfig probes the providers' standard API key variables in
// priority order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a
// Config for the first one found.
func DiscoverConfig() (Config, bool) {
	cfg, _ := ConfigFromEnv()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("MATCHUP_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

