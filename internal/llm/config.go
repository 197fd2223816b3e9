package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration. It is embedded in the
// application config and filled by cleanenv from YAML and the environment.
type Config struct {
	// Provider selects the backend: anthropic, openai, gemini, openrouter
	// or mock. Empty disables LLM features.
	Provider string `yaml:"provider" env:"JLPTQUIZ_LLM_PROVIDER"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single explanation request including retries.
	Timeout time.Duration `yaml:"timeout" env:"JLPTQUIZ_LLM_TIMEOUT" env-default:"30s"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"  env:"JLPTQUIZ_ANTHROPIC_API_KEY"`
	Model   string `yaml:"model"    env:"JLPTQUIZ_ANTHROPIC_MODEL" env-default:"claude-haiku"`
	BaseURL string `yaml:"base_url" env:"JLPTQUIZ_ANTHROPIC_BASE_URL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"  env:"JLPTQUIZ_OPENAI_API_KEY"`
	Model   string `yaml:"model"    env:"JLPTQUIZ_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"JLPTQUIZ_OPENAI_BASE_URL"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"JLPTQUIZ_GEMINI_API_KEY"`
	Model  string `yaml:"model"   env:"JLPTQUIZ_GEMINI_MODEL" env-default:"gemini-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"  env:"JLPTQUIZ_OPENROUTER_API_KEY"`
	Model   string `yaml:"model"    env:"JLPTQUIZ_OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-exp"`
	BaseURL string `yaml:"base_url" env:"JLPTQUIZ_OPENROUTER_BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"JLPTQUIZ_LLM_MAX_ATTEMPTS" env-default:"3"`
	InitialWait time.Duration `yaml:"initial_wait" env:"JLPTQUIZ_LLM_INITIAL_WAIT" env-default:"1s"`
	MaxWait     time.Duration `yaml:"max_wait"     env:"JLPTQUIZ_LLM_MAX_WAIT"     env-default:"10s"`
	Multiplier  float64       `yaml:"multiplier"   env:"JLPTQUIZ_LLM_BACKOFF"      env-default:"2.0"`
}

// DefaultConfig returns the values the env-default tags describe, for
// callers that do not go through cleanenv.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Discover fills in a provider from the vendors' standard API key
// variables when none was configured. The probe order is Gemini, OpenAI,
// Anthropic, OpenRouter. It reports whether a provider is selected.
func (c *Config) Discover() bool {
	if c.Provider != "" {
		return true
	}

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &c.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &c.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &c.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &c.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			if *p.key == "" {
				*p.key = k
			}
			return true
		}
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "", "mock":
		// Nothing to check.
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("JLPTQUIZ_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("JLPTQUIZ_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("JLPTQUIZ_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("JLPTQUIZ_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Provider != "" && c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm retry max_attempts must be at least 1")
	}
	return nil
}
