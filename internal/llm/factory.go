package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/jlptquiz/internal/store"
)

// NewProvider creates the configured Provider wrapped as
// caller → retry → logging → backend. It returns ErrNotConfigured when
// cfg.Provider is empty. A nil repo skips event logging.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case "":
		return nil, ErrNotConfigured
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if repo != nil {
		base = WithLogging(base, cfg.Provider, repo)
	}
	return WithRetry(base, cfg.Retry), nil
}
