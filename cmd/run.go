package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/jlptquiz/internal/config"
	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/explain"
	"github.com/abhisek/jlptquiz/internal/llm"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/store"
)

// loadEngine loads the study sheets and builds the question engine.
func loadEngine(ctx context.Context, cfg *config.Config) (*quiz.Engine, error) {
	loader, err := cfg.Sheets.NewLoader(ctx)
	if err != nil {
		return nil, fmt.Errorf("data source: %w", err)
	}
	lib, err := dataset.LoadLibrary(ctx, loader, cfg.Sheets.Names(), cfg.Sheets.Timeout)
	if err != nil {
		return nil, fmt.Errorf("load study data: %w", err)
	}
	return quiz.NewEngine(lib, nil), nil
}

// newExplainer builds the explanation service. It returns nil when no LLM
// provider is configured or the provider cannot be created; the quiz
// works without it.
func newExplainer(ctx context.Context, cfg *config.Config, repo store.EventRepo, logger *slog.Logger) *explain.Service {
	provider, err := llm.NewProvider(ctx, cfg.LLM, repo)
	if errors.Is(err, llm.ErrNotConfigured) {
		logger.Info("LLM provider not configured, explanations disabled")
		return nil
	}
	if err != nil {
		logger.Warn("LLM provider unavailable, explanations disabled", "error", err)
		return nil
	}
	return explain.NewService(provider, explain.DefaultConfig())
}
