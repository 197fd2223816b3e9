package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/jlptquiz/internal/app"
	"github.com/abhisek/jlptquiz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().IntP("size", "n", 0, "Questions per session (overrides quiz.session_size)")
}

// runPlay loads the study data, opens the store and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("size"); n > 0 {
		cfg.Quiz.SessionSize = n
	}

	logger, closer, err := app.NewFileLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	dbPath, err := cfg.DBPath()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	if err := store.EnsureDir(dbPath); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	fmt.Fprintln(os.Stderr, "Loading study sheets...")
	engine, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}

	explainer := newExplainer(ctx, cfg, st.EventRepo(), logger)
	if explainer == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured. Explanations will be unavailable.")
	}

	return app.Run(ctx, app.Options{
		Engine:      engine,
		Labels:      st.LabelRepo(),
		EventRepo:   st.EventRepo(),
		Explainer:   explainer,
		SessionSize: cfg.Quiz.SessionSize,

		StoreTimeout: cfg.Sheets.Timeout,
	})
}
