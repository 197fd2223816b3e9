package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/jlptquiz/internal/app"
	"github.com/abhisek/jlptquiz/internal/config"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/server"
	"github.com/abhisek/jlptquiz/internal/session"
	"github.com/abhisek/jlptquiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		logger := app.NewLogger(cfg.Log)

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
		logger.Info("database opened", "path", dbPath)

		engine, err := loadEngine(ctx, cfg)
		if err != nil {
			return err
		}

		srv := server.New(cfg.Server, serverDeps(ctx, cfg, st, engine, logger))
		return srv.Run(ctx)
	},
}

// serverDeps wires the API's collaborators. Label store calls share the
// sheet load timeout.
func serverDeps(ctx context.Context, cfg *config.Config, st *store.Store, engine *quiz.Engine, logger *slog.Logger) server.Deps {
	return server.Deps{
		Engine:       engine,
		Labels:       st.LabelRepo(),
		Sessions:     session.NewStore(cfg.Server.SessionTTL),
		Recorder:     session.NewRecorder(st.EventRepo()),
		Explainer:    newExplainer(ctx, cfg, st.EventRepo(), logger),
		Logger:       logger,
		SessionSize:  cfg.Quiz.SessionSize,
		StoreTimeout: cfg.Sheets.Timeout,
	}
}

func init() {
	serveCmd.Flags().String("host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides server.port)")
}
