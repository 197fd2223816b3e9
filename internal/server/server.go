// Package server exposes the quiz engine over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/jlptquiz/internal/config"
	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/explain"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/session"
)

// Deps are the collaborators the API serves. Engine, Labels and Sessions
// are required. A nil Explainer disables POST /api/explain; a nil
// Recorder skips history.
type Deps struct {
	Engine    *quiz.Engine
	Labels    knowledge.Store
	Sessions  *session.Store
	Recorder  *session.Recorder
	Explainer *explain.Service
	Logger    *slog.Logger

	// SessionSize is used when a session request gives no size.
	SessionSize int

	// StoreTimeout bounds each label read or write.
	StoreTimeout time.Duration
}

// Server is the HTTP front end.
type Server struct {
	deps   Deps
	cfg    config.ServerConfig
	echo   *echo.Echo
	limits *rateLimiter
}

// New builds the router and middleware chain.
func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.StoreTimeout <= 0 {
		deps.StoreTimeout = 15 * time.Second
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{deps: deps, cfg: cfg, echo: e}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.Recover())
	if cfg.RatePerSecond > 0 {
		s.limits = newRateLimiter(cfg.RatePerSecond, cfg.RateBurst)
		e.Use(s.limits.middleware())
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/health", s.health)

	api := e.Group("/api")

	api.GET("/grammar-question", s.grammarQuestion, s.requireData)
	api.GET("/sentence-question", s.sentenceQuestion, s.requireData)
	api.GET("/kanji-question", s.kanjiQuestion, s.requireData)
	api.GET("/vocabulary-question", s.vocabularyQuestion, s.requireData)
	api.POST("/check-kanji-answer", s.checkKanjiAnswer, s.requireData)

	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:token", s.getSession)
	api.POST("/sessions/:token/answers", s.answer)
	api.DELETE("/sessions/:token", s.deleteSession)

	api.GET("/labels/:kind", s.listLabels)
	api.PUT("/labels/:kind/:key", s.setLabel)

	api.POST("/explain", s.explain)
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on the configured address and sweeps idle sessions and rate
// limit buckets until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.deps.Sessions.Run(gctx, sweepInterval(s.cfg.SessionTTL))
		return nil
	})

	if s.limits != nil {
		g.Go(func() error {
			s.limits.run(gctx, limiterIdle, sweepInterval(limiterIdle), s.deps.Logger)
			return nil
		})
	}

	g.Go(func() error {
		s.deps.Logger.Info("server listening", "addr", s.cfg.Addr())
		if err := s.echo.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.deps.Logger.Info("server shutting down")
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sweepInterval runs the janitor a few times per TTL, capped at a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	iv := ttl / 4
	if iv <= 0 || iv > time.Minute {
		iv = time.Minute
	}
	return iv
}

type healthResponse struct {
	Status    string               `json:"status"`
	Loaded    bool                 `json:"loaded"`
	Rows      map[dataset.Kind]int `json:"rows"`
	Sessions  int                  `json:"sessions"`
	Explain   bool                 `json:"explain"`
	Timestamp time.Time            `json:"timestamp"`
}

func (s *Server) health(c echo.Context) error {
	lib := s.deps.Engine.Library()
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Loaded:    lib.Loaded(),
		Rows:      lib.Counts(),
		Sessions:  s.deps.Sessions.Len(),
		Explain:   s.deps.Explainer != nil,
		Timestamp: time.Now(),
	})
}

// storeCtx bounds a label store call to the configured timeout.
func (s *Server) storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), s.deps.StoreTimeout)
}

// labels reads the label set used to filter questions for mode.
func (s *Server) labels(c echo.Context, mode quiz.Mode) (knowledge.Set, error) {
	ctx, cancel := s.storeCtx(c)
	defer cancel()
	set, err := s.deps.Labels.ReadLabels(ctx, mode.Kind())
	if err != nil {
		return nil, fmt.Errorf("read %s labels: %w", mode.Kind(), err)
	}
	return set, nil
}
