package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/jlptquiz/internal/explain"
	"github.com/abhisek/jlptquiz/internal/llm"
	"github.com/abhisek/jlptquiz/internal/quiz"
)

type explainRequest struct {
	Mode    string `json:"mode"`
	Prompt  string `json:"prompt"`
	Example string `json:"example"`
	Correct string `json:"correct"`
	Given   string `json:"given"`
}

func (s *Server) explain(c echo.Context) error {
	if s.deps.Explainer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "explanations are not configured")
	}

	var req explainRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("malformed request body")
	}
	mode, err := quiz.ParseMode(req.Mode)
	if err != nil {
		return badRequest(err.Error())
	}
	if req.Prompt == "" || req.Correct == "" {
		return badRequest("prompt and correct are required")
	}

	out, err := s.deps.Explainer.Explain(c.Request().Context(), explain.Input{
		Mode:    mode,
		Prompt:  req.Prompt,
		Example: req.Example,
		Correct: req.Correct,
		Given:   req.Given,
	})
	if err != nil {
		return explainError(err)
	}
	return c.JSON(http.StatusOK, out)
}

// explainError turns provider failures into a 502, rate limits into a 429.
func explainError(err error) error {
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "explanation rate limited, try again later").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadGateway, "explanation failed: "+err.Error()).SetInternal(err)
}
