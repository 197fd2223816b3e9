package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/session"
)

const dataNotLoaded = "Data not loaded. Please restart the app."

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrDataUnavailable):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrInvalidIndex):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrInvalidSessionState):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// handleError renders every handler error as {"error": message}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(he.Code)
		}
	}
	if status >= http.StatusInternalServerError {
		s.deps.Logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorResponse{Error: msg})
	}
	if err != nil {
		s.deps.Logger.Warn("write error response", "error", err)
	}
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
