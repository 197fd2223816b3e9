package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
)

type labelsResponse struct {
	Kind   dataset.Kind            `json:"kind"`
	Labels knowledge.Set           `json:"labels"`
	Counts map[knowledge.Label]int `json:"counts"`
}

func (s *Server) listLabels(c echo.Context) error {
	kind, err := dataset.ParseKind(c.Param("kind"))
	if err != nil {
		return badRequest(err.Error())
	}

	ctx, cancel := s.storeCtx(c)
	defer cancel()
	set, err := s.deps.Labels.ReadLabels(ctx, kind)
	if err != nil {
		return err
	}
	if set == nil {
		set = knowledge.Set{}
	}
	return c.JSON(http.StatusOK, labelsResponse{Kind: kind, Labels: set, Counts: set.Counts()})
}

type setLabelRequest struct {
	Label string `json:"label"`
}

type setLabelResponse struct {
	Kind  dataset.Kind    `json:"kind"`
	Key   string          `json:"key"`
	Label knowledge.Label `json:"label"`
}

// setLabel stores a label for one item. The label "none" clears it.
func (s *Server) setLabel(c echo.Context) error {
	kind, err := dataset.ParseKind(c.Param("kind"))
	if err != nil {
		return badRequest(err.Error())
	}
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil || strings.TrimSpace(key) == "" {
		return badRequest("invalid item key")
	}

	var req setLabelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("malformed request body")
	}
	label, err := knowledge.ParseLabel(req.Label)
	if err != nil {
		return badRequest(err.Error())
	}

	ctx, cancel := s.storeCtx(c)
	defer cancel()
	if err := s.deps.Labels.SetLabel(ctx, kind, key, label); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setLabelResponse{Kind: kind, Key: key, Label: label})
}
