package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opyruso/nw-leaderboard-sub000/encode"
	"github.com/opyruso/nw-leaderboard-sub000/expand"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Service:  s.serviceName,
		Sessions: s.SessionCount(),
	})
}

// handleCreate starts a session and loads its origin. A session whose
// initial load fails is not kept.
func (s *Server) handleCreate(c *gin.Context) {
	origin, ok := bindOrigin(c)
	if !ok {
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session_id", id)
	ctrl := expand.New(origin, s.fetcher, expand.WithLogger(logger))

	if err := ctrl.Load(c.Request.Context()); err != nil {
		s.loadFailed(c, err)
		return
	}

	s.addSession(id, ctrl)
	logger.Info("session created", "origin", origin)
	c.JSON(http.StatusCreated, graphResponse(id, ctrl))
}

func (s *Server) handleGet(c *gin.Context) {
	id := c.Param("session")
	ctrl, ok := s.lookup(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, graphResponse(id, ctrl))
}

// handleChangeOrigin discards the session's graph and loads a new origin.
func (s *Server) handleChangeOrigin(c *gin.Context) {
	id := c.Param("session")
	ctrl, ok := s.lookup(c, id)
	if !ok {
		return
	}
	origin, ok := bindOrigin(c)
	if !ok {
		return
	}

	if err := ctrl.Reset(origin); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}
	if err := ctrl.Load(c.Request.Context()); err != nil {
		s.loadFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, graphResponse(id, ctrl))
}

func (s *Server) handleTap(c *gin.Context) {
	id := c.Param("session")
	ctrl, ok := s.lookup(c, id)
	if !ok {
		return
	}

	action, err := ctrl.Tap(c.Request.Context(), c.Param("node"))
	switch {
	case action == expand.ActionPending:
		c.JSON(http.StatusAccepted, tapResponse(action, ctrl))
	case errors.Is(err, expand.ErrUnknownNode):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNodeNotFound})
	case errors.Is(err, expand.ErrNotLoaded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeNotLoaded})
	case errors.Is(err, expand.ErrSuperseded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeSuperseded})
	case errors.Is(err, expand.ErrExpansionFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: CodeExpansionFailed})
	case err != nil:
		s.logger.Error("tap failed", "session_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: CodeInternal})
	default:
		c.JSON(http.StatusOK, tapResponse(action, ctrl))
	}
}

func (s *Server) handleDismissNotice(c *gin.Context) {
	ctrl, ok := s.lookup(c, c.Param("session"))
	if !ok {
		return
	}

	ctrl.DismissNotice()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("session")
	if !s.removeSession(id) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found", Code: CodeSessionNotFound})
		return
	}

	s.logger.Info("session discarded", "session_id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) lookup(c *gin.Context, id string) (*expand.Controller, bool) {
	ctrl, ok := s.session(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found", Code: CodeSessionNotFound})
	}

	return ctrl, ok
}

func (s *Server) loadFailed(c *gin.Context, err error) {
	if errors.Is(err, expand.ErrInitialLoad) {
		s.logger.Warn("initial load failed", "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: CodeInitialLoadFailed})
		return
	}

	s.logger.Error("load failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: CodeInternal})
}

func bindOrigin(c *gin.Context) (string, bool) {
	var req OriginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return "", false
	}
	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "origin is required", Code: CodeInvalidRequest})
		return "", false
	}

	return origin, true
}

func graphResponse(id string, ctrl *expand.Controller) GraphResponse {
	return GraphResponse{
		SessionID: id,
		Status:    ctrl.Status(),
		Scene:     encode.Render(ctrl.Store()),
	}
}

func tapResponse(action expand.Action, ctrl *expand.Controller) TapResponse {
	return TapResponse{
		Action: action,
		Status: ctrl.Status(),
		Scene:  encode.Render(ctrl.Store()),
	}
}
