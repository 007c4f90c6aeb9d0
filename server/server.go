// Package server exposes graph sessions over HTTP for a browser renderer.
//
// Each session owns one expand.Controller. Every mutating endpoint answers
// with the session status and the rendered scene, so the renderer never has
// to diff stores itself.
//
//	POST   /v1/graphs                      create a session and load the origin
//	GET    /v1/graphs/:session             current status and scene
//	PUT    /v1/graphs/:session             change origin
//	POST   /v1/graphs/:session/taps/:node  tap a node
//	DELETE /v1/graphs/:session/notice      dismiss the expansion notice
//	DELETE /v1/graphs/:session             discard the session
//	GET    /healthz
//	GET    /metrics
//
// Sessions live in memory. One untouched for longer than the idle timeout is
// discarded by a sweep that runs alongside Run.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/opyruso/nw-leaderboard-sub000/expand"
)

// DefaultServiceName names the service in traces and health responses.
const DefaultServiceName = "nwgraph"

// DefaultIdleTimeout is how long a session may go untouched before it is
// discarded.
const DefaultIdleTimeout = 30 * time.Minute

const shutdownTimeout = 10 * time.Second

// Server holds graph sessions and the gin router serving them.
type Server struct {
	fetcher     expand.Fetcher
	logger      *slog.Logger
	serviceName string
	idleTimeout time.Duration
	now         func() time.Time
	router      *gin.Engine

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	ctrl     *expand.Controller
	lastSeen time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithServiceName sets the name reported to tracing and /healthz.
func WithServiceName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.serviceName = name
		}
	}
}

// WithIdleTimeout sets how long a session may go untouched before SweepIdle
// discards it. Zero keeps sessions until they are deleted.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.idleTimeout = d
		}
	}
}

// WithClock replaces time.Now for session bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Server whose sessions fetch neighborhoods through f.
func New(f expand.Fetcher, opts ...Option) *Server {
	s := &Server{
		fetcher:     f,
		logger:      slog.Default(),
		serviceName: DefaultServiceName,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(otelgin.Middleware(s.serviceName))
	s.router.Use(s.requestLogger())
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	graphs := s.router.Group("/v1/graphs")
	{
		graphs.POST("", s.handleCreate)
		graphs.GET("/:session", s.handleGet)
		graphs.PUT("/:session", s.handleChangeOrigin)
		graphs.POST("/:session/taps/:node", s.handleTap)
		graphs.DELETE("/:session/notice", s.handleDismissNotice)
		graphs.DELETE("/:session", s.handleDelete)
	}
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr, "service", s.serviceName)
		errCh <- srv.ListenAndServe()
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if s.idleTimeout > 0 {
		go s.sweepLoop(sweepCtx)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// SweepIdle discards every session untouched for longer than the idle
// timeout and returns how many were removed.
func (s *Server) SweepIdle() int {
	if s.idleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		sessionsActive.Dec()
		s.logger.Info("session expired", "session_id", id, "idle_timeout", s.idleTimeout)
	}

	return len(expired)
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(max(s.idleTimeout/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepIdle()
		}
	}
}

// session returns the controller for id and marks the session as used.
func (s *Server) session(id string) (*expand.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()

	return sess.ctrl, true
}

func (s *Server) addSession(id string, c *expand.Controller) {
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{ctrl: c, lastSeen: s.now()}
	s.mu.Unlock()
	sessionsActive.Inc()
}

func (s *Server) removeSession(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sessionsActive.Dec()
	}

	return ok
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		s.logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
