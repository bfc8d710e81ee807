// Package api exposes the diary over HTTP with gin.
//
// Every route except /health requires HTTP basic auth against the account
// service. Entry routes only ever see the authenticated user's entries; an
// entry owned by someone else answers 404 exactly like a missing one.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nhle/personal-diary/internal/account"
	"github.com/nhle/personal-diary/internal/diary"
)

// Server serves the diary API.
type Server struct {
	diary    *diary.Diary
	accounts *account.Service
	logger   *slog.Logger
	engine   *gin.Engine
}

// NewServer builds the router. A nil logger discards output.
func NewServer(d *diary.Diary, accounts *account.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registerValidations()

	s := &Server{
		diary:    d,
		accounts: accounts,
		logger:   logger,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	authed := s.engine.Group("/", s.basicAuth())
	authed.GET("/entries", s.listEntries)
	authed.POST("/entries", s.createEntry)
	authed.GET("/entries/:id", s.getEntry)
	authed.PUT("/entries/:id", s.updateEntry)
	authed.DELETE("/entries/:id", s.deleteEntry)
	authed.GET("/tags", s.listTags)
	authed.GET("/reminder", s.reminder)
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("api shutting down")
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
