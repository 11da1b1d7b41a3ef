// Package staticsrv serves the web client's compiled bundle with a
// single-page-app fallback to index.html.
package staticsrv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/config"
)

// ErrMissingBuild is returned by New when the build directory or its
// index.html does not exist.
var ErrMissingBuild = errors.New("static build not found")

const shutdownTimeout = 5 * time.Second

// Server serves files from a build directory.
type Server struct {
	cfg     config.ServerConfig
	root    string
	index   string
	engine  *gin.Engine
	logger  *zap.Logger
	metrics *metrics
}

// New validates the build directory and wires the routes.
func New(cfg config.ServerConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	root, err := filepath.Abs(cfg.BuildDir)
	if err != nil {
		return nil, fmt.Errorf("resolve build dir: %w", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMissingBuild, root)
	}
	index := filepath.Join(root, "index.html")
	if _, err := os.Stat(index); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingBuild, index)
	}

	gin.SetMode(cfg.Mode)
	s := &Server{
		cfg:     cfg,
		root:    root,
		index:   index,
		engine:  gin.New(),
		logger:  logger,
		metrics: newMetrics(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger(), s.metrics.middleware())
	s.engine.GET("/metrics", s.metrics.handler())
	s.engine.NoRoute(s.serveStatic)
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving static files", zap.String("root", s.root), zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveStatic returns the requested file when it exists and index.html for
// every other GET/HEAD route.
func (s *Server) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}

	// Cleaning against "/" keeps the result inside root.
	rel := path.Clean("/" + c.Request.URL.Path)
	file := filepath.Join(s.root, filepath.FromSlash(rel))
	if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
		c.File(file)
		return
	}

	s.logger.Debug("serving index.html fallback", zap.String("path", c.Request.URL.Path))
	c.File(s.index)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
