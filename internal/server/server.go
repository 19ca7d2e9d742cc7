// Package server exposes the search engine over HTTP
//
// @title       mazesearch API
// @version     1.0
// @description Classical graph searches over grid mazes.
// @BasePath    /
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mazesearch/mazesearch/internal/engine"
	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/interfaces"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/render"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultAddr is the listen address used when Options.Addr is empty
const DefaultAddr = ":8080"

const shutdownTimeout = 5 * time.Second

// Options configures a Server. Zero values pick the canonical maze, the PNG
// renderer and a private metrics registry.
type Options struct {
	Addr        string
	Maze        *types.MazeConfig
	Renderer    interfaces.Renderer
	Registry    *prometheus.Registry
	Logger      logger.Logger
	Parallelism int
}

// Server serves one maze and answers ad-hoc searches
type Server struct {
	engine   *gin.Engine
	srv      *http.Server
	logger   logger.Logger
	maze     *types.MazeConfig
	grid     *grid.Grid
	runner   *engine.Runner
	renderer interfaces.Renderer
	metrics  *Metrics
}

// New builds the gin engine and routes. It fails when the served maze is
// invalid.
func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Maze == nil {
		opts.Maze = config.NewManager().GetDefaultConfig()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewPNGRenderer(render.DefaultCellSize)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	g, err := config.BuildGrid(opts.Maze)
	if err != nil {
		return nil, fmt.Errorf("invalid maze %s: %w", opts.Maze.DisplayName(), err)
	}

	metrics := NewMetrics(opts.Registry)
	s := &Server{
		logger:   opts.Logger,
		maze:     opts.Maze,
		grid:     g,
		renderer: opts.Renderer,
		metrics:  metrics,
		runner: engine.NewRunner(opts.Logger,
			engine.WithParallelism(opts.Parallelism),
			engine.WithResultHook(metrics.Observe)),
	}

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(AccessLog(opts.Logger))
	s.engine = e
	s.routes(opts.Registry)

	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start serves until Shutdown is called; it then returns http.ErrServerClosed
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logger.WithField("addr", s.srv.Addr))
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
