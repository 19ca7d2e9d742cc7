package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AlgorithmInfo describes one algorithm in /api/algorithms
type AlgorithmInfo struct {
	Name        search.Algorithm `json:"name"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

func (s *Server) routes(reg *prometheus.Registry) {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := s.engine.Group("/api")
	api.GET("/algorithms", s.listAlgorithms)
	api.GET("/maze", s.getMaze)
	api.GET("/search/:algorithm", s.searchServed)
	api.POST("/search", s.searchPosted)
	api.GET("/render/:file", s.renderServed)
}

// listAlgorithms godoc
// @Summary     List search algorithms
// @Produce     json
// @Success     200 {array} AlgorithmInfo
// @Router      /api/algorithms [get]
func (s *Server) listAlgorithms(c *gin.Context) {
	algorithms := search.Algorithms()
	out := make([]AlgorithmInfo, 0, len(algorithms))
	for _, a := range algorithms {
		out = append(out, AlgorithmInfo{Name: a, Title: a.Title(), Description: a.Description()})
	}
	c.JSON(http.StatusOK, out)
}

// getMaze godoc
// @Summary     The served maze definition
// @Produce     json
// @Success     200 {object} types.MazeConfig
// @Router      /api/maze [get]
func (s *Server) getMaze(c *gin.Context) {
	c.JSON(http.StatusOK, s.maze)
}

// searchServed runs one algorithm over the served maze
//
// @Summary     Search the served maze
// @Produce     json
// @Param       algorithm path string true "bfs, dfs, ucs, best_first or astar"
// @Success     200 {object} search.Result
// @Failure     400 {object} map[string]string
// @Router      /api/search/{algorithm} [get]
func (s *Server) searchServed(c *gin.Context) {
	result, ok := s.searchOne(c, c.Param("algorithm"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// searchPosted runs the algorithms named in a posted maze, or all of them
//
// @Summary     Search a posted maze
// @Accept      json
// @Produce     json
// @Param       maze body types.MazeConfig true "maze definition"
// @Success     200 {object} engine.Report
// @Failure     400 {object} map[string]string
// @Router      /api/search [post]
func (s *Server) searchPosted(c *gin.Context) {
	var cfg types.MazeConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	algorithms, err := search.ParseAlgorithms(cfg.Algorithms)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	g, err := config.BuildGrid(&cfg)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	report, err := s.runner.Run(c.Request.Context(), cfg.DisplayName(), g, algorithms)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// renderServed answers /api/render/<algorithm>.png
//
// @Summary     Draw a search over the served maze
// @Produce     png
// @Param       file path string true "<algorithm>.png"
// @Success     200 {file} binary
// @Failure     400 {object} map[string]string
// @Router      /api/render/{file} [get]
func (s *Server) renderServed(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		s.fail(c, http.StatusNotFound, errors.New("render target must end in .png"))
		return
	}

	result, ok := s.searchOne(c, name)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, s.grid, result); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) searchOne(c *gin.Context, name string) (search.Result, bool) {
	algorithm, err := search.ParseAlgorithm(name)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return search.Result{}, false
	}

	report, err := s.runner.Run(c.Request.Context(), s.maze.DisplayName(), s.grid, []search.Algorithm{algorithm})
	if err != nil {
		s.fail(c, statusFor(err), err)
		return search.Result{}, false
	}
	return report.Results[0], true
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, grid.ErrInvalidDimensions),
		errors.Is(err, grid.ErrInvalidCellID),
		errors.Is(err, grid.ErrCellConflict),
		errors.Is(err, grid.ErrNotConfigured),
		errors.Is(err, search.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
