package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	mcontext "github.com/mazesearch/mazesearch/pkg/context"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/search"
)

// Report is the outcome of running several algorithms over one maze
type Report struct {
	ID       string          `json:"id" yaml:"id"`
	Maze     string          `json:"maze" yaml:"maze"`
	Results  []search.Result `json:"results" yaml:"results"`
	Duration time.Duration   `json:"duration_ns" yaml:"duration"`
}

// Solved counts the results that found a path
func (r *Report) Solved() int {
	n := 0
	for _, res := range r.Results {
		if res.Found() {
			n++
		}
	}
	return n
}

// Result returns the result for algorithm, if it was run
func (r *Report) Result(algorithm search.Algorithm) (search.Result, bool) {
	for _, res := range r.Results {
		if res.Algorithm == algorithm {
			return res, true
		}
	}
	return search.Result{}, false
}

// ResultHook observes every finished search, e.g. to record metrics
type ResultHook func(result search.Result, elapsed time.Duration)

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithParallelism limits how many searches run at once. Values below 1
// mean runtime.NumCPU().
func WithParallelism(n int) RunnerOption {
	return func(r *Runner) { r.parallelism = n }
}

// WithTrace logs every expansion at debug level
func WithTrace(enabled bool) RunnerOption {
	return func(r *Runner) { r.trace = enabled }
}

// WithResultHook installs a hook called once per finished search
func WithResultHook(hook ResultHook) RunnerOption {
	return func(r *Runner) { r.hooks = append(r.hooks, hook) }
}

// Runner runs independent searches over one grid concurrently. The grid is
// only read, so no locking is needed.
type Runner struct {
	logger      logger.Logger
	parallelism int
	trace       bool
	hooks       []ResultHook
}

// NewRunner creates a runner
func NewRunner(log logger.Logger, options ...RunnerOption) *Runner {
	r := &Runner{logger: log}
	for _, option := range options {
		option(r)
	}
	if r.parallelism < 1 {
		r.parallelism = runtime.NumCPU()
	}
	return r
}

// Run searches g with every algorithm in algorithms and returns the results
// in the same order. An empty list runs all of them.
func (r *Runner) Run(ctx context.Context, maze string, g *grid.Grid, algorithms []search.Algorithm) (*Report, error) {
	if len(algorithms) == 0 {
		algorithms = search.Algorithms()
	}
	if _, _, err := g.Endpoints(); err != nil {
		return nil, err
	}

	ctx = mcontext.WithMaze(mcontext.WithOperation(mcontext.EnrichContext(ctx), "search"), maze)
	log := logger.WithContext(ctx, r.logger)
	log.Debug("Starting searches", logger.WithField("algorithms", len(algorithms)))

	report := &Report{
		ID:      mcontext.GetRunID(ctx),
		Maze:    maze,
		Results: make([]search.Result, len(algorithms)),
	}

	group, gctx := NewSafeGroup(ctx, log)
	group.SetLimit(r.parallelism)

	for i, algorithm := range algorithms {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			algLog := log.WithAlgorithm(algorithm.Title())
			var options []search.Option
			if r.trace {
				options = append(options, search.WithObserver(func(s search.Step) {
					algLog.Debug("expand",
						logger.WithField("step", s.Index),
						logger.WithField("cell", s.Cell),
						logger.WithField("frontier", s.Frontier))
				}))
			}

			started := time.Now()
			result, err := search.New(g, options...).Run(algorithm)
			if err != nil {
				return fmt.Errorf("%s: %w", algorithm, err)
			}
			elapsed := time.Since(started)

			for _, hook := range r.hooks {
				hook(result, elapsed)
			}
			algLog.Debug("Search finished",
				logger.WithField("time_units", result.TimeUnits),
				logger.WithField("path_length", result.PathLength()))

			report.Results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Error("Search run failed", logger.WithField("error", err))
		return nil, err
	}

	report.Duration = mcontext.GetDuration(ctx)
	log.Info("Searches finished",
		logger.WithField("solved", fmt.Sprintf("%d/%d", report.Solved(), len(report.Results))))
	return report, nil
}
