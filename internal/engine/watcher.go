package engine

import (
	"context"
	"fmt"

	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/interfaces"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
)

// ReportSink receives every report produced by a Watcher with the grid it
// was searched on
type ReportSink func(*Report, *grid.Grid)

// ReloadSource is the part of config.ReloadManager a Watcher drives
type ReloadSource interface {
	AddCallback(config.ReloadCallback)
	StartWatching() error
	StopWatching() error
	TriggerReload()
	GetPath() string
}

// Watcher re-runs the searches every time the maze file changes
type Watcher struct {
	source   ReloadSource
	runner   *Runner
	notifier interfaces.Notifier
	sink     ReportSink
	logger   logger.Logger
}

// NewWatcher wires a reload source to a runner. notifier and sink may be nil.
func NewWatcher(source ReloadSource, runner *Runner, notifier interfaces.Notifier, sink ReportSink, log logger.Logger) *Watcher {
	return &Watcher{
		source:   source,
		runner:   runner,
		notifier: notifier,
		sink:     sink,
		logger:   log,
	}
}

// Watch runs the searches once for the current file, then again after every
// change, until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	w.source.AddCallback(func(cfg *types.MazeConfig, err error) {
		w.handle(ctx, cfg, err)
	})

	if err := w.source.StartWatching(); err != nil {
		return fmt.Errorf("failed to watch maze: %w", err)
	}
	defer w.source.StopWatching()

	w.logger.Info("Watching maze", logger.WithField("path", w.source.GetPath()))
	w.source.TriggerReload()

	<-ctx.Done()
	w.logger.Info("Stopped watching maze")
	return nil
}

func (w *Watcher) handle(ctx context.Context, cfg *types.MazeConfig, err error) {
	if ctx.Err() != nil {
		return
	}

	name := w.source.GetPath()
	if cfg != nil {
		name = cfg.DisplayName()
	}
	if err != nil {
		w.fail(name, err)
		return
	}

	g, err := config.BuildGrid(cfg)
	if err != nil {
		w.fail(name, err)
		return
	}
	algorithms, err := search.ParseAlgorithms(cfg.Algorithms)
	if err != nil {
		w.fail(name, err)
		return
	}

	report, err := w.runner.Run(ctx, name, g, algorithms)
	if err != nil {
		w.fail(name, err)
		return
	}

	if w.sink != nil {
		w.sink(report, g)
	}
	w.notify(report)
}

func (w *Watcher) fail(name string, err error) {
	w.logger.Error("Maze run failed", logger.WithField("maze", name), logger.WithField("error", err))
	if w.notifier != nil {
		w.notifier.NotifyError(name, err)
	}
}

// notify relies on every algorithm being complete: on one maze they either
// all reach the goal or none does.
func (w *Watcher) notify(report *Report) {
	if w.notifier == nil || len(report.Results) == 0 {
		return
	}

	switch report.Solved() {
	case len(report.Results):
		w.notifier.NotifySolved(report.Maze, len(report.Results), report.Duration)
	case 0:
		w.notifier.NotifyUnreachable(report.Maze, report.Results[0].TimeUnits)
	}
}
