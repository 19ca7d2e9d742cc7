// Package search runs the classical graph searches over a configured maze.
//
// Every algorithm shares one expansion loop and differs only in how its
// frontier is ordered and whether a queued cell may be relaxed:
//
//   - BFS: FIFO queue, first discovery wins.
//   - DFS: LIFO stack, neighbors pushed in reverse so the lowest id pops first.
//   - UCS: min-heap on path cost, cheaper paths relax queued cells.
//   - BestFirst: min-heap on Manhattan distance to the goal, first discovery wins.
//   - AStar: min-heap on path cost plus Manhattan distance, with relaxation.
//
// Heap ties are broken by the lower cell id, so results are fully
// deterministic for a given maze.
package search

import (
	"errors"
	"fmt"

	"github.com/mazesearch/mazesearch/pkg/grid"
)

var (
	// ErrNotConfigured is returned when the maze has no start or goal.
	// It is the same sentinel as grid.ErrNotConfigured.
	ErrNotConfigured = grid.ErrNotConfigured

	// ErrUnknownAlgorithm is returned for names ParseAlgorithm cannot resolve
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)

// Maze is the read-only view of a grid the engine needs.
// *grid.Grid implements it.
type Maze interface {
	Size() int
	Endpoints() (start, goal int, err error)
	Neighbors(id int) ([]int, error)
	ManhattanDistance(id int) (int, error)
}

// Result is the outcome of one search.
type Result struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	// Visited lists cells in expansion order; no cell appears twice
	Visited []int `json:"visited" yaml:"visited"`
	// Path runs from start to goal inclusive, empty when unreachable
	Path      []int `json:"path" yaml:"path"`
	TimeUnits int   `json:"time_units" yaml:"time_units"`
}

// Found reports whether a path to the goal exists
func (r Result) Found() bool { return len(r.Path) > 0 }

// PathLength is the number of moves on the path, 0 when there is none
func (r Result) PathLength() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Step describes one expansion, reported to an Observer
type Step struct {
	Algorithm Algorithm
	Index     int
	Cell      int
	Frontier  int
}

// Observer receives every expansion as it happens
type Observer func(Step)

// Option configures an Engine
type Option func(*Engine)

// WithObserver installs an expansion observer.
func WithObserver(observer Observer) Option {
	return func(e *Engine) { e.observer = observer }
}

// Engine runs searches against a maze. It keeps no per-search state, so one
// Engine may serve concurrent calls.
type Engine struct {
	maze     Maze
	observer Observer
}

// New creates an engine over maze.
func New(maze Maze, options ...Option) *Engine {
	e := &Engine{maze: maze}
	for _, option := range options {
		option(e)
	}
	return e
}

// BFS runs breadth-first search.
func (e *Engine) BFS() (Result, error) { return e.Run(BFS) }

// DFS runs depth-first search.
func (e *Engine) DFS() (Result, error) { return e.Run(DFS) }

// UCS runs uniform-cost search with unit edge costs.
func (e *Engine) UCS() (Result, error) { return e.Run(UCS) }

// BestFirst runs greedy best-first search on Manhattan distance.
func (e *Engine) BestFirst() (Result, error) { return e.Run(BestFirst) }

// AStar runs A* with the Manhattan heuristic.
func (e *Engine) AStar() (Result, error) { return e.Run(AStar) }

// Run executes the named algorithm.
func (e *Engine) Run(algorithm Algorithm) (Result, error) {
	s, ok := strategies[algorithm]
	if !ok {
		return Result{}, fmt.Errorf("%q: %w", algorithm, ErrUnknownAlgorithm)
	}
	return e.expand(s)
}
