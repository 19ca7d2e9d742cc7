// Package validation reports problems with a maze definition before it is
// searched
package validation

import (
	"fmt"

	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
)

// DenseBarrierRatio is the barrier share above which a warning is raised
const DenseBarrierRatio = 0.5

// ValidationLevel represents finding severity
type ValidationLevel string

const (
	ValidationLevelError   ValidationLevel = "error"
	ValidationLevelWarning ValidationLevel = "warning"
	ValidationLevelInfo    ValidationLevel = "info"
)

// ValidationError is one finding
type ValidationError struct {
	Maze    string          `json:"maze" yaml:"maze"`
	Field   string          `json:"field" yaml:"field"`
	Message string          `json:"message" yaml:"message"`
	Level   ValidationLevel `json:"level" yaml:"level"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s.%s: %s", e.Level, e.Maze, e.Field, e.Message)
}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []ValidationError `json:"findings" yaml:"findings"`
}

// AddError adds a finding; error-level findings invalidate the result
func (r *ValidationResult) AddError(maze, field, message string, level ValidationLevel) {
	r.Errors = append(r.Errors, ValidationError{
		Maze:    maze,
		Field:   field,
		Message: message,
		Level:   level,
	})
	if level == ValidationLevelError {
		r.Valid = false
	}
}

// Count returns the number of findings at level
func (r *ValidationResult) Count(level ValidationLevel) int {
	n := 0
	for _, e := range r.Errors {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MazeValidator validates maze definitions
type MazeValidator struct{}

// NewMazeValidator creates a new maze validator
func NewMazeValidator() *MazeValidator {
	return &MazeValidator{}
}

// Validate reports every structural error in cfg rather than stopping at the
// first one. Reachability is only checked once the maze is structurally sound.
func (v *MazeValidator) Validate(cfg *types.MazeConfig) *ValidationResult {
	result := &ValidationResult{Valid: true}
	name := cfg.DisplayName()

	v.validateDimensions(name, cfg, result)
	if !result.Valid {
		return result
	}
	v.validateEndpoints(name, cfg, result)
	v.validateBarriers(name, cfg, result)
	v.validateAlgorithms(name, cfg, result)
	if !result.Valid {
		return result
	}

	v.validateReachability(name, cfg, result)
	return result
}

func (v *MazeValidator) validateDimensions(name string, cfg *types.MazeConfig, result *ValidationResult) {
	if cfg.Width <= 0 {
		result.AddError(name, "width", fmt.Sprintf("width must be positive, got %d", cfg.Width), ValidationLevelError)
	}
	if cfg.Height <= 0 {
		result.AddError(name, "height", fmt.Sprintf("height must be positive, got %d", cfg.Height), ValidationLevelError)
	}
	if cfg.Width > 0 && cfg.Height > 0 && cfg.Width > grid.MaxCells/cfg.Height {
		result.AddError(name, "width", fmt.Sprintf("%dx%d exceeds %d cells", cfg.Width, cfg.Height, grid.MaxCells), ValidationLevelError)
	}
}

func (v *MazeValidator) validateEndpoints(name string, cfg *types.MazeConfig, result *ValidationResult) {
	size := cfg.Width * cfg.Height
	if cfg.Start < 0 || cfg.Start >= size {
		result.AddError(name, "start", fmt.Sprintf("cell %d outside [0, %d)", cfg.Start, size), ValidationLevelError)
	}
	if cfg.Goal < 0 || cfg.Goal >= size {
		result.AddError(name, "goal", fmt.Sprintf("cell %d outside [0, %d)", cfg.Goal, size), ValidationLevelError)
	}
	if cfg.Start == cfg.Goal {
		result.AddError(name, "goal", "start and goal are the same cell", ValidationLevelError)
	}
}

func (v *MazeValidator) validateBarriers(name string, cfg *types.MazeConfig, result *ValidationResult) {
	size := cfg.Width * cfg.Height
	seen := make(map[int]bool, len(cfg.Barriers))

	for _, id := range cfg.Barriers {
		switch {
		case id < 0 || id >= size:
			result.AddError(name, "barriers", fmt.Sprintf("cell %d outside [0, %d)", id, size), ValidationLevelError)
		case id == cfg.Start:
			result.AddError(name, "barriers", fmt.Sprintf("cell %d is the start cell", id), ValidationLevelError)
		case id == cfg.Goal:
			result.AddError(name, "barriers", fmt.Sprintf("cell %d is the goal cell", id), ValidationLevelError)
		case seen[id]:
			result.AddError(name, "barriers", fmt.Sprintf("cell %d listed more than once", id), ValidationLevelWarning)
		}
		seen[id] = true
	}

	if size > 0 && float64(len(seen)) > DenseBarrierRatio*float64(size) {
		result.AddError(name, "barriers",
			fmt.Sprintf("%d of %d cells are barriers", len(seen), size), ValidationLevelWarning)
	}
}

func (v *MazeValidator) validateAlgorithms(name string, cfg *types.MazeConfig, result *ValidationResult) {
	seen := make(map[search.Algorithm]bool, len(cfg.Algorithms))
	for _, raw := range cfg.Algorithms {
		a, err := search.ParseAlgorithm(raw)
		if err != nil {
			result.AddError(name, "algorithms", err.Error(), ValidationLevelError)
			continue
		}
		if seen[a] {
			result.AddError(name, "algorithms", fmt.Sprintf("%s listed more than once", a), ValidationLevelWarning)
		}
		seen[a] = true
	}
}

// validateReachability runs BFS: it finds the shortest path when one exists
// and otherwise expands exactly the start cell's component.
func (v *MazeValidator) validateReachability(name string, cfg *types.MazeConfig, result *ValidationResult) {
	g, err := config.BuildGrid(cfg)
	if err != nil {
		result.AddError(name, "maze", err.Error(), ValidationLevelError)
		return
	}

	r, err := search.New(g).BFS()
	if err != nil {
		result.AddError(name, "maze", err.Error(), ValidationLevelError)
		return
	}

	if !r.Found() {
		result.AddError(name, "goal",
			fmt.Sprintf("goal is unreachable; only %d of %d open cells can be reached from start",
				len(r.Visited), openCells(g)),
			ValidationLevelWarning)
		return
	}

	result.AddError(name, "goal",
		fmt.Sprintf("shortest path is %d moves, lower bound %d", r.PathLength(), manhattan(g)),
		ValidationLevelInfo)
}

func openCells(g *grid.Grid) int {
	return g.Size() - len(g.Barriers())
}

func manhattan(g *grid.Grid) int {
	start, _ := g.Start()
	d, _ := g.ManhattanDistance(start)
	return d
}
