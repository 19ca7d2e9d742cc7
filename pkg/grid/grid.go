// Package grid models the fixed maze topology: cells, their classification,
// and the adjacency and heuristic queries the search engine relies on.
package grid

import "fmt"

// Default dimensions of the sample maze
const (
	DefaultWidth  = 8
	DefaultHeight = 8
)

// MaxCells bounds width*height. Larger grids are rejected with
// ErrInvalidDimensions.
const MaxCells = 1 << 20

// CellType classifies a cell
type CellType int

const (
	CellEmpty CellType = iota
	CellStart
	CellGoal
	CellBarrier
)

func (t CellType) String() string {
	switch t {
	case CellStart:
		return "start"
	case CellGoal:
		return "goal"
	case CellBarrier:
		return "barrier"
	default:
		return "empty"
	}
}

// Cell is one grid position. X is the column, Y the row.
type Cell struct {
	ID   int
	X    int
	Y    int
	Type CellType
}

// Grid is a width×height maze. It is configured once and read-only afterwards,
// so concurrent readers need no locking.
type Grid struct {
	width    int
	height   int
	cells    []Cell
	barrier  []bool
	start    int
	goal     int
	isConfig bool
}

// New allocates a grid with every cell empty.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if width > MaxCells/height {
		return nil, fmt.Errorf("%dx%d exceeds %d cells: %w", width, height, MaxCells, ErrInvalidDimensions)
	}

	g := &Grid{
		width:   width,
		height:  height,
		cells:   make([]Cell, width*height),
		barrier: make([]bool, width*height),
		start:   -1,
		goal:    -1,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := y*width + x
			g.cells[id] = Cell{ID: id, X: x, Y: y}
		}
	}
	return g, nil
}

// NewDefault returns an empty 8x8 grid.
func NewDefault() *Grid {
	g, _ := New(DefaultWidth, DefaultHeight)
	return g
}

// Configure assigns the start, goal and barrier cells. All ids are checked
// before anything is written, so a failed call leaves the grid unchanged.
// Duplicate barrier ids are allowed.
func (g *Grid) Configure(start, goal int, barriers []int) error {
	if g.isConfig {
		return ErrAlreadyConfigured
	}
	if err := g.checkID(start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := g.checkID(goal); err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	if start == goal {
		return fmt.Errorf("start and goal are both cell %d: %w", start, ErrCellConflict)
	}
	for _, id := range barriers {
		if err := g.checkID(id); err != nil {
			return fmt.Errorf("barrier: %w", err)
		}
		if id == start {
			return fmt.Errorf("barrier on start cell %d: %w", id, ErrCellConflict)
		}
		if id == goal {
			return fmt.Errorf("barrier on goal cell %d: %w", id, ErrCellConflict)
		}
	}

	g.start, g.goal = start, goal
	g.cells[start].Type = CellStart
	g.cells[goal].Type = CellGoal
	for _, id := range barriers {
		g.barrier[id] = true
		g.cells[id].Type = CellBarrier
	}
	g.isConfig = true
	return nil
}

// Neighbors returns the orthogonal neighbors of id that are not barriers,
// in strictly increasing id order.
func (g *Grid) Neighbors(id int) ([]int, error) {
	if err := g.checkID(id); err != nil {
		return nil, err
	}
	return g.AppendNeighbors(make([]int, 0, 4), id), nil
}

// AppendNeighbors appends the neighbors of a valid id to dst and returns it.
// Up, left, right and down already come out in ascending id order.
func (g *Grid) AppendNeighbors(dst []int, id int) []int {
	x, y := id%g.width, id/g.width
	if y > 0 && !g.barrier[id-g.width] {
		dst = append(dst, id-g.width)
	}
	if x > 0 && !g.barrier[id-1] {
		dst = append(dst, id-1)
	}
	if x < g.width-1 && !g.barrier[id+1] {
		dst = append(dst, id+1)
	}
	if y < g.height-1 && !g.barrier[id+g.width] {
		dst = append(dst, id+g.width)
	}
	return dst
}

// ManhattanDistance returns |dx|+|dy| between id and the goal.
func (g *Grid) ManhattanDistance(id int) (int, error) {
	if !g.isConfig {
		return 0, ErrNotConfigured
	}
	if err := g.checkID(id); err != nil {
		return 0, err
	}
	c, goal := g.cells[id], g.cells[g.goal]
	return abs(c.X-goal.X) + abs(c.Y-goal.Y), nil
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Size returns the number of cells
func (g *Grid) Size() int { return len(g.cells) }

// Configured reports whether start and goal have been set
func (g *Grid) Configured() bool { return g.isConfig }

// Start returns the start id, or false before Configure
func (g *Grid) Start() (int, bool) { return g.start, g.isConfig }

// Goal returns the goal id, or false before Configure
func (g *Grid) Goal() (int, bool) { return g.goal, g.isConfig }

// Endpoints returns start and goal, or ErrNotConfigured.
func (g *Grid) Endpoints() (start, goal int, err error) {
	if !g.isConfig {
		return -1, -1, ErrNotConfigured
	}
	return g.start, g.goal, nil
}

// Cell returns the cell with the given id
func (g *Grid) Cell(id int) (Cell, error) {
	if err := g.checkID(id); err != nil {
		return Cell{}, err
	}
	return g.cells[id], nil
}

// ID converts column x and row y to a cell id
func (g *Grid) ID(x, y int) (int, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return -1, fmt.Errorf("(%d,%d): %w", x, y, ErrInvalidCellID)
	}
	return y*g.width + x, nil
}

// IsBarrier reports whether id is a barrier. Out-of-range ids are not.
func (g *Grid) IsBarrier(id int) bool {
	return id >= 0 && id < len(g.barrier) && g.barrier[id]
}

// Barriers returns the barrier ids in ascending order
func (g *Grid) Barriers() []int {
	var out []int
	for id, b := range g.barrier {
		if b {
			out = append(out, id)
		}
	}
	return out
}

func (g *Grid) checkID(id int) error {
	if id < 0 || id >= len(g.cells) {
		return fmt.Errorf("%d not in [0,%d): %w", id, len(g.cells), ErrInvalidCellID)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
