package search

import (
	"fmt"
	"strings"
)

// Algorithm names one search strategy.
type Algorithm string

const (
	BFS       Algorithm = "bfs"
	DFS       Algorithm = "dfs"
	UCS       Algorithm = "ucs"
	BestFirst Algorithm = "best_first"
	AStar     Algorithm = "astar"
)

// Algorithms returns every strategy in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{BFS, DFS, UCS, BestFirst, AStar}
}

// Title returns the display name used in reports.
func (a Algorithm) Title() string {
	switch a {
	case BFS:
		return "BFS"
	case DFS:
		return "DFS"
	case UCS:
		return "UCS"
	case BestFirst:
		return "Best-First"
	case AStar:
		return "A*"
	default:
		return string(a)
	}
}

// Description is a one-line summary of the frontier discipline.
func (a Algorithm) Description() string {
	switch a {
	case BFS:
		return "breadth-first, FIFO queue"
	case DFS:
		return "depth-first, LIFO stack"
	case UCS:
		return "uniform-cost, min-heap on path cost"
	case BestFirst:
		return "greedy best-first, min-heap on Manhattan distance"
	case AStar:
		return "A*, min-heap on path cost plus Manhattan distance"
	default:
		return ""
	}
}

// ParseAlgorithm resolves a name or common alias.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first":
		return BFS, nil
	case "dfs", "depth-first":
		return DFS, nil
	case "ucs", "uniform-cost", "dijkstra":
		return UCS, nil
	case "best_first", "best-first", "bestfirst", "greedy":
		return BestFirst, nil
	case "astar", "a*", "a-star", "a_star":
		return AStar, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

// ParseAlgorithms resolves a list of names. An empty list means all of them.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Algorithms(), nil
	}
	out := make([]Algorithm, 0, len(names))
	for _, name := range names {
		a, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
