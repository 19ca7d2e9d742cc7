package search

import "fmt"

// ordering decides the key a cell is queued under.
type ordering int

const (
	orderNone ordering = iota
	orderCost
	orderHeuristic
	orderCostPlusHeuristic
)

// strategy is everything that distinguishes one algorithm from another.
type strategy struct {
	algorithm   Algorithm
	newFrontier func(capacity int) frontier
	order       ordering
	// relax lets a strictly cheaper path overwrite parent and cost of a
	// queued cell
	relax bool
	// reverse pushes neighbors in descending id order
	reverse bool
}

var strategies = map[Algorithm]strategy{
	BFS:       {algorithm: BFS, newFrontier: newQueueFrontier, order: orderNone},
	DFS:       {algorithm: DFS, newFrontier: newStackFrontier, order: orderNone, reverse: true},
	UCS:       {algorithm: UCS, newFrontier: newPriorityFrontier, order: orderCost, relax: true},
	BestFirst: {algorithm: BestFirst, newFrontier: newPriorityFrontier, order: orderHeuristic},
	AStar:     {algorithm: AStar, newFrontier: newPriorityFrontier, order: orderCostPlusHeuristic, relax: true},
}

// expand is the shared search loop. Parent and cost are dense arrays indexed
// by cell id; -1 marks "no parent".
func (e *Engine) expand(s strategy) (Result, error) {
	start, goal, err := e.maze.Endpoints()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", s.algorithm, err)
	}

	size := e.maze.Size()
	parent := make([]int, size)
	cost := make([]int, size)
	seen := make([]bool, size)
	closed := make([]bool, size)
	for i := range parent {
		parent[i] = -1
	}

	priority := func(id, g int) (int, error) {
		switch s.order {
		case orderCost:
			return g, nil
		case orderHeuristic:
			return e.maze.ManhattanDistance(id)
		case orderCostPlusHeuristic:
			h, err := e.maze.ManhattanDistance(id)
			return g + h, err
		default:
			return 0, nil
		}
	}

	open := s.newFrontier(size)
	p, err := priority(start, 0)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", s.algorithm, err)
	}
	open.Push(start, p)
	seen[start] = true

	result := Result{Algorithm: s.algorithm, Visited: []int{}, Path: []int{}}
	for open.Len() > 0 {
		current := open.Pop()
		closed[current] = true
		result.Visited = append(result.Visited, current)
		result.TimeUnits++

		if e.observer != nil {
			e.observer(Step{
				Algorithm: s.algorithm,
				Index:     result.TimeUnits,
				Cell:      current,
				Frontier:  open.Len(),
			})
		}

		if current == goal {
			break
		}

		neighbors, err := e.maze.Neighbors(current)
		if err != nil {
			return Result{}, fmt.Errorf("%s: expanding %d: %w", s.algorithm, current, err)
		}

		for i := range neighbors {
			next := neighbors[i]
			if s.reverse {
				next = neighbors[len(neighbors)-1-i]
			}
			g := cost[current] + 1

			switch {
			case !seen[next]:
				seen[next] = true
			case s.relax && !closed[next] && g < cost[next]:
			default:
				continue
			}

			parent[next] = current
			cost[next] = g
			p, err := priority(next, g)
			if err != nil {
				return Result{}, fmt.Errorf("%s: %w", s.algorithm, err)
			}
			// Push on an already queued cell updates it in place
			open.Push(next, p)
		}
	}

	if seen[goal] {
		result.Path = reconstructPath(parent, start, goal)
	}
	return result, nil
}

// reconstructPath walks parent links back from goal and reverses them.
func reconstructPath(parent []int, start, goal int) []int {
	path := []int{goal}
	for current := goal; current != start; {
		current = parent[current]
		if current < 0 {
			return []int{}
		}
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
