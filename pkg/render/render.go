// Package render draws search results over their grid, either as text for a
// terminal or as a PNG image.
package render

import (
	"strings"

	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/search"
)

// Mark classifies a cell for drawing. Later marks win: a path cell is also
// visited, the start is also on the path.
type Mark int

const (
	MarkEmpty Mark = iota
	MarkVisited
	MarkPath
	MarkBarrier
	MarkStart
	MarkGoal
)

// Marks returns one Mark per cell id
func Marks(g *grid.Grid, result search.Result) []Mark {
	marks := make([]Mark, g.Size())
	for _, id := range result.Visited {
		if id >= 0 && id < len(marks) {
			marks[id] = MarkVisited
		}
	}
	for _, id := range result.Path {
		if id >= 0 && id < len(marks) {
			marks[id] = MarkPath
		}
	}
	for _, id := range g.Barriers() {
		marks[id] = MarkBarrier
	}
	if start, ok := g.Start(); ok {
		marks[start] = MarkStart
	}
	if goal, ok := g.Goal(); ok {
		marks[goal] = MarkGoal
	}
	return marks
}

// Title is the heading used for an algorithm's picture
func Title(algorithm search.Algorithm) string {
	return algorithm.Title() + " Search Results"
}

// FileName turns a title into a file name: lower case, spaces become
// underscores, "*" becomes "star".
func FileName(title string) string {
	name := strings.ToLower(title)
	name = strings.ReplaceAll(name, "*", "star")
	name = strings.ReplaceAll(name, " ", "_")
	return name + ".png"
}
