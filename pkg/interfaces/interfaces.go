// Package interfaces holds the small abstractions shared across packages so
// they can be replaced with doubles in tests
package interfaces

import (
	"io"
	"time"

	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/search"
)

//go:generate mockgen -destination=../mocks/interfaces_mock.go -package=mocks github.com/mazesearch/mazesearch/pkg/interfaces Notifier,Renderer

// Notifier tells the user about the outcome of a watched run
type Notifier interface {
	// NotifySolved is sent when every algorithm reached the goal
	NotifySolved(maze string, algorithms int, elapsed time.Duration)
	// NotifyUnreachable is sent when no algorithm reached the goal
	NotifyUnreachable(maze string, visited int)
	// NotifyError is sent when the maze could not be loaded or searched
	NotifyError(maze string, err error)
}

// Renderer draws one search result over its grid
type Renderer interface {
	Render(w io.Writer, g *grid.Grid, result search.Result) error
}
