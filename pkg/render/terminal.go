package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/interfaces"
	"github.com/mazesearch/mazesearch/pkg/search"
)

// TerminalRenderer prints one line per grid row:
//
//	S start   G goal   # barrier   * path   . visited
type TerminalRenderer struct {
	colors bool
	styles map[Mark]*color.Color
}

var _ interfaces.Renderer = (*TerminalRenderer)(nil)

var symbols = map[Mark]string{
	MarkEmpty:   " ",
	MarkVisited: ".",
	MarkPath:    "*",
	MarkBarrier: "#",
	MarkStart:   "S",
	MarkGoal:    "G",
}

// NewTerminalRenderer creates a renderer; colors adds ANSI styling
func NewTerminalRenderer(colors bool) *TerminalRenderer {
	styles := map[Mark]*color.Color{
		MarkVisited: color.New(color.FgBlue, color.Faint),
		MarkPath:    color.New(color.FgGreen, color.Bold),
		MarkBarrier: color.New(color.FgWhite, color.BgBlack),
		MarkStart:   color.New(color.FgYellow, color.Bold),
		MarkGoal:    color.New(color.FgRed, color.Bold),
	}
	for _, style := range styles {
		// honor the caller's choice even when stdout is not a terminal
		if colors {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
	}
	return &TerminalRenderer{colors: colors, styles: styles}
}

// Render writes the grid with result overlaid
func (r *TerminalRenderer) Render(w io.Writer, g *grid.Grid, result search.Result) error {
	marks := Marks(g, result)
	out := bufio.NewWriter(w)

	cells := make([]string, g.Width())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cells[x] = r.symbol(marks[y*g.Width()+x])
		}
		if _, err := out.WriteString(strings.TrimRight(strings.Join(cells, " "), " ") + "\n"); err != nil {
			return err
		}
	}
	return out.Flush()
}

func (r *TerminalRenderer) symbol(m Mark) string {
	s := symbols[m]
	if style, ok := r.styles[m]; ok && r.colors {
		return style.Sprint(s)
	}
	return s
}
