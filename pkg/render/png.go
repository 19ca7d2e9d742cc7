package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/interfaces"
	"github.com/mazesearch/mazesearch/pkg/search"
)

// DefaultCellSize is the side of one cell in pixels
const DefaultCellSize = 48

const titleHeight = 28

var (
	backgroundColor = color.White
	barrierColor    = color.Black
	gridLineColor   = color.RGBA{200, 200, 200, 255}
	visitedColor    = color.RGBA{0, 0, 255, 77}
	pathColor       = color.RGBA{0, 128, 0, 255}
	startColor      = color.RGBA{255, 215, 0, 255}
	goalColor       = color.RGBA{220, 0, 0, 255}
	textColor       = color.Black
)

// PNGRenderer draws a result as an image: barriers as black squares,
// visited cells as translucent blue dots, the path as a green line, start
// and goal as yellow and red discs.
type PNGRenderer struct {
	CellSize int
}

var _ interfaces.Renderer = (*PNGRenderer)(nil)

// NewPNGRenderer creates a renderer with cellSize pixels per cell; values
// below 1 use DefaultCellSize.
func NewPNGRenderer(cellSize int) *PNGRenderer {
	if cellSize < 1 {
		cellSize = DefaultCellSize
	}
	return &PNGRenderer{CellSize: cellSize}
}

// Render encodes the picture as PNG to w, titled after the algorithm
func (r *PNGRenderer) Render(w io.Writer, g *grid.Grid, result search.Result) error {
	return r.Draw(g, result, Title(result.Algorithm)).EncodePNG(w)
}

// Save writes the picture to dir under FileName(title) and returns the path
func (r *PNGRenderer) Save(dir string, g *grid.Grid, result search.Result) (string, error) {
	title := Title(result.Algorithm)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(title))
	if err := r.Draw(g, result, title).SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// Draw paints the picture into a new context
func (r *PNGRenderer) Draw(g *grid.Grid, result search.Result, title string) *gg.Context {
	size := float64(r.CellSize)
	width := g.Width() * r.CellSize
	height := g.Height()*r.CellSize + titleHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(width)/2, titleHeight/2, 0.5, 0.5)

	// every cell position is offset below the title
	center := func(id int) (float64, float64) {
		c, _ := g.Cell(id)
		return float64(c.X)*size + size/2, float64(c.Y)*size + size/2 + titleHeight
	}

	dc.SetColor(barrierColor)
	for _, id := range g.Barriers() {
		c, _ := g.Cell(id)
		dc.DrawRectangle(float64(c.X)*size, float64(c.Y)*size+titleHeight, size, size)
		dc.Fill()
	}

	dc.SetColor(gridLineColor)
	dc.SetLineWidth(1)
	for x := 0; x <= g.Width(); x++ {
		dc.DrawLine(float64(x)*size, titleHeight, float64(x)*size, float64(height))
	}
	for y := 0; y <= g.Height(); y++ {
		dc.DrawLine(0, float64(y)*size+titleHeight, float64(width), float64(y)*size+titleHeight)
	}
	dc.Stroke()

	dc.SetColor(visitedColor)
	for _, id := range result.Visited {
		x, y := center(id)
		dc.DrawCircle(x, y, size/8)
		dc.Fill()
	}

	if len(result.Path) > 1 {
		dc.SetColor(pathColor)
		dc.SetLineWidth(size / 12)
		x, y := center(result.Path[0])
		dc.MoveTo(x, y)
		for _, id := range result.Path[1:] {
			x, y := center(id)
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}

	if start, ok := g.Start(); ok {
		x, y := center(start)
		dc.SetColor(startColor)
		dc.DrawCircle(x, y, size/4)
		dc.Fill()
	}
	if goal, ok := g.Goal(); ok {
		x, y := center(goal)
		dc.SetColor(goalColor)
		dc.DrawCircle(x, y, size/4)
		dc.Fill()
	}

	return dc
}
