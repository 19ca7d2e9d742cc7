package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mazesearch/mazesearch/internal/engine"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/render"
	"github.com/mazesearch/mazesearch/pkg/types"
	"gopkg.in/yaml.v3"
)

const resultsHeader = "Maze Search Results:"

// writeReport prints report in format. renderer, when set, draws each
// result below its text block.
func writeReport(w io.Writer, format types.OutputFormat, report *engine.Report, g *grid.Grid, renderer *render.TerminalRenderer) error {
	if format != types.OutputFormatText {
		return writeStructured(w, format, report)
	}

	fmt.Fprintln(w, resultsHeader)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, result := range report.Results {
		fmt.Fprintf(w, "\n%s Search:\n", result.Algorithm.Title())
		fmt.Fprintf(w, "Time units: %d\n", result.TimeUnits)
		fmt.Fprintf(w, "Visited nodes: %s\n", formatIDs(result.Visited))
		fmt.Fprintf(w, "Path found: %s\n", formatIDs(result.Path))
		fmt.Fprintf(w, "Path length: %d\n", result.PathLength())

		if renderer != nil {
			fmt.Fprintln(w)
			if err := renderer.Render(w, g, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeStructured encodes v as indented JSON or YAML
func writeStructured(w io.Writer, format types.OutputFormat, v interface{}) error {
	if format == types.OutputFormatYAML {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatIDs prints ids as a bracketed, comma separated list: [12, 4, 11]
func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
