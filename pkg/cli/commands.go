package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mazesearch/mazesearch/internal/engine"
	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/render"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/mazesearch/mazesearch/pkg/validation"
	"github.com/spf13/cobra"
)

// mazeFlags select the maze a command works on
type mazeFlags struct {
	file     string
	width    int
	height   int
	start    int
	goal     int
	barriers []int
}

func (f *mazeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "maze", "m", "", "maze file (.json, .yaml or .hcl)")
	cmd.Flags().IntVar(&f.width, "width", grid.DefaultWidth, "grid width for an inline maze")
	cmd.Flags().IntVar(&f.height, "height", grid.DefaultHeight, "grid height for an inline maze")
	cmd.Flags().IntVar(&f.start, "start", config.CanonicalStart, "start cell id for an inline maze")
	cmd.Flags().IntVar(&f.goal, "goal", config.CanonicalGoal, "goal cell id for an inline maze")
	cmd.Flags().IntSliceVar(&f.barriers, "barriers", nil, "barrier cell ids for an inline maze")
}

// resolve returns the maze named by --maze, an inline maze when any shape
// flag was given, or the canonical sample maze
func (f *mazeFlags) resolve(cmd *cobra.Command) (*types.MazeConfig, error) {
	manager := config.NewManager()
	if f.file != "" {
		return manager.LoadConfig(f.file)
	}

	inline := false
	for _, name := range []string{"width", "height", "start", "goal", "barriers"} {
		if cmd.Flags().Changed(name) {
			inline = true
		}
	}
	if !inline {
		return manager.GetDefaultConfig(), nil
	}

	cfg := &types.MazeConfig{
		Width:    f.width,
		Height:   f.height,
		Start:    f.start,
		Goal:     f.goal,
		Barriers: f.barriers,
	}
	if err := manager.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) newRunCmd() *cobra.Command {
	var (
		maze        mazeFlags
		format      string
		show        bool
		pngDir      string
		trace       bool
		cpuProfile  string
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "run [algorithm...]",
		Short: "Run searches over a maze and print the results",
		Long: `Run one or more search algorithms over a maze and print, for each one, the
cells it expanded in order, the path it found and the path length.

Without arguments every algorithm listed in the maze file runs, or all five
when the file names none. Algorithms: bfs, dfs, ucs, best_first, astar.`,
		Example: `  mazesearch run
  mazesearch run astar bfs --maze maze.yaml --show
  mazesearch run --width 3 --height 3 --start 0 --goal 8 --barriers 4 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := types.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			cfg, err := maze.resolve(cmd)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = cfg.Algorithms
			}
			algorithms, err := search.ParseAlgorithms(names)
			if err != nil {
				return err
			}

			if cpuProfile != "" {
				stop, err := startCPUProfile(cpuProfile)
				if err != nil {
					return err
				}
				defer stop()
			}

			return c.runSearches(cmd, cfg, algorithms, runOptions{
				format: outputFormat,
				show:   show,
				pngDir: pngDir,
				trace:  trace,
			})
		},
	}

	maze.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&show, "show", false, "draw each result in the terminal")
	cmd.Flags().StringVar(&pngDir, "png-dir", "", "save a PNG per algorithm into this directory")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every expansion at debug level")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "searches run at once (default: number of CPUs)")

	return cmd
}

type runOptions struct {
	format types.OutputFormat
	show   bool
	pngDir string
	trace  bool
}

func (c *CLI) runSearches(cmd *cobra.Command, cfg *types.MazeConfig, algorithms []search.Algorithm, opts runOptions) error {
	g, err := config.BuildGrid(cfg)
	if err != nil {
		return err
	}

	log := c.logger
	if opts.trace {
		log = c.newLogger(string(types.LogLevelDebug))
	}
	runner := engine.NewRunner(log,
		engine.WithParallelism(c.settings.Parallelism),
		engine.WithTrace(opts.trace))

	report, err := runner.Run(cmd.Context(), cfg.DisplayName(), g, algorithms)
	if err != nil {
		return err
	}

	var terminal *render.TerminalRenderer
	if opts.show {
		terminal = render.NewTerminalRenderer(!color.NoColor)
	}
	if err := writeReport(c.output, opts.format, report, g, terminal); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if opts.pngDir != "" {
		png := render.NewPNGRenderer(render.DefaultCellSize)
		for _, result := range report.Results {
			path, err := png.Save(opts.pngDir, g, result)
			if err != nil {
				return err
			}
			c.logger.Info("Saved visualization",
				logger.WithField("algorithm", result.Algorithm.Title()),
				logger.WithField("file", path))
		}
	}
	return nil
}

// startCPUProfile profiles until the returned stop function is called
func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func (c *CLI) newValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a maze file and report every problem found",
		Long: `Check that a maze file describes a searchable maze: positive dimensions,
start and goal inside the grid and distinct, no barrier on an endpoint and
known algorithm names. Also reports duplicate barriers, very dense mazes and
whether the goal can be reached at all.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := types.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			return c.runValidate(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format (text, json, yaml)")
	return cmd
}

func (c *CLI) runValidate(path string, format types.OutputFormat) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read maze file: %w", err)
	}
	cfg, err := config.NewManager().Parse(data, path)
	if err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	result := validation.NewMazeValidator().Validate(cfg)

	switch format {
	case types.OutputFormatJSON, types.OutputFormatYAML:
		if err := writeStructured(c.output, format, result); err != nil {
			return err
		}
	default:
		for _, finding := range result.Errors {
			switch finding.Level {
			case validation.ValidationLevelError:
				c.printError(finding.Error())
			case validation.ValidationLevelWarning:
				c.printWarning(finding.Error())
			default:
				c.printInfo(finding.Error())
			}
		}
	}

	if !result.Valid {
		return fmt.Errorf("%s: %d error(s) found", path, result.Count(validation.ValidationLevelError))
	}
	if format == types.OutputFormatText {
		c.printSuccess(fmt.Sprintf("%s is valid (%d warning(s))", path, result.Count(validation.ValidationLevelWarning)))
	}
	return nil
}

func (c *CLI) newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available search algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.output, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tDESCRIPTION")
			for _, a := range search.Algorithms() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a, a.Title(), a.Description())
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.output, "🧭 mazesearch v%s\n", c.config.Version)
		},
	}
}
