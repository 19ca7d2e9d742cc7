package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/mazesearch/mazesearch/internal/engine"
	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/interfaces"
	"github.com/mazesearch/mazesearch/pkg/notifier"
	"github.com/mazesearch/mazesearch/pkg/render"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var (
		notify      bool
		sound       bool
		show        bool
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-run the searches every time a maze file changes",
		Long: `Watch a maze file and run its algorithms once at start and again after
every save. Results are printed as they arrive; a desktop notification
reports whether the goal was reached.

Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runWatch(ctx, args[0], sound, show)
		},
	}

	cmd.Flags().BoolVar(&notify, "notify", true, "send desktop notifications")
	cmd.Flags().BoolVar(&sound, "sound", false, "beep when a run fails")
	cmd.Flags().BoolVar(&show, "show", false, "draw each result in the terminal")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "searches run at once (default: number of CPUs)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, path string, sound, show bool) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	var notify interfaces.Notifier
	if c.settings.Notify {
		notify = notifier.New(notifier.Config{Enabled: true, Sound: sound}, c.logger)
	}

	var terminal *render.TerminalRenderer
	if show {
		terminal = render.NewTerminalRenderer(!color.NoColor)
	}

	// reload callbacks run on their own goroutines
	var mu sync.Mutex
	sink := func(report *engine.Report, g *grid.Grid) {
		mu.Lock()
		defer mu.Unlock()
		if err := writeReport(c.output, types.OutputFormatText, report, g, terminal); err != nil {
			c.printError(fmt.Sprintf("failed to write results: %v", err))
		}
		fmt.Fprintln(c.output)
	}

	source := config.NewReloadManager(path, c.logger)
	runner := engine.NewRunner(c.logger, engine.WithParallelism(c.settings.Parallelism))
	watcher := engine.NewWatcher(source, runner, notify, sink, c.logger)

	c.printInfo(fmt.Sprintf("Watching %s (Ctrl-C to stop)", path))
	if err := watcher.Watch(ctx); err != nil {
		return err
	}
	c.printSuccess("Stopped watching")
	return nil
}
