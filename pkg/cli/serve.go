package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mazesearch/mazesearch/internal/server"
	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var (
		mazeFile    string
		addr        string
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve searches over HTTP",
		Long: `Start an HTTP API for a maze. GET /api/search/<algorithm> searches the
served maze, POST /api/search searches a maze given in the body and
GET /api/render/<algorithm>.png draws the result. Prometheus metrics are
exported on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runServe(ctx, mazeFile)
		},
	}

	cmd.Flags().StringVarP(&mazeFile, "maze", "m", "", "maze file to serve (default: canonical sample)")
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "searches run at once per request (default: number of CPUs)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, mazeFile string) error {
	var maze *types.MazeConfig
	if mazeFile != "" {
		cfg, err := config.NewManager().LoadConfig(mazeFile)
		if err != nil {
			return err
		}
		maze = cfg
	}

	if c.settings.Verbosity != types.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(server.Options{
		Addr:        c.settings.Addr,
		Maze:        maze,
		Logger:      c.logger,
		Parallelism: c.settings.Parallelism,
	})
	if err != nil {
		return err
	}

	c.printInfo("Serving on " + srv.Addr())
	return srv.Run(ctx)
}
