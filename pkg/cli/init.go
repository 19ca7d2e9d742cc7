package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/spf13/cobra"
)

// DefaultMazeFile is the file init writes when none is named
const DefaultMazeFile = "maze.yaml"

func (c *CLI) newInitCmd() *cobra.Command {
	var (
		force bool
		name  string
	)

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write the sample maze to a file",
		Long: `Write the canonical 8x8 sample maze to FILE so it can be edited and run.
The format follows the extension: .json, .yaml/.yml or .hcl. Without FILE,
maze.yaml is created in the project root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(c.config.ProjectRoot, DefaultMazeFile)
			if len(args) > 0 {
				path = args[0]
			}
			return c.runInit(path, name, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&name, "name", "", "maze name (default: canonical)")

	return cmd
}

func (c *CLI) runInit(path, name string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	manager := config.NewManager()
	cfg := manager.GetDefaultConfig()
	if name != "" {
		cfg.Name = name
	}

	if err := manager.SaveConfig(cfg, path); err != nil {
		return err
	}

	c.printSuccess(fmt.Sprintf("Created maze at %s", path))
	c.printInfo(fmt.Sprintf("Run it with: mazesearch run --maze %s", path))
	return nil
}
