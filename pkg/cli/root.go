// Package cli provides the command-line interface for mazesearch
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settingFlags are command flags whose values may also come from the
// environment or the settings file
var settingFlags = map[string]string{
	"verbosity":   "verbosity",
	"log-file":    "log_file",
	"no-color":    "no_color",
	"parallelism": "parallelism",
	"notify":      "notify",
	"addr":        "addr",
}

// CLI owns the command tree and everything it writes to, so several
// instances can run side by side in tests.
type CLI struct {
	config   *Config
	viper    *viper.Viper
	settings types.Settings
	rootCmd  *cobra.Command
	logger   logger.Logger
	console  *logger.ConsoleLogger
	output   io.Writer
	errorOut io.Writer
}

// NewCLI creates a new CLI instance with the given configuration
func NewCLI(config *Config) *CLI {
	if config == nil {
		config = NewConfig()
	}

	cli := &CLI{
		config:   config,
		viper:    viper.New(),
		logger:   logger.Discard(),
		output:   os.Stdout,
		errorOut: os.Stderr,
	}
	cli.console = logger.NewConsoleLogger(cli.output, cli.errorOut)

	cli.setupCommands()
	return cli
}

// NewCLIWithOutput creates a CLI with custom output writers (for testing)
func NewCLIWithOutput(config *Config, output, errorOut io.Writer) *CLI {
	cli := NewCLI(config)
	cli.output = output
	cli.errorOut = errorOut
	cli.console = logger.NewConsoleLogger(output, errorOut)
	cli.rootCmd.SetOut(output)
	cli.rootCmd.SetErr(errorOut)
	return cli
}

// Execute runs the CLI with the given arguments
func (c *CLI) Execute(args []string) error {
	return c.ExecuteContext(context.Background(), args)
}

// ExecuteContext runs the CLI with context support
func (c *CLI) ExecuteContext(ctx context.Context, args []string) error {
	c.rootCmd.SetArgs(args)
	err := c.rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(c.errorOut, color.RedString("Error: %v", err))
	}
	return err
}

// Settings returns the options resolved for the last executed command
func (c *CLI) Settings() types.Settings {
	return c.settings
}

// Execute runs the CLI against os.Args
func Execute(version string) error {
	config := NewConfig()
	config.Version = version
	return NewCLI(config).Execute(os.Args[1:])
}

func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:   "mazesearch",
		Short: "Classical graph searches over grid mazes",
		Long: `🧭 mazesearch - BFS, DFS, uniform-cost, greedy best-first and A* over grid mazes

Run every algorithm over a maze and compare how many cells each one expands,
watch a maze file and re-run on every save, or serve searches over HTTP.`,

		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initializeConfig,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand, show help
			_ = cmd.Help()
		},
	}

	c.setupFlags()

	c.rootCmd.Version = c.config.Version
	c.rootCmd.SetVersionTemplate("🧭 mazesearch v{{.Version}}\n")

	c.rootCmd.AddCommand(c.newRunCmd())
	c.rootCmd.AddCommand(c.newValidateCmd())
	c.rootCmd.AddCommand(c.newInitCmd())
	c.rootCmd.AddCommand(c.newWatchCmd())
	c.rootCmd.AddCommand(c.newServeCmd())
	c.rootCmd.AddCommand(c.newAlgorithmsCmd())
	c.rootCmd.AddCommand(c.newVersionCmd())
}

func (c *CLI) setupFlags() {
	flags := c.rootCmd.PersistentFlags()

	flags.StringVar(&c.config.ConfigFile, "config", "", "settings file (default: <root>/mazesearch.yaml)")
	flags.StringVar(&c.config.ProjectRoot, "root", c.config.ProjectRoot, "project root directory")
	flags.StringP("verbosity", "v", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file, rotated by size")
	flags.Bool("no-color", false, "disable colored output")
}

// initializeConfig resolves settings in viper's order (flag, environment,
// settings file, default) and builds the logger.
func (c *CLI) initializeConfig(cmd *cobra.Command, args []string) error {
	v := c.viper
	for key, value := range defaultSettings() {
		v.SetDefault(key, value)
	}

	for flag, key := range settingFlags {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if c.config.ConfigFile != "" {
		v.SetConfigFile(c.config.ConfigFile)
	} else {
		v.AddConfigPath(c.config.ProjectRoot)
		v.SetConfigName(SettingsName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.config.ConfigFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}

	if err := v.Unmarshal(&c.settings); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}

	if c.settings.NoColor {
		color.NoColor = true
	}
	c.logger = c.newLogger(string(c.settings.Verbosity))
	if used := v.ConfigFileUsed(); used != "" {
		c.logger.Debug("Using settings file", logger.WithField("file", used))
	}
	return nil
}

// newLogger writes to the CLI's error stream, plus the rotated log file
// when one is configured
func (c *CLI) newLogger(level string) logger.Logger {
	if c.errorOut == os.Stderr {
		return logger.CreateLogger(c.settings.LogFile, level)
	}
	return logger.CreateLoggerWithOutput(c.settings.LogFile, level, c.errorOut)
}

func (c *CLI) printSuccess(message string) {
	c.console.Success(message)
}

func (c *CLI) printError(message string) {
	c.console.Error(message)
}

func (c *CLI) printInfo(message string) {
	c.console.Info(message)
}

func (c *CLI) printWarning(message string) {
	c.console.Warn(message)
}
