// Package types provides the maze definition and settings types shared by
// the loader, the CLI and the HTTP API.
package types

import (
	"fmt"
	"strings"
)

// LogLevel represents logging verbosity levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// OutputFormat selects how search results are printed
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat accepts text, json or yaml in any case
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// MazeConfig is a maze definition as stored on disk or posted to the API.
// Cell ids are row-major: id = y*width + x.
type MazeConfig struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
	Width      int      `json:"width" yaml:"width" hcl:"width"`
	Height     int      `json:"height" yaml:"height" hcl:"height"`
	Start      int      `json:"start" yaml:"start" hcl:"start"`
	Goal       int      `json:"goal" yaml:"goal" hcl:"goal"`
	Barriers   []int    `json:"barriers,omitempty" yaml:"barriers,omitempty" hcl:"barriers,optional"`
	Algorithms []string `json:"algorithms,omitempty" yaml:"algorithms,omitempty" hcl:"algorithms,optional"`
}

// DisplayName is Name, or a size-based fallback for anonymous mazes
func (c *MazeConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}

// Clone returns a deep copy
func (c *MazeConfig) Clone() *MazeConfig {
	out := *c
	if c.Barriers != nil {
		out.Barriers = append([]int(nil), c.Barriers...)
	}
	if c.Algorithms != nil {
		out.Algorithms = append([]string(nil), c.Algorithms...)
	}
	return &out
}

// Settings are the CLI options resolved through viper
type Settings struct {
	Verbosity   LogLevel `mapstructure:"verbosity"`
	LogFile     string   `mapstructure:"log_file"`
	NoColor     bool     `mapstructure:"no_color"`
	Parallelism int      `mapstructure:"parallelism"`
	Notify      bool     `mapstructure:"notify"`
	Addr        string   `mapstructure:"addr"`
}
