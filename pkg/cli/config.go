package cli

import (
	"github.com/mazesearch/mazesearch/pkg/types"
)

// SettingsName is the base name of the optional settings file looked up in
// the project root (mazesearch.yaml).
const SettingsName = "mazesearch"

// EnvPrefix prefixes every environment override, e.g. MAZESEARCH_VERBOSITY
const EnvPrefix = "MAZESEARCH"

// Config holds what the CLI needs before flags are parsed
type Config struct {
	ConfigFile  string
	ProjectRoot string
	Version     string
}

// NewConfig creates a new CLI configuration with defaults
func NewConfig() *Config {
	return &Config{
		ProjectRoot: ".",
		Version:     "dev",
	}
}

// defaultSettings are the values used when neither flags, environment nor
// settings file provide one
func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"verbosity":   string(types.LogLevelInfo),
		"log_file":    "",
		"no_color":    false,
		"parallelism": 0,
		"notify":      true,
		"addr":        ":8080",
	}
}
