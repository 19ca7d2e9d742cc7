// Package config loads, validates and saves maze definitions
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a maze file cannot be read or
// written in any known format.
var ErrUnsupportedFormat = errors.New("unsupported maze file format")

// Canonical sample maze: 8x8, start at (4,1), goal at (6,7).
const (
	CanonicalName  = "canonical"
	CanonicalStart = 12
	CanonicalGoal  = 62
)

// CanonicalBarriers are the barrier ids of the canonical sample maze
var CanonicalBarriers = []int{8, 23, 34, 36, 49, 60}

// Manager handles maze definition files
type Manager struct{}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{}
}

// LoadConfig loads and validates a maze definition. Files ending in .hcl are
// decoded as HCL; anything else is tried as JSON, then YAML.
func (m *Manager) LoadConfig(path string) (*types.MazeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze file: %w", err)
	}

	cfg, err := m.Parse(data, path)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := m.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a maze definition without validating it. filename selects
// the HCL decoder and is used in diagnostics.
func (m *Manager) Parse(data []byte, filename string) (*types.MazeConfig, error) {
	if isHCL(filename) {
		return decodeHCL(data, filename)
	}

	var cfg types.MazeConfig
	if err := json.Unmarshal(data, &cfg); err == nil {
		return &cfg, nil
	}

	cfg = types.MazeConfig{}
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return &cfg, nil
	}

	return nil, fmt.Errorf("%s: failed to parse as JSON or YAML: %w", filename, ErrUnsupportedFormat)
}

// ValidateConfig checks that cfg describes a searchable maze. Errors wrap the
// grid and search sentinels so callers can classify them with errors.Is.
func (m *Manager) ValidateConfig(cfg *types.MazeConfig) error {
	if _, err := search.ParseAlgorithms(cfg.Algorithms); err != nil {
		return err
	}
	_, err := BuildGrid(cfg)
	return err
}

// GetDefaultConfig returns the canonical sample maze
func (m *Manager) GetDefaultConfig() *types.MazeConfig {
	return &types.MazeConfig{
		Name:     CanonicalName,
		Width:    grid.DefaultWidth,
		Height:   grid.DefaultHeight,
		Start:    CanonicalStart,
		Goal:     CanonicalGoal,
		Barriers: append([]int(nil), CanonicalBarriers...),
	}
}

// SaveConfig writes cfg to path in the format implied by its extension:
// .json, .yaml/.yml or .hcl.
func (m *Manager) SaveConfig(cfg *types.MazeConfig, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".hcl":
		data = encodeHCL(cfg)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to encode maze: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write maze file: %w", err)
	}
	return nil
}

// BuildGrid creates and configures a Grid from a maze definition
func BuildGrid(cfg *types.MazeConfig) (*grid.Grid, error) {
	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if err := g.Configure(cfg.Start, cfg.Goal, cfg.Barriers); err != nil {
		return nil, err
	}
	return g, nil
}

func isHCL(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".hcl")
}
