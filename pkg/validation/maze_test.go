package validation_test

import (
	"strings"
	"testing"

	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/mazesearch/mazesearch/pkg/validation"
)

func TestMazeValidator_Validate(t *testing.T) {
	validator := validation.NewMazeValidator()

	tests := []struct {
		name          string
		maze          types.MazeConfig
		expectInvalid bool
		errors        int
		warnings      int
		field         string
	}{
		{
			name: "canonical maze",
			maze: *config.NewManager().GetDefaultConfig(),
		},
		{
			name:          "zero width",
			maze:          types.MazeConfig{Width: 0, Height: 3, Start: 0, Goal: 1},
			expectInvalid: true,
			errors:        1,
			field:         "width",
		},
		{
			name:          "both dimensions bad",
			maze:          types.MazeConfig{Width: -2, Height: 0},
			expectInvalid: true,
			errors:        2,
		},
		{
			name:          "too many cells",
			maze:          types.MazeConfig{Width: 1 << 16, Height: 1 << 16, Start: 0, Goal: 1},
			expectInvalid: true,
			errors:        1,
			field:         "width",
		},
		{
			name:          "every endpoint problem reported",
			maze:          types.MazeConfig{Width: 2, Height: 2, Start: -1, Goal: 4},
			expectInvalid: true,
			errors:        2,
		},
		{
			name:          "start equals goal",
			maze:          types.MazeConfig{Width: 2, Height: 2, Start: 3, Goal: 3},
			expectInvalid: true,
			errors:        1,
			field:         "goal",
		},
		{
			name:          "barrier on endpoints and out of range",
			maze:          types.MazeConfig{Width: 3, Height: 3, Start: 0, Goal: 8, Barriers: []int{0, 8, 9}},
			expectInvalid: true,
			errors:        3,
			field:         "barriers",
		},
		{
			name:     "duplicate barrier",
			maze:     types.MazeConfig{Width: 3, Height: 3, Start: 0, Goal: 8, Barriers: []int{4, 4}},
			warnings: 1,
			field:    "barriers",
		},
		{
			name:          "unknown algorithm",
			maze:          types.MazeConfig{Width: 2, Height: 1, Start: 0, Goal: 1, Algorithms: []string{"bfs", "bogo"}},
			expectInvalid: true,
			errors:        1,
			field:         "algorithms",
		},
		{
			name:     "duplicate algorithm through alias",
			maze:     types.MazeConfig{Width: 2, Height: 1, Start: 0, Goal: 1, Algorithms: []string{"greedy", "best_first"}},
			warnings: 1,
			field:    "algorithms",
		},
		{
			name:     "unreachable goal",
			maze:     types.MazeConfig{Width: 3, Height: 3, Start: 0, Goal: 8, Barriers: []int{5, 7}},
			warnings: 1,
			field:    "goal",
		},
		{
			name:     "mostly barriers",
			maze:     types.MazeConfig{Width: 5, Height: 1, Start: 0, Goal: 4, Barriers: []int{1, 2, 3}},
			warnings: 1 + 1, // dense, and the wall cuts the corridor
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate(&tt.maze)

			if result.Valid == tt.expectInvalid {
				t.Errorf("Valid = %v, findings %+v", result.Valid, result.Errors)
			}
			if got := result.Count(validation.ValidationLevelError); got != tt.errors {
				t.Errorf("errors = %d, want %d: %+v", got, tt.errors, result.Errors)
			}
			if got := result.Count(validation.ValidationLevelWarning); got != tt.warnings {
				t.Errorf("warnings = %d, want %d: %+v", got, tt.warnings, result.Errors)
			}
			if tt.field != "" {
				found := false
				for _, e := range result.Errors {
					if e.Field == tt.field && e.Level != validation.ValidationLevelInfo {
						found = true
					}
				}
				if !found {
					t.Errorf("expected a finding on %s: %+v", tt.field, result.Errors)
				}
			}
		})
	}
}

func TestMazeValidator_ReachabilityMessages(t *testing.T) {
	validator := validation.NewMazeValidator()

	result := validator.Validate(config.NewManager().GetDefaultConfig())
	if result.Count(validation.ValidationLevelInfo) != 1 {
		t.Fatalf("expected one info finding: %+v", result.Errors)
	}
	if msg := result.Errors[0].Message; !strings.Contains(msg, "8 moves") {
		t.Errorf("info message = %q", msg)
	}

	blocked := &types.MazeConfig{Name: "walled", Width: 3, Height: 3, Start: 0, Goal: 8, Barriers: []int{5, 7}}
	result = validator.Validate(blocked)
	if len(result.Errors) != 1 {
		t.Fatalf("expected one finding: %+v", result.Errors)
	}
	if msg := result.Errors[0].Message; !strings.Contains(msg, "only 6 of 7 open cells") {
		t.Errorf("warning message = %q", msg)
	}
	if !strings.HasPrefix(result.Errors[0].Error(), "[warning] walled.goal:") {
		t.Errorf("Error() = %q", result.Errors[0].Error())
	}
}
