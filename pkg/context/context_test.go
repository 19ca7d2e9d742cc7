package context_test

import (
	"context"
	"strings"
	"testing"
	"time"

	mcontext "github.com/mazesearch/mazesearch/pkg/context"
)

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if mcontext.HasRunID(ctx) {
		t.Fatal("empty context should have no run id")
	}

	ctx = mcontext.WithRunID(ctx, "run_fixed")
	if got := mcontext.GetRunID(ctx); got != "run_fixed" {
		t.Errorf("run id = %q", got)
	}

	generated := mcontext.WithRunID(context.Background(), "")
	if id := mcontext.GetRunID(generated); !strings.HasPrefix(id, "run_") || len(id) <= len("run_") {
		t.Errorf("generated run id = %q", id)
	}
}

func TestGenerateRunID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := mcontext.GenerateRunID()
		if seen[id] {
			t.Fatalf("duplicate run id %s", id)
		}
		seen[id] = true
	}
}

func TestOperationAndMaze(t *testing.T) {
	ctx := context.Background()
	if got := mcontext.GetOperation(ctx); got != "unknown-operation" {
		t.Errorf("default operation = %q", got)
	}
	if got := mcontext.GetMaze(ctx); got != "" {
		t.Errorf("default maze = %q", got)
	}

	ctx = mcontext.WithMaze(mcontext.WithOperation(ctx, "run"), "canonical")
	if got := mcontext.GetOperation(ctx); got != "run" {
		t.Errorf("operation = %q", got)
	}
	if got := mcontext.GetMaze(ctx); got != "canonical" {
		t.Errorf("maze = %q", got)
	}
}

func TestDuration(t *testing.T) {
	if d := mcontext.GetDuration(context.Background()); d != 0 {
		t.Errorf("duration without start time = %v", d)
	}

	ctx := mcontext.WithStartTime(context.Background(), time.Now().Add(-time.Second))
	if d := mcontext.GetDuration(ctx); d < time.Second {
		t.Errorf("duration = %v, want at least 1s", d)
	}
}

func TestEnrichContext(t *testing.T) {
	ctx := mcontext.EnrichContext(mcontext.WithRunID(context.Background(), "run_keep"))
	if got := mcontext.GetRunID(ctx); got != "run_keep" {
		t.Errorf("existing run id replaced: %q", got)
	}
	if _, ok := mcontext.GetStartTime(ctx); !ok {
		t.Error("start time not set")
	}

	fresh := mcontext.EnrichContext(context.Background())
	if !mcontext.HasRunID(fresh) {
		t.Error("run id not generated")
	}
}
