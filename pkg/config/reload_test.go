package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/types"
)

type reload struct {
	cfg *types.MazeConfig
	err error
}

func newReloadManager(t *testing.T, content string) (*config.ReloadManager, string, chan reload) {
	t.Helper()
	path := writeFile(t, "maze.yaml", content)

	rm := config.NewReloadManager(path, logger.Discard())
	rm.SetDebouncePeriod(20 * time.Millisecond)

	reloads := make(chan reload, 8)
	rm.AddCallback(func(cfg *types.MazeConfig, err error) {
		reloads <- reload{cfg: cfg, err: err}
	})
	return rm, path, reloads
}

func waitReload(t *testing.T, reloads chan reload) reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return reload{}
	}
}

const smallMaze = "width: 3\nheight: 3\nstart: 0\ngoal: 8\n"

func TestReloadManager_TriggerReload(t *testing.T) {
	rm, _, reloads := newReloadManager(t, smallMaze)

	rm.TriggerReload()

	r := waitReload(t, reloads)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.cfg.Width != 3 || r.cfg.Goal != 8 || r.cfg.Name != "maze" {
		t.Errorf("unexpected maze: %+v", r.cfg)
	}
}

func TestReloadManager_TriggerReloadInvalid(t *testing.T) {
	rm, _, reloads := newReloadManager(t, "width: 3\nheight: 3\nstart: 0\ngoal: 99\n")

	rm.TriggerReload()

	if r := waitReload(t, reloads); r.err == nil || r.cfg != nil {
		t.Errorf("expected error only, got %+v", r)
	}
}

func TestReloadManager_WatchesChanges(t *testing.T) {
	rm, path, reloads := newReloadManager(t, smallMaze)

	if err := rm.StartWatching(); err != nil {
		t.Fatalf("start watching: %v", err)
	}
	defer rm.StopWatching()

	if !rm.IsWatching() {
		t.Fatal("expected IsWatching")
	}
	if err := rm.StartWatching(); err == nil {
		t.Error("expected error when watching twice")
	}

	// push the modification time forward so the dedupe check sees a change
	if err := os.WriteFile(path, []byte("width: 4\nheight: 4\nstart: 0\ngoal: 15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	r := waitReload(t, reloads)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.cfg.Width != 4 || r.cfg.Goal != 15 {
		t.Errorf("unexpected maze: %+v", r.cfg)
	}
	if rm.GetLastReloadTime().IsZero() {
		t.Error("last reload time not recorded")
	}
}

func TestReloadManager_IgnoresOtherFiles(t *testing.T) {
	rm, path, reloads := newReloadManager(t, smallMaze)

	if err := rm.StartWatching(); err != nil {
		t.Fatalf("start watching: %v", err)
	}
	defer rm.StopWatching()

	other := filepath.Join(filepath.Dir(path), "unrelated.txt")
	if err := os.WriteFile(other, []byte("noise"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		t.Errorf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestReloadManager_StopWatching(t *testing.T) {
	rm, path, _ := newReloadManager(t, smallMaze)

	if err := rm.StartWatching(); err != nil {
		t.Fatalf("start watching: %v", err)
	}
	if err := rm.StopWatching(); err != nil {
		t.Fatalf("stop watching: %v", err)
	}
	if rm.IsWatching() {
		t.Error("still watching after stop")
	}
	if err := rm.StopWatching(); err != nil {
		t.Errorf("second stop: %v", err)
	}
	if rm.GetPath() != path {
		t.Errorf("path = %q", rm.GetPath())
	}
}

func TestReloadManager_CallbackPanicIsolated(t *testing.T) {
	rm, _, reloads := newReloadManager(t, smallMaze)
	rm.AddCallback(func(*types.MazeConfig, error) { panic("boom") })

	rm.TriggerReload()

	if r := waitReload(t, reloads); r.err != nil {
		t.Errorf("unexpected error: %v", r.err)
	}
}

func TestReloadManager_CallbacksGetOwnCopy(t *testing.T) {
	path := writeFile(t, "maze.yaml", "width: 3\nheight: 3\nstart: 0\ngoal: 8\nbarriers: [4]\n")
	rm := config.NewReloadManager(path, logger.Discard())

	first := make(chan *types.MazeConfig, 1)
	second := make(chan *types.MazeConfig, 1)
	rm.AddCallback(func(cfg *types.MazeConfig, _ error) { first <- cfg })
	rm.AddCallback(func(cfg *types.MazeConfig, _ error) { second <- cfg })

	rm.TriggerReload()

	a, b := <-first, <-second
	if a == b || &a.Barriers[0] == &b.Barriers[0] {
		t.Error("callbacks share the same maze value")
	}
}

func TestReloadManager_RestartAfterStop(t *testing.T) {
	rm, path, reloads := newReloadManager(t, smallMaze)

	if err := rm.StartWatching(); err != nil {
		t.Fatalf("start watching: %v", err)
	}
	if err := rm.StopWatching(); err != nil {
		t.Fatalf("stop watching: %v", err)
	}
	if err := rm.StartWatching(); err != nil {
		t.Fatalf("restart watching: %v", err)
	}
	defer rm.StopWatching()

	if err := os.WriteFile(path, []byte("width: 5\nheight: 1\nstart: 0\ngoal: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	r := waitReload(t, reloads)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.cfg.Width != 5 || r.cfg.Goal != 4 {
		t.Errorf("unexpected maze: %+v", r.cfg)
	}
}

func TestReloadManager_Removed(t *testing.T) {
	rm, path, reloads := newReloadManager(t, smallMaze)

	if err := rm.StartWatching(); err != nil {
		t.Fatalf("start watching: %v", err)
	}
	defer rm.StopWatching()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	r := waitReload(t, reloads)
	if !errors.Is(r.err, config.ErrMazeRemoved) || r.cfg != nil {
		t.Errorf("expected ErrMazeRemoved, got %+v", r)
	}
}
