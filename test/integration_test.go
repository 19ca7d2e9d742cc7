//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mazesearch/mazesearch/internal/engine"
	"github.com/mazesearch/mazesearch/internal/server"
	"github.com/mazesearch/mazesearch/pkg/config"
	"github.com/mazesearch/mazesearch/pkg/grid"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/mocks"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
)

func waitReport(t *testing.T, reports <-chan *engine.Report) *engine.Report {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a report")
		return nil
	}
}

// TestWatchEndToEnd edits a maze file on disk and checks that every save is
// searched again and notified
func TestWatchEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	path := filepath.Join(t.TempDir(), "ring.yaml")
	manager := config.NewManager()
	cfg := &types.MazeConfig{Name: "ring", Width: 3, Height: 3, Start: 0, Goal: 8, Barriers: []int{4}, Algorithms: []string{"bfs"}}
	if err := manager.SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	gomock.InOrder(
		notifier.EXPECT().NotifySolved("ring", 1, gomock.Any()),
		notifier.EXPECT().NotifyUnreachable("ring", 6),
	)

	log := logger.Discard()
	source := config.NewReloadManager(path, log)
	source.SetDebouncePeriod(50 * time.Millisecond)

	reports := make(chan *engine.Report, 4)
	w := engine.NewWatcher(source, engine.NewRunner(log), notifier,
		func(r *engine.Report, _ *grid.Grid) { reports <- r }, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	first := waitReport(t, reports)
	if r, ok := first.Result(search.BFS); !ok || r.PathLength() != 4 {
		t.Fatalf("first run: %+v", first)
	}

	// wall the goal off
	cfg.Barriers = []int{5, 7}
	if err := manager.SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	second := waitReport(t, reports)
	if second.Solved() != 0 || second.Results[0].TimeUnits != 6 {
		t.Fatalf("second run: %+v", second)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch: %v", err)
	}
}

// TestServerEndToEnd drives the HTTP API over a real listener
func TestServerEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, err := server.New(server.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/search", "application/json",
		strings.NewReader(`{"name":"line","width":5,"height":1,"start":0,"goal":4}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var report engine.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	for _, r := range report.Results {
		if r.PathLength() != 4 || r.TimeUnits != 5 {
			t.Errorf("%s: %+v", r.Algorithm, r)
		}
	}

	png, err := http.Get(ts.URL + "/api/render/astar.png")
	if err != nil {
		t.Fatal(err)
	}
	defer png.Body.Close()
	if png.Header.Get("Content-Type") != "image/png" {
		t.Errorf("content type = %s", png.Header.Get("Content-Type"))
	}
}
