package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mazesearch/mazesearch/pkg/logger"
	"github.com/mazesearch/mazesearch/pkg/types"
)

// DefaultDebouncePeriod is how long the file must stay quiet before a reload
const DefaultDebouncePeriod = 500 * time.Millisecond

// ErrMazeRemoved is reported to callbacks when the watched file disappears
var ErrMazeRemoved = errors.New("maze file removed")

// ReloadCallback gets the maze as loaded from disk, or the reason it could
// not be loaded. Exactly one of the two is non-nil.
type ReloadCallback func(*types.MazeConfig, error)

// ReloadManager loads a maze file again each time it changes on disk
type ReloadManager struct {
	path   string
	logger logger.Logger

	mu        sync.RWMutex
	callbacks []ReloadCallback
	debounce  time.Duration
	timer     *time.Timer
	loadedMod time.Time

	// set while watching
	watcher *fsnotify.Watcher
	stop    context.CancelFunc
}

// NewReloadManager returns a manager for path. Nothing is watched until
// StartWatching.
func NewReloadManager(path string, log logger.Logger) *ReloadManager {
	return &ReloadManager{
		path:     path,
		logger:   log,
		debounce: DefaultDebouncePeriod,
	}
}

// AddCallback registers cb for every later reload
func (rm *ReloadManager) AddCallback(cb ReloadCallback) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.callbacks = append(rm.callbacks, cb)
}

// SetDebouncePeriod changes the quiet period used by later events
func (rm *ReloadManager) SetDebouncePeriod(period time.Duration) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.debounce = period
}

// StartWatching subscribes to the directory holding the maze file. Editors
// that save through a rename replace the file, which a watch on the file
// itself would lose. A manager may be started again after StopWatching.
func (rm *ReloadManager) StartWatching() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.watcher != nil {
		return fmt.Errorf("already watching %s", rm.path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(rm.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch maze directory: %w", err)
	}

	if stat, err := os.Stat(rm.path); err == nil {
		rm.loadedMod = stat.ModTime()
	}

	ctx, cancel := context.WithCancel(context.Background())
	rm.watcher = watcher
	rm.stop = cancel
	go rm.watchLoop(ctx, watcher)

	rm.logger.Debug("Started watching maze file", logger.WithField("path", rm.path))
	return nil
}

// StopWatching ends the current watch. Calling it when idle does nothing.
func (rm *ReloadManager) StopWatching() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.watcher == nil {
		return nil
	}

	rm.stop()
	rm.stop = nil
	if rm.timer != nil {
		rm.timer.Stop()
		rm.timer = nil
	}
	if err := rm.watcher.Close(); err != nil {
		rm.logger.Warn("Error closing file watcher", logger.WithField("error", err))
	}
	rm.watcher = nil

	rm.logger.Debug("Stopped watching maze file", logger.WithField("path", rm.path))
	return nil
}

// IsWatching reports whether a watch is active
func (rm *ReloadManager) IsWatching() bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.watcher != nil
}

// TriggerReload loads the file right away, changed or not
func (rm *ReloadManager) TriggerReload() {
	rm.reload(false, true)
}

// GetLastReloadTime is the modification time of the file last loaded
func (rm *ReloadManager) GetLastReloadTime() time.Time {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.loadedMod
}

// GetPath returns the watched file
func (rm *ReloadManager) GetPath() string {
	return rm.path
}

func (rm *ReloadManager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		if r := recover(); r != nil {
			rm.logger.Error("Maze watcher panic recovered", logger.WithField("panic", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !rm.concerns(event.Name) {
				continue
			}
			rm.logger.Debug("Maze file event", logger.WithField("event", event.String()))
			rm.schedule(ctx, event.Op&fsnotify.Remove != 0)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			rm.logger.Error("Maze file watcher error", logger.WithField("error", err))
			rm.dispatch(nil, err)
		}
	}
}

// concerns matches the maze file and the "<name>*.tmp" files some editors
// write next to it before renaming
func (rm *ReloadManager) concerns(eventPath string) bool {
	name := filepath.Base(rm.path)
	got := filepath.Base(eventPath)
	return got == name || (strings.HasPrefix(got, name) && strings.HasSuffix(got, ".tmp"))
}

// schedule restarts the quiet period; the reload runs once it elapses
// without another event
func (rm *ReloadManager) schedule(ctx context.Context, removed bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.timer != nil {
		rm.timer.Stop()
	}
	rm.timer = time.AfterFunc(rm.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		rm.reload(removed, false)
	})
}

// reload loads the file and hands the outcome to the callbacks. Without
// force an unchanged modification time is skipped.
func (rm *ReloadManager) reload(removed, force bool) {
	stat, err := os.Stat(rm.path)
	switch {
	case err != nil && removed:
		rm.dispatch(nil, fmt.Errorf("%s: %w", rm.path, ErrMazeRemoved))
		return
	case err != nil:
		rm.logger.Error("Failed to stat maze file", logger.WithField("error", err))
		rm.dispatch(nil, err)
		return
	}

	rm.mu.Lock()
	if !force && !stat.ModTime().After(rm.loadedMod) {
		rm.mu.Unlock()
		rm.logger.Debug("Maze file unchanged", logger.WithField("path", rm.path))
		return
	}
	rm.loadedMod = stat.ModTime()
	rm.mu.Unlock()

	cfg, err := NewManager().LoadConfig(rm.path)
	if err != nil {
		rm.logger.Error("Failed to reload maze", logger.WithField("error", err))
		rm.dispatch(nil, err)
		return
	}

	rm.logger.Info("Maze reloaded",
		logger.WithField("maze", cfg.DisplayName()),
		logger.WithField("barriers", len(cfg.Barriers)))
	rm.dispatch(cfg, nil)
}

// dispatch calls each callback on its own goroutine with a private copy of
// cfg. A panic in one callback is logged and the rest still run.
func (rm *ReloadManager) dispatch(cfg *types.MazeConfig, err error) {
	rm.mu.RLock()
	callbacks := append([]ReloadCallback(nil), rm.callbacks...)
	rm.mu.RUnlock()

	for _, cb := range callbacks {
		go func(cb ReloadCallback) {
			defer func() {
				if r := recover(); r != nil {
					rm.logger.Error("Reload callback panic recovered", logger.WithField("panic", r))
				}
			}()
			var own *types.MazeConfig
			if cfg != nil {
				own = cfg.Clone()
			}
			cb(own, err)
		}(cb)
	}
}
