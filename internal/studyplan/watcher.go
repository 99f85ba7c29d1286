package studyplan

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
)

// Update carries a reloaded plan, or the error that stopped it loading.
type Update struct {
	Plan *Plan
	Err  error
}

// Watcher reloads a plan file whenever it changes on disk. The parent
// directory is watched so editors that save by rename are picked up.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	updates  chan Update
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: constants.PlanWatchDebounce,
		updates:  make(chan Update, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates delivers reloaded plans. Only the latest pending update is kept.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start begins watching. It returns once the watch is registered.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true
	logger.Debug("Watching study plan", "path", w.path)
	go w.run(ctx)
	return nil
}

// Stop ends the watch and waits for the loop to exit. Safe to call twice.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logger.Error("Error closing plan watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Plan watcher error", "error", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	plan, err := Load(w.path)
	if err == nil {
		if res := Validate(plan); res.HasProblems() {
			err = fmt.Errorf("study plan has problems:\n%s", res.FormatReport())
		}
	}
	if err != nil {
		logger.Warn("Study plan reload failed", "path", w.path, "error", err)
		plan = nil
	} else {
		logger.Info("Study plan reloaded", "path", w.path)
	}

	// Drop a stale unread update in favour of this one.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- Update{Plan: plan, Err: err}
}
