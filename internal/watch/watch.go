// Package watch observes a repository for changes that can invalidate its
// working-tree status.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows the git common directory and the worktree root and emits a
// coalesced event whenever either changes.
type Watcher struct {
	started bool
	roots   []string
	events  chan struct{}
	done    chan struct{}
	paths   map[string]struct{}
	mu      sync.Mutex
	watcher *fsnotify.Watcher

	lastRefresh time.Time
	logf        func(string, ...any)
}

// New creates a Watcher that reports internal issues through logf.
func New(logf func(string, ...any)) *Watcher {
	return &Watcher{logf: logf}
}

// Start initialises the watcher over the repository worktree root and git
// common directory, then starts the background goroutine.
func (w *Watcher) Start(repoRoot, commonDir string) error {
	if w.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})
	w.roots = []string{
		filepath.Join(commonDir, "refs"),
		filepath.Join(commonDir, "logs"),
		filepath.Join(commonDir, "worktrees"),
	}
	w.addWatchDir(commonDir)
	w.addWatchDir(repoRoot)
	for _, root := range w.roots {
		w.addWatchTree(root)
	}

	go w.run()
	return nil
}

// Stop stops the watcher and closes channels.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// Events returns the coalesced change channel.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *Watcher) ShouldRefresh(now time.Time, debounce time.Duration) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < debounce {
		return false
	}
	w.lastRefresh = now
	return true
}

func (w *Watcher) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) isUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) maybeWatchNewDir(path string) {
	if !w.isUnderRoot(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.debugf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.debugf("watcher add failed for %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

func (w *Watcher) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addWatchDir(path)
		return nil
	})
}

func (w *Watcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
