// Package watch reruns a callback when any of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-htmlindex/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into one change.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors files through their parent directories, which survives
// editors that save by renaming a temp file over the original.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	onChange func(context.Context)

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}
}

// New creates a Watcher that calls onChange once per burst of changes.
// A non-positive debounce uses DefaultDebounce; a nil logger discards.
func New(debounce time.Duration, logger *slog.Logger, onChange func(context.Context)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		watcher:  fw,
		logger:   logger,
		debounce: debounce,
		onChange: onChange,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}, nil
}

// SetFiles replaces the watched file set. Empty paths are skipped.
func (w *Watcher) SetFiles(paths ...string) error {
	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for f := range files {
		dir := filepath.Dir(f)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files = files
	return nil
}

// Files returns the watched absolute paths in sorted order.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.files))
}

// Run processes events until ctx is canceled, then closes the watcher.
// onChange runs on the Run goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context) error {
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
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.watched(event.Name) {
				continue
			}
			if event.Has(fsnotify.Remove) {
				w.logger.Warn("Watched file removed", logfields.File(event.Name))
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Change detected", logfields.File(event.Name), logfields.Event(event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) watched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}
