// Package watch re-runs an analysis when any of the dataset's table
// files changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a dataset's table files and triggers re-analysis.
type Watcher struct {
	watcher  *fsnotify.Watcher
	tables   map[string]*tableState
	mu       sync.RWMutex
	debounce time.Duration

	// OnChange runs after a watched table file settles. The path is the
	// file that changed; the whole dataset is expected to be re-analyzed.
	OnChange func(path string) error

	// OnError receives watch and re-analysis failures.
	OnError func(path string, err error)
}

type tableState struct {
	path         string
	lastModified time.Time
	size         int64
	processing   bool
}

// NewWatcher creates an idle watcher; add files with Watch.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsWatcher,
		tables:   make(map[string]*tableState),
		debounce: 500 * time.Millisecond,
	}, nil
}

// Watch starts watching one table file.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve path: %w", err)
	}

	stat, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("watch: stat file: %w", err)
	}

	w.mu.Lock()
	w.tables[absPath] = &tableState{
		path:         absPath,
		lastModified: stat.ModTime(),
		size:         stat.Size(),
	}
	w.mu.Unlock()

	// fsnotify is more reliable watching the parent directory.
	if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch: watch directory: %w", err)
	}
	return nil
}

// Run blocks until the context is cancelled, dispatching debounced
// change callbacks.
func (w *Watcher) Run(ctx context.Context) error {
	debounceTimers := make(map[string]*time.Timer)
	var timerMu sync.Mutex

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.RLock()
			state, isWatched := w.tables[absPath]
			w.mu.RUnlock()
			if !isWatched {
				continue
			}

			// Debounce rapid successive writes.
			timerMu.Lock()
			if timer, exists := debounceTimers[absPath]; exists {
				timer.Stop()
			}
			debounceTimers[absPath] = time.AfterFunc(w.debounce, func() {
				w.handleChange(absPath, state)
			})
			timerMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError("", err)
			}
		}
	}
}

func (w *Watcher) handleChange(path string, state *tableState) {
	w.mu.Lock()
	if state.processing {
		w.mu.Unlock()
		return
	}
	state.processing = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		state.processing = false
		w.mu.Unlock()
	}()

	stat, err := os.Stat(path)
	if err != nil {
		if w.OnError != nil {
			w.OnError(path, err)
		}
		return
	}

	// The write event may fire without content change.
	if stat.ModTime().Equal(state.lastModified) && stat.Size() == state.size {
		return
	}

	w.mu.Lock()
	state.lastModified = stat.ModTime()
	state.size = stat.Size()
	w.mu.Unlock()

	if w.OnChange != nil {
		if err := w.OnChange(path); err != nil {
			if w.OnError != nil {
				w.OnError(path, err)
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
