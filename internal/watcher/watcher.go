// Package watcher triggers a callback when a single data file changes on
// disk. Bursts of events (editors writing via temp file and rename) are
// collapsed into one callback after a quiet period.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher watches one file through its parent directory, so the file
// may be replaced or created after the watch starts.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	// wg tracks the event loop and every scheduled or running callback.
	wg sync.WaitGroup
}

// New creates a watcher for path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, onChange func(ctx context.Context)) (*FileWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		watcher:  w,
	}, nil
}

// Start processes events until ctx is cancelled or Stop is called.
func (fw *FileWatcher) Start(ctx context.Context) {
	log.Printf("File watcher: watching %s", fw.path)

	fw.wg.Add(1)
	go fw.processEvents(ctx)
}

// Stop releases the fsnotify watcher and cancels a pending callback. A
// callback that already started is waited for.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	fw.stopped = true
	fw.cancelPending()
	fw.mu.Unlock()

	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer fw.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(ctx, event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher: %v", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.stopped {
		return
	}
	fw.cancelPending()

	fw.wg.Add(1)
	fw.timer = time.AfterFunc(fw.debounce, func() {
		defer fw.wg.Done()
		if ctx.Err() != nil {
			return
		}
		log.Printf("File watcher: %s changed", fw.path)
		fw.onChange(ctx)
	})
}

// cancelPending stops a scheduled callback that has not started yet.
// Callers hold mu.
func (fw *FileWatcher) cancelPending() {
	if fw.timer != nil && fw.timer.Stop() {
		fw.wg.Done()
	}
	fw.timer = nil
}
