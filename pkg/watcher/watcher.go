// Package watcher triggers stub regeneration when declaration dumps change
// on disk. Events are debounced so one editor save or one batch export of
// dumps produces a single regeneration.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Watcher watches directories holding declaration dumps and invokes the
// callback with the batch of changed dump paths after the debounce window.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	exclude  []glob.Glob
	onChange func([]string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates a watcher. Exclude patterns are matched against base names.
func New(debounce time.Duration, exclude []string, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.exclude = append(w.exclude, g)
	}

	return w, nil
}

// Watch registers the given files or directories and starts the event loop.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		// fsnotify delivers reliable events for directories, not files, so
		// watch the parent when handed a single dump.
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

// Close stops the watcher. A pending debounce timer is dropped unfired.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return IsDump(event.Name) && !w.excluded(event.Name)
}

func (w *Watcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.exclude {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) > 0 {
		w.onChange(paths)
	}
}

// IsDump reports whether a path looks like a declaration dump file.
func IsDump(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
